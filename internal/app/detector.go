package app

import (
	"fmt"
	"os"

	"github.com/quantmind-br/leafdoc-go/internal/domain"
	"github.com/quantmind-br/leafdoc-go/internal/leafdoc"
)

// InputType represents the kind of a command-line input
type InputType string

const (
	InputFile    InputType = "file"
	InputDir     InputType = "dir"
	InputMissing InputType = "missing"
)

// DetectInput determines whether path is a file, a directory, or missing
func DetectInput(path string) InputType {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		return InputMissing
	case info.IsDir():
		return InputDir
	default:
		return InputFile
	}
}

// CollectFiles expands inputs into the list of files to parse. Files are
// taken as given whatever their extension; directories are walked for
// files with one of extensions. Duplicates keep their first position.
func CollectFiles(inputs, extensions []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, input := range inputs {
		switch DetectInput(input) {
		case InputFile:
			add(input)
		case InputDir:
			found, err := leafdoc.ListFiles(input, extensions)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				add(f)
			}
		default:
			return nil, fmt.Errorf("%w: %s", domain.ErrInputNotFound, input)
		}
	}

	return files, nil
}
