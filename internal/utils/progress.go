package utils

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// DescParsing describes the per-file parsing progress bar
const DescParsing = "Parsing"

// NewProgressBar creates a consistently styled progress bar writing to w.
// Documentation may be written to stdout, so callers pass stderr here.
// A negative total shows a spinner instead of a bar.
//
// Example:
//
//	bar := utils.NewProgressBar(os.Stderr, len(files), utils.DescParsing)
//	defer bar.Finish()
//
//	for _, f := range files {
//	    // Parse f
//	    bar.Add(1)
//	}
func NewProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts, progressbar.OptionShowIts())
	}

	return progressbar.NewOptions(total, opts...)
}
