package renderer

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// toMarkdown converts a rendered page to Markdown
func toMarkdown(html string) (string, error) {
	markdown, err := md.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	return cleanMarkdown(markdown), nil
}

// cleanMarkdown collapses runs of blank lines and trims the result
func cleanMarkdown(markdown string) string {
	for strings.Contains(markdown, "\n\n\n") {
		markdown = strings.ReplaceAll(markdown, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(markdown) + "\n"
}
