package renderer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// rewriteLinks points every in-page link naming an alias at the alias's
// canonical id
func rewriteLinks(page string, akas map[string]string) (string, error) {
	if len(akas) == 0 {
		return page, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse rendered html: %w", err)
	}

	doc.Find(`a[href^="#"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if id, ok := akas[strings.TrimPrefix(href, "#")]; ok {
			a.SetAttr("href", "#"+id)
		}
	})

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize rendered html: %w", err)
	}
	return out, nil
}
