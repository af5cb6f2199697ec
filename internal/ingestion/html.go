package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const noiseSelector = "nav, footer, header, script, style, noscript, iframe, form, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup, .apply-button"

// contentSelectors are tried in order; the first match is the posting body.
var contentSelectors = []string{
	"[itemprop='description']",
	".job-description",
	"#job-description",
	".posting-page",
	"article",
	"main",
	"[role='main']",
}

// blockElements end a line when rendered to text.
const blockElements = "p, div, li, br, h1, h2, h3, h4, h5, h6, tr, section, article"

// HTMLToText extracts the readable body of an HTML job posting. Navigation, scripts and
// other page chrome are dropped, list items become "- " bullets and headings become
// markdown headings so section markers survive cleaning.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	var body *goquery.Selection
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			body = sel.First()
			break
		}
	}
	if body == nil {
		body = doc.Find("body")
	}

	body.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("## ")
	})
	body.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})
	body.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return CleanText(body.Text()), nil
}
