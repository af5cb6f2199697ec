// Package ingestion turns raw job descriptions and resumes into clean text and pulls out
// the facts the evaluation needs from it: experience years, contact details and a quality
// estimate.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	spaceRun      = regexp.MustCompile(`[ \t\f\v]+`)
	blankLineRuns = regexp.MustCompile(`\n\n\n+`)
)

// CleanText removes NUL and other control characters (keeping \n, \r and \t) and
// normalizes whitespace while preserving line structure.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = stripControl(content)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := blankLineRuns.ReplaceAllString(strings.Join(cleaned, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// stripControl drops every rune below 0x20 except newline, carriage return and tab.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// cleanLine trims a line and collapses inner runs of spaces. Markdown headings lose their
// indentation; bullets and indented lines keep it.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := len(line) - len(trimmed)
	content := trimmed
	if !isBulletLine(trimmed) {
		content = spaceRun.ReplaceAllString(trimmed, " ")
	}
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "• ") || strings.HasPrefix(line, "· ")
}

// IngestFromFile reads a job description or resume, converts HTML files to text, cleans
// the result and returns it with metadata.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	format := FormatText
	text := string(content)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		format = FormatHTML
		text, err = HTMLToText(text)
		if err != nil {
			return "", nil, fmt.Errorf("failed to convert HTML: %w", err)
		}
	}

	cleaned := CleanText(text)
	metadata := NewMetadata(cleaned, path)
	metadata.Format = format
	return cleaned, metadata, nil
}
