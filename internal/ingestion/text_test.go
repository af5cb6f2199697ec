package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_PreserveMarkdownHeadings(t *testing.T) {
	result := CleanText("  # Title\n## Subtitle\nContent here")

	assert.Equal(t, "# Title\n## Subtitle\nContent here", result)
}

func TestCleanText_PreserveBulletLists(t *testing.T) {
	result := CleanText("- Item 1\n- Item 2\n* Item 3")

	assert.Equal(t, "- Item 1\n- Item 2\n* Item 3", result)
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	result := CleanText("Line    with \t  multiple    spaces   ")

	assert.Equal(t, "Line with multiple spaces", result)
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	result := CleanText("Line 1\n\n\n\n\nLine 2")

	assert.Equal(t, "Line 1\n\nLine 2", result)
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	result := CleanText("Line 1\r\nLine 2\rLine 3\nLine 4")

	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_StripsControlCharacters(t *testing.T) {
	result := CleanText("Py\x00thon\x07 and\x1b Go\tdeveloper")

	assert.Equal(t, "Python and Go developer", result)
	assert.NotContains(t, result, "\x00")
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
	assert.Empty(t, CleanText("\x00\x01"))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	result := CleanText("Test with émojis 🚀 and spéciàl chàracters")

	assert.Equal(t, "Test with émojis 🚀 and spéciàl chàracters", result)
}

func TestCleanText_PreserveIndentation(t *testing.T) {
	result := CleanText("Header\n    Indented   line\n  Less indented")

	assert.Equal(t, "Header\n    Indented line\n  Less indented", result)
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"

	assert.Equal(t, CleanText(input), CleanText(input))
	assert.Equal(t, CleanText(input), CleanText(CleanText(input)))
}

func TestIngestFromFile_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("# Backend Engineer\n\n\n\nRequirements:  Go"), 0644))

	text, metadata, err := IngestFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "# Backend Engineer\n\nRequirements: Go", text)
	assert.Equal(t, FormatText, metadata.Format)
	assert.Equal(t, path, metadata.Source)
	assert.Len(t, metadata.Hash, 64)
}

func TestIngestFromFile_HTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.html")
	html := `<html><body><nav>Home</nav><main><h2>Requirements</h2><ul><li>Python</li><li>Docker</li></ul></main></body></html>`
	require.NoError(t, os.WriteFile(path, []byte(html), 0644))

	text, metadata, err := IngestFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, FormatHTML, metadata.Format)
	assert.Contains(t, text, "## Requirements")
	assert.Contains(t, text, "- Python")
	assert.NotContains(t, text, "Home")
}

func TestIngestFromFile_FileNotFound(t *testing.T) {
	text, metadata, err := IngestFromFile("/nonexistent/file.txt")

	require.Error(t, err)
	assert.Empty(t, text)
	assert.Nil(t, metadata)
	assert.Contains(t, err.Error(), "file not found")
}

func TestIngestFromFile_HashTracksContent(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(first, []byte("Content 1"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("Content 2"), 0644))

	_, m1, err := IngestFromFile(first)
	require.NoError(t, err)
	_, m1Again, err := IngestFromFile(first)
	require.NoError(t, err)
	_, m2, err := IngestFromFile(second)
	require.NoError(t, err)

	assert.Equal(t, m1.Hash, m1Again.Hash)
	assert.NotEqual(t, m1.Hash, m2.Hash)
}

func TestHTMLToText_DropsNoise(t *testing.T) {
	html := `<html><head><style>.x{}</style><script>track()</script></head>
<body><header>Acme Careers</header>
<div class="job-description"><p>We build   things.</p><h3>Nice to have</h3><ul><li>Kafka</li></ul></div>
<footer>Privacy</footer></body></html>`

	text, err := HTMLToText(html)
	require.NoError(t, err)

	assert.Contains(t, text, "We build things.")
	assert.Contains(t, text, "## Nice to have")
	assert.Contains(t, text, "- Kafka")
	for _, noise := range []string{"track()", "Acme Careers", "Privacy", ".x{}"} {
		assert.NotContains(t, text, noise)
	}
}

func TestHTMLToText_FallsBackToBody(t *testing.T) {
	text, err := HTMLToText(`<html><body><p>Only paragraph</p></body></html>`)
	require.NoError(t, err)

	assert.Equal(t, "Only paragraph", strings.TrimSpace(text))
}
