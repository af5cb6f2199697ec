package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `
<html>
	<body>
		<nav>Careers Home</nav>
		<div class="sidebar">Other openings</div>
		<div class="job-description">
			<h2>Requirements</h2>
			<p>5 years experience in Go</p>
			<p>Kubernetes</p>
		</div>
		<form id="application-form">Upload resume</form>
		<footer>Footer</footer>
	</body>
</html>`

func TestJobPosting_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	posting, err := JobPosting(context.Background(), server.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, server.URL, posting.URL)
	assert.Equal(t, PlatformUnknown, posting.Platform)
	assert.Equal(t, http.StatusOK, posting.StatusCode)
	assert.Equal(t, "Requirements\n5 years experience in Go\nKubernetes", posting.Text)
}

func TestJobPosting_InvalidURL(t *testing.T) {
	for _, raw := range []string{"not-a-valid-url", "ftp://example.com/job", "https://"} {
		_, err := JobPosting(context.Background(), raw, nil)
		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr, raw)
		assert.Contains(t, err.Error(), "invalid URL")
	}
}

func TestJobPosting_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	posting, err := JobPosting(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, posting)
	assert.Equal(t, http.StatusNotFound, posting.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestJobPosting_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><script>render()</script></body></html>"))
	}))
	defer server.Close()

	_, err := JobPosting(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no readable text")
}

func TestJobPosting_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := JobPosting(ctx, server.URL, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractMainText_FallbackToBody(t *testing.T) {
	text, err := ExtractMainText(`<html><body><div>Some content here.</div></body></html>`, JobPostingSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Some content here.", text)
}

func TestExtractMainText_RemovesNoise(t *testing.T) {
	html := `<html><body><main><p>Role summary</p><div class="eeo-statement">EEO text</div></main></body></html>`

	text, err := ExtractMainText(html, JobPostingSelectors(), PlatformNoiseSelectors(PlatformUnknown)...)
	require.NoError(t, err)
	assert.Equal(t, "Role summary", text)
}
