package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractExperience(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		years      int
		leadership bool
	}{
		{"years of experience", "Senior engineer with 6+ years of experience in Go", 6, false},
		{"colon form", "Experience: 4 years building APIs", 4, false},
		{"abbreviated", "3 yrs experience as developer", 3, false},
		{"largest mention wins", "2 years experience with Java, 8 years experience overall", 8, false},
		{"no mention", "Team lead at Acme", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := ExtractExperience(tt.text)
			assert.Equal(t, tt.years, profile.Years)
			assert.Equal(t, tt.leadership, profile.HasLeadership)
		})
	}
}

func TestExtractExperience_Roles(t *testing.T) {
	profile := ExtractExperience("Senior Software Engineer, previously Data Analyst")

	assert.Equal(t, []string{"engineer", "analyst", "senior"}, profile.Roles)
}

func TestExtractContact(t *testing.T) {
	c := ExtractContact("Jane Doe\nJane.Doe@Example.com | +1 (415) 555-0100\nalt: other@example.org")

	assert.Equal(t, "jane.doe@example.com", c.Email)
	assert.Equal(t, "+1 (415) 555-0100", c.Phone)
}

func TestExtractContact_IgnoresWhitespaceRuns(t *testing.T) {
	c := ExtractContact("Name            Title  -  -  -  -  -  ")

	assert.Empty(t, c.Email)
	assert.Empty(t, c.Phone)
}

func TestAnalyzeQuality(t *testing.T) {
	body := strings.Repeat("python docker kubernetes ", 40)
	text := "jane@example.com\nBachelor of Science\n" + body + "\nhttps://github.com/jane"

	q := AnalyzeQuality(text)

	assert.Greater(t, q.WordCount, 100)
	assert.True(t, q.HasEducation)
	assert.True(t, q.HasContact)
	assert.True(t, q.HasLinks)
	assert.Equal(t, 1.0, q.CompletenessScore)
	assert.Equal(t, QualityHigh, q.QualityLevel)
}

func TestAnalyzeQuality_ShortText(t *testing.T) {
	q := AnalyzeQuality("Go developer")

	// only the upper word bound passes
	assert.Equal(t, 0.25, q.CompletenessScore)
	assert.Equal(t, QualityLow, q.QualityLevel)
	assert.False(t, q.HasLinks)
}

func TestAnalyzeQuality_Medium(t *testing.T) {
	q := AnalyzeQuality("Master degree, reach me at dev@example.com")

	assert.Equal(t, 0.75, q.CompletenessScore)
	assert.Equal(t, QualityHigh, q.QualityLevel)

	q = AnalyzeQuality("Reach me at dev@example.com")
	assert.Equal(t, 0.5, q.CompletenessScore)
	assert.Equal(t, QualityMedium, q.QualityLevel)
}
