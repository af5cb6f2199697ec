package ingestion

import (
	"regexp"
	"strconv"
	"strings"
)

var yearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`experience\s*:\s*(\d+)\+?\s*years?`),
	regexp.MustCompile(`(\d+)\+?\s*yrs?\s+(?:of\s+)?experience`),
}

var (
	roleKeywords       = []string{"developer", "engineer", "manager", "analyst", "architect", "lead", "senior", "junior", "intern", "consultant", "specialist"}
	leadershipKeywords = []string{"lead", "manager", "director", "head"}
)

// ExperienceProfile is what a text says about its author's (or a job's) experience.
type ExperienceProfile struct {
	Years         int      `json:"experience_years"`
	Roles         []string `json:"roles_mentioned"`
	HasLeadership bool     `json:"has_leadership"`
}

// ExtractExperience finds stated years of experience (the largest mention wins), role
// keywords and leadership terms in text. Keywords match as substrings.
func ExtractExperience(text string) ExperienceProfile {
	lower := strings.ToLower(text)

	years := 0
	for _, re := range yearPatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			years = max(years, n)
		}
	}

	roles := []string{}
	for _, keyword := range roleKeywords {
		if strings.Contains(lower, keyword) {
			roles = append(roles, keyword)
		}
	}

	return ExperienceProfile{
		Years:         years,
		Roles:         roles,
		HasLeadership: containsAny(lower, leadershipKeywords),
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
