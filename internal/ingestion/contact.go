package ingestion

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\+?[\d \t\-()]{10,}`)
	urlPattern   = regexp.MustCompile(`(?i)https?://|www\.`)
)

// minPhoneDigits rejects runs of spaces and dashes that happen to be long enough.
const minPhoneDigits = 7

// Contact is the contact information found in a resume.
type Contact struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ExtractContact returns the first email address and the first phone number in text.
func ExtractContact(text string) Contact {
	var c Contact
	if email := emailPattern.FindString(text); email != "" {
		c.Email = strings.ToLower(email)
	}
	c.Phone = firstPhone(text)
	return c
}

func firstPhone(text string) string {
	for _, candidate := range phonePattern.FindAllString(text, -1) {
		digits := 0
		for _, r := range candidate {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= minPhoneDigits {
			return strings.TrimSpace(candidate)
		}
	}
	return ""
}
