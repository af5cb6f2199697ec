package fetch

import (
	"net/url"
	"strings"
)

// Platform is a known applicant tracking system.
type Platform string

// Known platforms
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformUnknown    Platform = "unknown"
)

// platformHosts maps host suffixes to platforms.
var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
	{"ashbyhq.com", PlatformAshby},
}

// DetectPlatform identifies the job board from a posting URL.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	for _, h := range platformHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.platform
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns the description selectors for a platform, most specific first.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return []string{
			".job__description.body",
			".job__description",
			".job-description__content",
			"#content",
			".job-post-container",
		}
	case PlatformLever:
		return []string{
			".posting-page",
			".section-wrapper.page-full-width",
			".posting-description",
			".content",
		}
	case PlatformWorkday:
		return []string{
			"[data-automation-id='jobDescription']",
			".job-description",
		}
	case PlatformAshby:
		return []string{
			"[class*='descriptionText']",
			"main",
		}
	default:
		return JobPostingSelectors()
	}
}

// PlatformNoiseSelectors returns elements to drop before extracting text: application
// forms, EEO sections and share widgets, plus platform-specific ones.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		"form",
		"#application-form",
		".application-form",
		".apply-button-container",
		".voluntary-disclosure",
		".eeo-statement",
		".eeo-section",
		".self-identification",
		".social-share",
		".share-buttons",
		".cookie-consent",
	}

	switch platform {
	case PlatformGreenhouse:
		return append(common, ".application--wrapper", ".voluntary-self-id", "#usa_self_id_section")
	case PlatformLever:
		return append(common, ".apply-section", ".posting-apply")
	case PlatformWorkday:
		return append(common, "[data-automation-id='applyButton']")
	default:
		return common
	}
}
