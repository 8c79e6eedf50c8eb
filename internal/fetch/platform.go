// Package fetch - platform.go provides ATS platform detection and
// platform-specific status selectors for portal checks.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known applicant-tracking-system platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform.
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform.
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform.
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform.
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the ATS platform from a portal URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(host, "lever.co"):
		return PlatformLever
	case strings.Contains(host, "workday.com"), strings.Contains(host, "myworkdayjobs.com"):
		return PlatformWorkday
	default:
		return PlatformUnknown
	}
}

// PlatformStatusSelectors returns CSS selectors likely to contain the
// application status on a given platform, most specific first.
func PlatformStatusSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return []string{
			".application-status",
			".candidate-status",
			"[data-status]",
		}
	case PlatformLever:
		return []string{
			".application-state",
			".posting-status",
			"[data-qa='status']",
		}
	case PlatformWorkday:
		return []string{
			"[data-automation-id='applicationStatus']",
			".WDAY-status",
		}
	default:
		return []string{
			".application-status",
			".status",
			"[data-status]",
		}
	}
}
