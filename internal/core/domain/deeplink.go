package domain

import "strings"

// DeeplinkTargetToday opens the webapp on the today screen.
const DeeplinkTargetToday = "today"

// Deeplink builds a webapp URL for the given target by appending the fixed
// startapp parameter to the configured base URL.
func Deeplink(baseURL, target string) string {
	base := strings.TrimRight(baseURL, "/")
	if target == DeeplinkTargetToday {
		return base + "/?startapp=today"
	}
	return base
}
