package engine

import (
	"regexp"
	"strings"
)

var (
	// Not anchored at the end: trailing text after the token is ignored.
	videoIDInURLRE = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)
	bareVideoIDRE  = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
)

// ResolveVideoID normalizes a YouTube URL or bare ID into the 11-char video ID.
// Returns false when raw contains neither.
func ResolveVideoID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if m := videoIDInURLRE.FindStringSubmatch(raw); len(m) >= 2 {
		return m[1], true
	}
	if bareVideoIDRE.MatchString(raw) {
		return raw, true
	}
	return "", false
}
