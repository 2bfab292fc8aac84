package util

import (
	"regexp"
	"strings"
)

var nonNameChars = regexp.MustCompile(`[^a-z0-9_-]`)

// SanitizeName converts a string into an EasyPanel project name: lowercase
// alphanumerics, hyphens and underscores. It returns "" when nothing usable
// is left.
func SanitizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, ".", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = nonNameChars.ReplaceAllString(s, "")
	return strings.Trim(s, "-_")
}
