package utils

import (
	"regexp"
	"strings"
)

var macPattern = regexp.MustCompile(`^[0-9a-fA-F]{2}([:-])[0-9a-fA-F]{2}(?:[:-][0-9a-fA-F]{2}){4}$`)

// IsMAC reports whether id is a MAC address written as six hex pairs
// separated consistently by ':' or '-'.
func IsMAC(id string) bool {
	m := macPattern.FindStringSubmatch(id)
	if m == nil {
		return false
	}
	return strings.Count(id, m[1]) == 5
}

// NormalizeMAC returns the lower-case, colon separated form of a MAC
// address, or false if id is not one.
func NormalizeMAC(id string) (string, bool) {
	id = strings.TrimSpace(id)
	if !IsMAC(id) {
		return "", false
	}
	return strings.ToLower(strings.ReplaceAll(id, "-", ":")), true
}
