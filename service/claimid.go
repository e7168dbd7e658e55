package service

import (
	"regexp"
	"strings"
)

var (
	// loose scan used to spot a claim reference anywhere in free text
	claimIDPattern = regexp.MustCompile(`(?i)CLAIM-\d+`)
	// strict form a token must satisfy before we attempt a lookup
	claimIDStrict = regexp.MustCompile(`(?i)^CLAIM-\d+$`)
)

// ExtractClaimID returns the first claim identifier found in the message,
// upper-cased, or "" when the message contains none. This is a presence
// check only; callers validate with IsValidClaimID before looking it up.
func ExtractClaimID(message string) string {
	match := claimIDPattern.FindString(message)
	if match == "" {
		return ""
	}
	return strings.ToUpper(match)
}

// IsValidClaimID reports whether id is a well-formed claim identifier
func IsValidClaimID(id string) bool {
	return claimIDStrict.MatchString(id)
}
