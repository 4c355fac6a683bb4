// Package phone validates and normalizes the number formats used by the
// contact settings screen: the 9-digit unified company number, and the
// marketing-style numbers (05 + 8 digits) shared by the marketing phone,
// floating phone and floating WhatsApp fields. All functions are pure.
package phone

import "regexp"

var (
	separatorRe = regexp.MustCompile(`[\s\-()]`)
	unifiedRe   = regexp.MustCompile(`^[0-9]{9}$`)
	marketingRe = regexp.MustCompile(`^05[0-9]{8}$`)
)

// Normalize strips whitespace, hyphens and parentheses.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	return separatorRe.ReplaceAllString(raw, "")
}

// ValidateUnified reports whether raw normalizes to exactly 9 digits.
// No country or operator prefix is allowed.
func ValidateUnified(raw string) bool {
	if raw == "" {
		return false
	}
	return unifiedRe.MatchString(Normalize(raw))
}

// ValidateMarketing reports whether raw normalizes to an 05-prefixed
// 10-digit number. The marketing phone, floating phone and floating
// WhatsApp fields all share this rule.
func ValidateMarketing(raw string) bool {
	if raw == "" {
		return false
	}
	return marketingRe.MatchString(Normalize(raw))
}

// FormatUnified returns the normalized unified number. No formatting is
// applied beyond separator stripping.
func FormatUnified(raw string) string {
	return Normalize(raw)
}

// FormatMarketing returns the normalized marketing-style number. Values that
// no longer match the 05 + 8-digit shape after normalization are returned
// normalized as-is; callers are expected to have validated first.
func FormatMarketing(raw string) string {
	return Normalize(raw)
}
