// Package validate holds the shared input validation primitives used by the
// tenant and contract flows. Every predicate has a matching sanitizer that
// strips disallowed characters, so callers can mask input progressively while
// the user types. Sanitizers are idempotent.
package validate

import (
	"regexp"
	"strings"
)

var (
	// Letters (including Spanish accents), spaces, apostrophes and hyphens.
	nameRe        = regexp.MustCompile(`^[a-zA-ZáéíóúüñÁÉÍÓÚÜÑ' -]+$`)
	nameStripRe   = regexp.MustCompile(`[^a-zA-ZáéíóúüñÁÉÍÓÚÜÑ' -]`)
	digitsStripRe = regexp.MustCompile(`[^0-9]`)
	dniRe         = regexp.MustCompile(`^[0-9]{8}$`)
	phoneRe       = regexp.MustCompile(`^[0-9]{9}$`)
)

// IsValidName reports whether s is a plausible person name: at least two
// characters once trimmed, drawn from the allowed name character class.
func IsValidName(s string) bool {
	trimmed := strings.TrimSpace(s)
	if len([]rune(trimmed)) < 2 {
		return false
	}
	return nameRe.MatchString(trimmed)
}

// SanitizeNameInput strips everything outside the allowed name character
// class. Accented letters are preserved.
func SanitizeNameInput(s string) string {
	return nameStripRe.ReplaceAllString(s, "")
}

// IsValidDNI reports whether s is exactly 8 ASCII digits.
func IsValidDNI(s string) bool {
	return dniRe.MatchString(s)
}

// SanitizeDNIInput strips non-digits and truncates to 8 characters.
func SanitizeDNIInput(s string) string {
	digits := digitsStripRe.ReplaceAllString(s, "")
	if len(digits) > 8 {
		digits = digits[:8]
	}
	return digits
}

// IsValidPhone reports whether s is exactly 9 ASCII digits or empty. Phone is
// optional unless the specific form requires it.
func IsValidPhone(s string) bool {
	if s == "" {
		return true
	}
	return phoneRe.MatchString(s)
}

// SanitizePhoneInput strips non-digits and truncates to 9 characters.
func SanitizePhoneInput(s string) string {
	digits := digitsStripRe.ReplaceAllString(s, "")
	if len(digits) > 9 {
		digits = digits[:9]
	}
	return digits
}

// IsValidEmail applies the loose one-@, dot-after-@ shape check. Full RFC
// validation is left to the backend.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	rest := s[at+1:]
	dot := strings.Index(rest, ".")
	return dot > 0 && dot < len(rest)-1
}

// SanitizeEmailInput trims surrounding whitespace and removes inner spaces.
func SanitizeEmailInput(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}
