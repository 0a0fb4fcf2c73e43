// Package lessons provides lesson text checks.
package lessons

import "unicode"

// Typeable reports whether text can be typed from a keyboard: it must be
// non-empty and contain only printable runes.
func Typeable(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
