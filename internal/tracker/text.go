// Package tracker implements the practice tracking engine.
package tracker

import (
	"math"
	"strings"
)

// Normalize collapses whitespace runs and trims both ends.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// WordCount returns the number of whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ProgressBar renders a bracketed bar of width marks, filled in proportion to current/total.
func ProgressBar(current, total, width int) string {
	if width < 0 {
		width = 0
	}
	if total <= 0 {
		total = 1
	}
	filled := int(math.Round(float64(current) / float64(total) * float64(width)))
	filled = max(0, min(width, filled))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// Accuracy returns the percentage of typed runes that match the target at the
// same position. An empty input is 100% accurate.
func Accuracy(typed, target []rune) float64 {
	if len(typed) == 0 {
		return 100
	}
	correct := 0
	n := min(len(typed), len(target))
	for i := 0; i < n; i++ {
		if typed[i] == target[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(typed)) * 100
}
