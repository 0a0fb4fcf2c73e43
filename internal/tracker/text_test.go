package tracker

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		" a   b  ":        "a b",
		"":                "",
		"\tone\n two   ": "one two",
		"same":            "same",
	}
	for in, want := range cases {
		require.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestWordCount(t *testing.T) {
	require.Equal(t, 0, WordCount(""))
	require.Equal(t, 0, WordCount("   "))
	require.Equal(t, 9, WordCount("The quick brown fox jumps over the lazy dog."))
}

func TestProgressBarShape(t *testing.T) {
	for total := 1; total <= 12; total++ {
		for current := 0; current <= total; current++ {
			for width := 0; width <= 30; width++ {
				bar := ProgressBar(current, total, width)
				require.Len(t, bar, width+2)
				want := int(math.Round(float64(current) / float64(total) * float64(width)))
				want = max(0, min(width, want))
				require.Equal(t, want, strings.Count(bar, "#"), "current=%d total=%d width=%d", current, total, width)
			}
		}
	}
}

func TestProgressBarZeroTotal(t *testing.T) {
	require.Equal(t, "[----]", ProgressBar(0, 0, 4))
	require.Equal(t, "[####]", ProgressBar(5, 0, 4))
}

func TestAccuracy(t *testing.T) {
	require.Equal(t, 100.0, Accuracy(nil, []rune("abc")))
	require.Equal(t, 100.0, Accuracy([]rune("ab"), []rune("abc")))
	require.InDelta(t, 66.666, Accuracy([]rune("abd"), []rune("abc")), 0.01)
	require.Equal(t, 50.0, Accuracy([]rune("abcd"), []rune("ab")))
}
