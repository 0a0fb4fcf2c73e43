// Package stats derives summary statistics from the progress document.
package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/verte-zerg/typesmart/internal/model"
)

// Summarize computes display statistics. It never mutates p.
func Summarize(p *model.Progress) model.Summary {
	return model.Summary{
		Level:         p.Level,
		TotalWords:    p.TotalWords,
		TotalErrors:   p.TotalErrors,
		TotalTime:     p.TotalTime,
		AverageWPM:    AverageWPM(p.TotalWords, p.TotalTime),
		Streak:        p.Streak,
		LastPractice:  p.LastPractice,
		CustomLessons: len(p.CustomLessons),
		Keys:          KeyRatios(p.Heatmap),
	}
}

// AverageWPM returns words per minute over the accumulated practice time,
// or 0 when either total is zero.
func AverageWPM(totalWords int, totalSeconds float64) float64 {
	if totalWords <= 0 || totalSeconds <= 0 {
		return 0
	}
	return float64(totalWords) / (totalSeconds / 60)
}

// KeyRatios returns correct/(correct+wrong) per heatmap key, sorted by key.
func KeyRatios(hm model.Heatmap) []model.KeyRatio {
	out := make([]model.KeyRatio, 0, len(hm))
	for key, counts := range hm {
		total := counts.Correct + counts.Wrong
		ratio := 0.0
		if total > 0 {
			ratio = float64(counts.Correct) / float64(total)
		}
		out = append(out, model.KeyRatio{
			Key:     key,
			Correct: counts.Correct,
			Wrong:   counts.Wrong,
			Ratio:   ratio,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out
}

// RenderSummary prints the summary followed by the per-key table.
func RenderSummary(w io.Writer, s model.Summary) error {
	lines := []string{
		"Summary",
		fmt.Sprintf("Level: %d", s.Level),
		fmt.Sprintf("Total Words: %d", s.TotalWords),
		fmt.Sprintf("Errors: %d", s.TotalErrors),
		fmt.Sprintf("Practice Time: %s", FormatSeconds(s.TotalTime)),
		fmt.Sprintf("Avg WPM: %.1f", s.AverageWPM),
		fmt.Sprintf("Streak: %d days", s.Streak),
		fmt.Sprintf("Custom Lessons: %d", s.CustomLessons),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return RenderKeyTable(w, s.Keys)
}

// RenderKeyTable prints per-key counters, weakest keys first.
func RenderKeyTable(w io.Writer, keys []model.KeyRatio) error {
	if len(keys) == 0 {
		_, err := fmt.Fprintln(w, "No key stats yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Heatmap"); err != nil {
		return err
	}
	headers, rows := KeyTableRows(keys)
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range alignRows(append([][]string{headers}, rows...), rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// KeyTableRows returns headers and formatted rows ordered weakest first.
func KeyTableRows(keys []model.KeyRatio) ([]string, [][]string) {
	sorted := SortWeakest(keys)
	rows := make([][]string, 0, len(sorted))
	for _, k := range sorted {
		rows = append(rows, []string{
			KeyLabel(k.Key),
			fmt.Sprintf("%.2f%%", k.Ratio*100),
			fmt.Sprintf("%d", k.Correct),
			fmt.Sprintf("%d", k.Wrong),
		})
	}
	return []string{"Key", "Accuracy", "Correct", "Wrong"}, rows
}

// KeyLabel makes whitespace keys visible.
func KeyLabel(key string) string {
	if key == " " {
		return "<space>"
	}
	return key
}

// FormatSeconds renders a duration in seconds as h/m/s.
func FormatSeconds(seconds float64) string {
	total := int(seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
