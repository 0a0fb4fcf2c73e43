package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typesmart/internal/theme"
)

// wrongSpaceMark replaces a target space the user typed over with something else.
const wrongSpaceMark = '·'

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes styles every target rune against the input typed so far.
// Input past the end of the target is not shown.
func buildStyledRunes(styles theme.Styles, target, input []rune, cursorIndex int) []styledRune {
	wordStart, wordEnd := currentWord(target, cursorIndex)

	out := make([]styledRune, 0, len(target))
	for i, want := range target {
		shown := want
		style := styles.Pending
		switch {
		case i < len(input) && want == ' ' && input[i] != ' ':
			shown = wrongSpaceMark
			style = styles.Incorrect
		case i < len(input) && input[i] == want:
			style = styles.Correct
		case i < len(input):
			style = styles.Incorrect
		case want != ' ' && i >= wordStart && i < wordEnd:
			style = styles.Current
		}
		if i == cursorIndex && i >= len(input) {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(shown)),
			width:   runewidth.RuneWidth(shown),
			isSpace: want == ' ',
		})
	}
	return out
}

// currentWord returns the bounds of the word under the cursor, or the next
// word when the cursor sits on a space. A negative cursor selects the first
// word and a cursor past the text selects the last one.
func currentWord(target []rune, cursor int) (start, end int) {
	n := len(target)
	i := max(cursor, 0)
	for i < n && target[i] == ' ' {
		i++
	}
	if i >= n {
		i = n - 1
		for i >= 0 && target[i] == ' ' {
			i--
		}
		if i < 0 {
			return 0, 0
		}
	}
	start, end = i, i
	for start > 0 && target[start-1] != ' ' {
		start--
	}
	for end < n && target[end] != ' ' {
		end++
	}
	return start, end
}

// chunk is a word with the spaces that follow it.
type chunk struct {
	runes []styledRune
	body  int
	total int
}

func splitChunks(runes []styledRune) []chunk {
	var chunks []chunk
	var cur chunk
	for i, r := range runes {
		if !r.isSpace && i > 0 && runes[i-1].isSpace {
			chunks = append(chunks, cur)
			cur = chunk{}
		}
		cur.runes = append(cur.runes, r)
		cur.total += r.width
		if !r.isSpace {
			cur.body = cur.total
		}
	}
	if len(cur.runes) > 0 {
		chunks = append(chunks, cur)
	}
	return chunks
}

// wrapStyledRunes breaks lines at spaces so no line exceeds width cells.
// Words wider than a whole line are split mid-word.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var lines []string
	var line []styledRune
	lineWidth := 0
	flush := func() {
		end := len(line)
		for end > 0 && line[end-1].isSpace {
			end--
		}
		lines = append(lines, renderStyledRunes(line[:end]))
		line = nil
		lineWidth = 0
	}

	for _, c := range splitChunks(runes) {
		if len(line) > 0 && lineWidth+c.body > width {
			flush()
		}
		if c.body <= width {
			line = append(line, c.runes...)
			lineWidth += c.total
			continue
		}
		for _, r := range c.runes {
			if !r.isSpace && len(line) > 0 && lineWidth+r.width > width {
				flush()
			}
			line = append(line, r)
			lineWidth += r.width
		}
	}
	if len(line) > 0 {
		lines = append(lines, renderStyledRunes(line))
	}
	return strings.Join(lines, "\n")
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}
