// Package levels provides the ordered practice-text tiers.
package levels

import (
	"errors"
	"fmt"
)

// ErrEmptyCatalog is returned when a catalog defines no usable tier.
var ErrEmptyCatalog = errors.New("catalog has no levels")

// Catalog supplies practice texts per level. Levels are numbered from 1.
type Catalog interface {
	Texts(level int) []string
	MaxLevel() int
}

// Tier is a named group of practice texts.
type Tier struct {
	Name  string   `yaml:"name"`
	Texts []string `yaml:"texts"`
}

// Static is an in-memory catalog.
type Static struct {
	tiers []Tier
}

// NewStatic builds a catalog from tiers. Every tier must hold at least one text.
func NewStatic(tiers []Tier) (*Static, error) {
	if len(tiers) == 0 {
		return nil, ErrEmptyCatalog
	}
	for i, t := range tiers {
		if len(t.Texts) == 0 {
			return nil, fmt.Errorf("level %d has no texts", i+1)
		}
	}
	return &Static{tiers: tiers}, nil
}

// Texts returns the texts for level, or nil for an unsupported level.
func (s *Static) Texts(level int) []string {
	if level < 1 || level > len(s.tiers) {
		return nil
	}
	return s.tiers[level-1].Texts
}

// MaxLevel returns the highest supported level.
func (s *Static) MaxLevel() int {
	return len(s.tiers)
}

// Name returns the display name of a level.
func (s *Static) Name(level int) string {
	if level < 1 || level > len(s.tiers) || s.tiers[level-1].Name == "" {
		return fmt.Sprintf("Level %d", level)
	}
	return s.tiers[level-1].Name
}

// Builtin returns the default three-tier catalog.
func Builtin() *Static {
	beginner := []string{
		"asdf jkl qwe rty",
		"zxcv bn m po iu",
		"qaz wsx edc rfv",
	}
	beginner = append(beginner, numbered("wordset %d")...)

	intermediate := []string{
		"The quick brown fox jumps over the lazy dog.",
		"Typing improves focus and muscle memory.",
	}
	intermediate = append(intermediate, numbered("Intermediate sentence %d")...)

	expert := []string{
		"Expert typing requires endurance, precision, and mental stamina.",
		"Long-form typing helps develop high sustained WPM.",
	}
	expert = append(expert, numbered("Expert paragraph %d")...)

	return &Static{tiers: []Tier{
		{Name: "Beginner", Texts: beginner},
		{Name: "Intermediate", Texts: intermediate},
		{Name: "Expert", Texts: expert},
	}}
}

func numbered(format string) []string {
	out := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		out = append(out, fmt.Sprintf(format, i))
	}
	return out
}
