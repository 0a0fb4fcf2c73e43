// Package generator picks practice samples.
package generator

import (
	"math/rand"
	"time"
)

// Generator picks randomized practice text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick returns a uniformly chosen text, or "" when texts is empty.
func (g *Generator) Pick(texts []string) string {
	if len(texts) == 0 {
		return ""
	}
	return texts[g.rnd.Intn(len(texts))]
}

// PickOther is like Pick but avoids returning prev when another choice exists.
func (g *Generator) PickOther(texts []string, prev string) string {
	others := make([]string, 0, len(texts))
	for _, s := range texts {
		if s != prev {
			others = append(others, s)
		}
	}
	if len(others) == 0 {
		return g.Pick(texts)
	}
	return g.Pick(others)
}
