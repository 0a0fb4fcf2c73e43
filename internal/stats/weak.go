package stats

import (
	"sort"

	"github.com/verte-zerg/typesmart/internal/model"
)

// SortWeakest returns a copy of keys ordered by ascending accuracy.
func SortWeakest(keys []model.KeyRatio) []model.KeyRatio {
	out := make([]model.KeyRatio, len(keys))
	copy(out, keys)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ratio == out[j].Ratio {
			return out[i].Key < out[j].Key
		}
		return out[i].Ratio < out[j].Ratio
	})
	return out
}

// WeakKeys returns up to top of the lowest-accuracy keys. Keys with no
// mistakes are never weak.
func WeakKeys(keys []model.KeyRatio, top int) []string {
	var out []string
	for _, k := range SortWeakest(keys) {
		if top > 0 && len(out) >= top {
			break
		}
		if k.Wrong == 0 {
			continue
		}
		out = append(out, k.Key)
	}
	return out
}
