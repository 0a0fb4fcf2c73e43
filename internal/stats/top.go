package stats

import (
	"sort"

	"github.com/verte-zerg/typesmart/internal/model"
)

// TopKeysByFrequency returns the top N keys by total presses.
func TopKeysByFrequency(keys []model.KeyRatio, n int) []string {
	if n <= 0 || len(keys) == 0 {
		return nil
	}
	items := make([]model.KeyRatio, len(keys))
	copy(items, keys)
	sort.Slice(items, func(i, j int) bool {
		ti := items[i].Correct + items[i].Wrong
		tj := items[j].Correct + items[j].Wrong
		if ti == tj {
			return items[i].Key < items[j].Key
		}
		return ti > tj
	})
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].Key)
	}
	return out
}
