package tracker

import "github.com/verte-zerg/typesmart/internal/model"

// RecordKey increments the correct or wrong counter for key.
func RecordKey(hm model.Heatmap, key string, correct bool) {
	counts := hm[key]
	if correct {
		counts.Correct++
	} else {
		counts.Wrong++
	}
	hm[key] = counts
}

// scoreRange records typed[from:] against target into hm.
func scoreRange(hm model.Heatmap, typed, target []rune, from int) {
	for i := from; i < len(typed); i++ {
		correct := i < len(target) && typed[i] == target[i]
		RecordKey(hm, string(typed[i]), correct)
	}
}
