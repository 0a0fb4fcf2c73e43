package tracker

import (
	"time"

	"github.com/verte-zerg/typesmart/internal/model"
)

// DateLayout is the calendar date format stored in last_practice.
const DateLayout = "2006-01-02"

// MarkPractice counts today as a practice day. It returns false when today
// was already counted. Skipped days never reset the streak.
func MarkPractice(p *model.Progress, today time.Time) bool {
	day := today.Format(DateLayout)
	if p.LastPractice == day {
		return false
	}
	p.Streak++
	p.LastPractice = day
	return true
}
