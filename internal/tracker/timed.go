package tracker

import (
	"fmt"
	"time"
)

// TimedTest is a fixed-duration test driven by input events and clock ticks.
// It never blocks; the caller reports submissions and the current time.
type TimedTest struct {
	minutes   int
	startedAt time.Time
	deadline  time.Time
	endedAt   time.Time
	words     int
	done      bool
	cancelled bool
}

// TestResult is the outcome of a timed test.
type TestResult struct {
	Minutes   int
	Words     int
	WPM       float64
	Elapsed   time.Duration
	Cancelled bool
}

// StartTimedTest begins a test lasting the given number of minutes.
func StartTimedTest(minutes int, now time.Time) (*TimedTest, error) {
	if minutes <= 0 {
		return nil, fmt.Errorf("test minutes must be > 0, got %d", minutes)
	}
	return &TimedTest{
		minutes:   minutes,
		startedAt: now,
		deadline:  now.Add(time.Duration(minutes) * time.Minute),
	}, nil
}

// Submit adds the words of one typed sample. Submissions after the deadline
// end the test and are not counted.
func (t *TimedTest) Submit(text string, now time.Time) bool {
	if t.Tick(now) {
		return false
	}
	t.words += WordCount(text)
	return true
}

// Tick ends the test once the deadline has passed and reports whether it is over.
func (t *TimedTest) Tick(now time.Time) bool {
	if !t.done && !now.Before(t.deadline) {
		t.done = true
		t.endedAt = t.deadline
	}
	return t.done
}

// Cancel ends the test early.
func (t *TimedTest) Cancel(now time.Time) {
	if t.done {
		return
	}
	t.done = true
	t.cancelled = true
	t.endedAt = now
}

// Done reports whether the test is over.
func (t *TimedTest) Done() bool {
	return t.done
}

// Remaining returns the time left before the deadline.
func (t *TimedTest) Remaining(now time.Time) time.Duration {
	if t.done {
		return 0
	}
	return max(0, t.deadline.Sub(now))
}

// Result computes the outcome once the test is Done. A finished test divides
// by the full duration; a cancelled one by the time actually spent.
func (t *TimedTest) Result() TestResult {
	res := TestResult{
		Minutes:   t.minutes,
		Words:     t.words,
		Cancelled: t.cancelled,
		Elapsed:   t.endedAt.Sub(t.startedAt),
	}
	minutes := float64(t.minutes)
	if t.cancelled {
		minutes = max(minElapsed, res.Elapsed.Seconds()) / 60
	}
	res.WPM = float64(t.words) / minutes
	return res
}
