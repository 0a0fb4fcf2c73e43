package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/typesmart/internal/lessons"
	"github.com/verte-zerg/typesmart/internal/levels"
	"github.com/verte-zerg/typesmart/internal/model"
	"github.com/verte-zerg/typesmart/internal/theme"
)

const (
	minElapsed      = 0.001
	defaultBarWidth = 20
)

var (
	// ErrUnknownTheme is returned for theme names outside the enumerated set.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrEmptyLesson is returned when a custom lesson has no text.
	ErrEmptyLesson = errors.New("lesson text is empty")
	// ErrUntypeableLesson is returned when a lesson holds control characters.
	ErrUntypeableLesson = errors.New("lesson contains control characters")
)

// Saver persists the progress document.
type Saver interface {
	Save(p *model.Progress) error
}

// State is the phase of the current attempt.
type State int

// Attempt states.
const (
	StateLoaded State = iota
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateInProgress:
		return "in-progress"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Update is the live result of one typed-text change.
type Update struct {
	WPM       float64
	Accuracy  float64
	Elapsed   float64
	Completed bool
}

// Snapshot is everything the rendering side needs for one frame.
type Snapshot struct {
	Target    string
	Typed     string
	WPM       float64
	Accuracy  float64
	Bar       string
	Level     int
	SetIndex  int
	TotalSets int
	State     State
}

// Engine owns the progress document and the current attempt.
type Engine struct {
	progress *model.Progress
	catalog  levels.Catalog
	saver    Saver
	rescan   bool
	barWidth int

	state       State
	target      string
	targetRunes []rune
	startedAt   time.Time
	typed       string
	scored      int
	wpm         float64
	accuracy    float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRescanHeatmap scores every typed position on every change instead of
// only positions not yet scored in the current attempt.
func WithRescanHeatmap(rescan bool) Option {
	return func(e *Engine) {
		e.rescan = rescan
	}
}

// WithBarWidth sets the progress bar width.
func WithBarWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.barWidth = width
		}
	}
}

// NewEngine returns an engine over p. Call LoadSet before the first Type.
func NewEngine(p *model.Progress, catalog levels.Catalog, saver Saver, opts ...Option) *Engine {
	e := &Engine{
		progress: p,
		catalog:  catalog,
		saver:    saver,
		barWidth: defaultBarWidth,
		accuracy: 100,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Progress returns the live document. Callers must not mutate it.
func (e *Engine) Progress() *model.Progress {
	return e.progress
}

// State returns the attempt state.
func (e *Engine) State() State {
	return e.state
}

// Target returns the current practice text.
func (e *Engine) Target() string {
	return e.target
}

// LoadSet starts an attempt on the set at the current index. When the index is
// past the end of the level, the next level is entered, or the top level wraps
// to its first set. tierDone reports that wrap-or-advance happened.
func (e *Engine) LoadSet(now time.Time) (tierDone bool, err error) {
	maxLevel := e.catalog.MaxLevel()
	if maxLevel < 1 {
		return false, levels.ErrEmptyCatalog
	}
	p := e.progress
	changed := false
	if p.Level < 1 || p.Level > maxLevel {
		p.Level = max(1, min(p.Level, maxLevel))
		p.CurrentSet = 0
		changed = true
	}
	texts := e.catalog.Texts(p.Level)
	if p.CurrentSet < 0 {
		p.CurrentSet = 0
		changed = true
	}
	if p.CurrentSet >= len(texts) {
		if p.Level < maxLevel {
			p.Level++
			texts = e.catalog.Texts(p.Level)
		}
		p.CurrentSet = 0
		tierDone = true
		changed = true
	}
	if len(texts) == 0 {
		return tierDone, fmt.Errorf("level %d: %w", p.Level, levels.ErrEmptyCatalog)
	}

	e.target = texts[p.CurrentSet]
	e.targetRunes = []rune(e.target)
	e.startedAt = now
	e.typed = ""
	e.scored = 0
	e.wpm = 0
	e.accuracy = 100
	e.state = StateLoaded

	if changed {
		if err := e.save(); err != nil {
			return tierDone, err
		}
	}
	return tierDone, nil
}

// Type processes the full typed text after a change.
func (e *Engine) Type(typed string, now time.Time) (Update, error) {
	if e.state == StateCompleted {
		return e.update(now), nil
	}
	e.state = StateInProgress
	e.typed = typed

	typedRunes := []rune(typed)
	from := min(e.scored, len(typedRunes))
	if e.rescan {
		from = 0
	}
	scoreRange(e.progress.Heatmap, typedRunes, e.targetRunes, from)
	e.scored = len(typedRunes)

	elapsed := e.elapsed(now)
	e.wpm = float64(WordCount(typed)) / elapsed * 60
	e.accuracy = Accuracy(typedRunes, e.targetRunes)

	if Normalize(typed) != Normalize(e.target) {
		return e.update(now), nil
	}

	e.progress.TotalWords += WordCount(e.target)
	e.progress.TotalTime += elapsed
	e.progress.CurrentSet++
	e.state = StateCompleted
	upd := e.update(now)
	upd.Completed = true
	return upd, e.save()
}

// NextSet skips to the following set and persists the new position.
func (e *Engine) NextSet(now time.Time) (tierDone bool, err error) {
	e.progress.CurrentSet++
	tierDone, err = e.LoadSet(now)
	if err != nil {
		return tierDone, err
	}
	return tierDone, e.save()
}

// MarkPractice records a practice day and persists when the streak changed.
func (e *Engine) MarkPractice(today time.Time) (bool, error) {
	if !MarkPractice(e.progress, today) {
		return false, nil
	}
	return true, e.save()
}

// AddCustomLesson appends a user lesson.
func (e *Engine) AddCustomLesson(text string) error {
	return e.AddCustomLessons(text)
}

// AddCustomLessons validates every text, appends them in order and saves once.
// Nothing is appended when any text is rejected.
func (e *Engine) AddCustomLessons(texts ...string) error {
	clean := make([]string, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			return ErrEmptyLesson
		}
		if !lessons.Typeable(text) {
			return fmt.Errorf("%w: %q", ErrUntypeableLesson, text)
		}
		clean = append(clean, text)
	}
	if len(clean) == 0 {
		return ErrEmptyLesson
	}
	e.progress.CustomLessons = append(e.progress.CustomLessons, clean...)
	return e.save()
}

// SetTheme switches the theme. Unknown names leave the document untouched.
func (e *Engine) SetTheme(name string) error {
	if !theme.Valid(name) {
		return fmt.Errorf("%w %q (available: %s)", ErrUnknownTheme, name, strings.Join(theme.Names(), ", "))
	}
	e.progress.Theme = name
	return e.save()
}

// Save persists the document as it stands.
func (e *Engine) Save() error {
	return e.save()
}

// Snapshot returns the rendering payload for the current attempt.
func (e *Engine) Snapshot() Snapshot {
	total := len(e.catalog.Texts(e.progress.Level))
	setIndex := min(e.progress.CurrentSet, total)
	return Snapshot{
		Target:    e.target,
		Typed:     e.typed,
		WPM:       e.wpm,
		Accuracy:  e.accuracy,
		Bar:       ProgressBar(setIndex, total, e.barWidth),
		Level:     e.progress.Level,
		SetIndex:  setIndex,
		TotalSets: total,
		State:     e.state,
	}
}

func (e *Engine) update(now time.Time) Update {
	return Update{
		WPM:      e.wpm,
		Accuracy: e.accuracy,
		Elapsed:  e.elapsed(now),
	}
}

func (e *Engine) elapsed(now time.Time) float64 {
	return max(minElapsed, now.Sub(e.startedAt).Seconds())
}

func (e *Engine) save() error {
	if e.saver == nil {
		return nil
	}
	if err := e.saver.Save(e.progress); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
