// Package model defines shared data structures.
package model

// DefaultTheme is used for fresh documents and whenever a stored theme is unknown.
const DefaultTheme = "neon"

// Config defines practice settings.
type Config struct {
	BarWidth        int
	CompleteDelayMs int
	RescanHeatmap   bool
	TestMinutes     int
}

// KeyCounts stores cumulative correctness counters for a single key.
type KeyCounts struct {
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}

// Heatmap maps a single-character key to its counters.
type Heatmap map[string]KeyCounts

// Progress is the persisted practice document.
type Progress struct {
	Theme         string   `json:"theme"`
	Level         int      `json:"level"`
	CurrentSet    int      `json:"current_set"`
	TotalWords    int      `json:"total_words"`
	TotalErrors   int      `json:"total_errors"`
	TotalTime     float64  `json:"total_time"`
	Heatmap       Heatmap  `json:"heatmap"`
	Streak        int      `json:"streak"`
	LastPractice  string   `json:"last_practice"`
	CustomLessons []string `json:"custom_lessons"`
}

// NewProgress returns a document populated with defaults.
func NewProgress() *Progress {
	return &Progress{
		Theme:         DefaultTheme,
		Level:         1,
		Heatmap:       Heatmap{},
		CustomLessons: []string{},
	}
}

// Clone returns a deep copy of the document.
func (p *Progress) Clone() *Progress {
	out := *p
	out.Heatmap = make(Heatmap, len(p.Heatmap))
	for k, v := range p.Heatmap {
		out.Heatmap[k] = v
	}
	out.CustomLessons = append([]string{}, p.CustomLessons...)
	return &out
}

// Summary holds display statistics derived from a Progress document.
type Summary struct {
	Level         int
	TotalWords    int
	TotalErrors   int
	TotalTime     float64
	AverageWPM    float64
	Streak        int
	LastPractice  string
	CustomLessons int
	Keys          []KeyRatio
}

// KeyRatio is the accuracy ratio for one heatmap key.
type KeyRatio struct {
	Key     string
	Correct int
	Wrong   int
	Ratio   float64
}
