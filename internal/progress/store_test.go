package progress

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typesmart/internal/model"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "progress.json"))
	p, err := st.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(model.NewProgress(), p); diff != "" {
		t.Fatalf("unexpected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadCorruptFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	p, err := NewStore(path).Load()
	require.Error(t, err)
	require.NotNil(t, p)
	require.Equal(t, "neon", p.Theme)
	require.Equal(t, 1, p.Level)
	require.Empty(t, p.Heatmap)
}

func TestLoadFillsMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	older := `{"level": 2, "current_set": 4, "total_words": 37, "heatmap": null}`
	require.NoError(t, os.WriteFile(path, []byte(older), 0o644))

	p, err := NewStore(path).Load()
	require.NoError(t, err)
	require.Equal(t, 2, p.Level)
	require.Equal(t, 4, p.CurrentSet)
	require.Equal(t, 37, p.TotalWords)
	require.Equal(t, "neon", p.Theme)
	require.NotNil(t, p.Heatmap)
	require.NotNil(t, p.CustomLessons)
	require.Equal(t, "", p.LastPractice)
}

func TestLoadReplacesUnknownTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme": "plaid"}`), 0o644))

	p, err := NewStore(path).Load()
	require.NoError(t, err)
	require.Equal(t, "neon", p.Theme)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(filepath.Join(dir, "nested", "progress.json"))
	want := &model.Progress{
		Theme:         "dark",
		Level:         3,
		CurrentSet:    7,
		TotalWords:    120,
		TotalErrors:   0,
		TotalTime:     93.5,
		Heatmap:       model.Heatmap{"a": {Correct: 4, Wrong: 1}, "é": {Correct: 1}},
		Streak:        2,
		LastPractice:  "2026-10-14",
		CustomLessons: []string{"first lesson", "second lesson"},
	}
	require.NoError(t, st.Save(want))

	got, err := st.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(filepath.Join(dir, "progress.json"))
	require.NoError(t, st.Save(model.NewProgress()))
	require.NoError(t, st.Save(model.NewProgress()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "progress.json", entries[0].Name())
}

func TestSaveFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	st := NewStore(filepath.Join(blocker, "progress.json"))
	require.Error(t, st.Save(model.NewProgress()))
}
