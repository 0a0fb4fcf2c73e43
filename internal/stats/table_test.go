package stats

import "testing"

func TestAlignRowsColumns(t *testing.T) {
	headers := []string{"Key", "Accuracy", "Wrong"}
	rows := [][]string{
		{"a", "97.50%", "12"},
		{"<space>", "8.00%", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := alignRows(append([][]string{headers}, rows...), rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Key     Accuracy Wrong" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "a         97.50%    12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "<space>    8.00%     3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestAlignRowsWideRunes(t *testing.T) {
	lines := alignRows([][]string{{"K", "N"}, {"字", "1"}, {"a", "2"}}, nil)
	if lines[1] != "字 1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "a  2" {
		t.Fatalf("unexpected narrow row: %q", lines[2])
	}
}

func TestAlignRowsShortRow(t *testing.T) {
	lines := alignRows([][]string{{"a", "bb"}, {"ccc"}}, nil)
	if lines[0] != "a   bb" {
		t.Fatalf("unexpected first row: %q", lines[0])
	}
	if lines[1] != "ccc   " {
		t.Fatalf("unexpected short row: %q", lines[1])
	}
}
