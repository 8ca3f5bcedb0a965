package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	cols := []column{
		{title: "Ended"},
		{title: "Planned", right: true},
		{title: "Status"},
	}
	rows := [][]string{
		{"09:00", "5m", "completed"},
		{"10:30", "1h15m", "abandoned"},
	}

	lines := formatTable(cols, rows)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Ended  Planned  Status" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "09:00       5m  completed" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "10:30    1h15m  abandoned" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunesAndCap(t *testing.T) {
	cols := []column{{title: "Name", max: 6}, {title: "N", right: true}}
	rows := [][]string{
		{"集中", "1"},
		{"abcdefghij", "2"},
	}
	lines := formatTable(cols, rows)
	if lines[0] != "Name    N" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "集中    1" {
		t.Fatalf("unexpected wide rune row: %q", lines[1])
	}
	if lines[2] != "abcde…  2" {
		t.Fatalf("unexpected truncated row: %q", lines[2])
	}
}
