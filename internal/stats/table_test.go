package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"#", "Duration", "Reported"}
	rows := [][]string{
		{"1", "125.4", "yes"},
		{"12", "08.0", "no"},
	}
	rightAlign := map[int]bool{0: true, 1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != " #  Duration  Reported" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != " 1     125.4  yes" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "12      08.0  no" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestDisplayWidthCountsWideRunes(t *testing.T) {
	if got := displayWidth("戦闘"); got != 4 {
		t.Fatalf("expected width 4, got %d", got)
	}
}
