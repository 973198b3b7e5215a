package optionsui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/gcdstats/internal/model"
)

type recordingSaver struct {
	saved []model.Settings
	err   error
}

func (r *recordingSaver) Save(settings model.Settings) error {
	r.saved = append(r.saved, settings)
	return r.err
}

func press(m *Model, msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

var (
	keySpace     = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyDown      = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter     = tea.KeyMsg{Type: tea.KeyEnter}
	keyRight     = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft      = tea.KeyMsg{Type: tea.KeyLeft}
	keyBackspace = tea.KeyMsg{Type: tea.KeyBackspace}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSubOptionsHiddenUntilEnabled(t *testing.T) {
	settings := model.DefaultSettings()
	m := NewModel(&settings, &recordingSaver{})
	if got := len(m.visibleItems()); got != 1 {
		t.Fatalf("expected only the enable checkbox, got %d items", got)
	}
	settings.EnableEncounterStats = true
	if got := len(m.visibleItems()); got != 4 {
		t.Fatalf("expected 4 items with stats enabled, got %d", got)
	}
	settings.EnableEncounterStatsLoggingReport = true
	if got := len(m.visibleItems()); got != 6 {
		t.Fatalf("expected 6 items with report enabled, got %d", got)
	}
}

func TestToggleSavesImmediately(t *testing.T) {
	settings := model.DefaultSettings()
	saver := &recordingSaver{}
	m := NewModel(&settings, saver)

	press(m, keySpace)
	if !settings.EnableEncounterStats {
		t.Fatalf("expected stats enabled")
	}
	press(m, keyDown, keyDown, keySpace)
	if !settings.EnableEncounterStatsLoggingWaste {
		t.Fatalf("expected waste logging enabled")
	}
	if len(saver.saved) != 2 {
		t.Fatalf("expected 2 saves, got %d", len(saver.saved))
	}
	if !saver.saved[1].EnableEncounterStats || !saver.saved[1].EnableEncounterStatsLoggingWaste {
		t.Fatalf("unexpected saved record: %+v", saver.saved[1])
	}
}

func TestMinSecondsEditing(t *testing.T) {
	settings := model.DefaultSettings()
	settings.EnableEncounterStats = true
	settings.EnableEncounterStatsLoggingReport = true
	saver := &recordingSaver{}
	m := NewModel(&settings, saver)

	press(m, keyDown, keyDown, keyDown, keyDown)
	if it, _ := m.current(); it.kind != kindNumber {
		t.Fatalf("expected cursor on number input, got %q", it.label)
	}

	press(m, keyRight, keyRight, keyLeft)
	if settings.EnableEncounterStatsLoggingReportMinSeconds != 31 {
		t.Fatalf("expected 31 after stepping, got %d", settings.EnableEncounterStatsLoggingReportMinSeconds)
	}

	press(m, keyEnter, keyBackspace, keyBackspace)
	if !m.editing {
		t.Fatalf("expected editing mode")
	}
	if m.errMsg == "" {
		t.Fatalf("expected validation error for empty input")
	}
	press(m, runes("4"), runes("5"), keyEnter)
	if m.editing {
		t.Fatalf("expected editing finished")
	}
	if settings.EnableEncounterStatsLoggingReportMinSeconds != 45 {
		t.Fatalf("expected 45, got %d", settings.EnableEncounterStatsLoggingReportMinSeconds)
	}
	last := saver.saved[len(saver.saved)-1]
	if last.EnableEncounterStatsLoggingReportMinSeconds != 45 {
		t.Fatalf("expected 45 saved, got %+v", last)
	}
	if len(saver.saved) != 6 {
		t.Fatalf("expected a save per change, got %d", len(saver.saved))
	}
}

func TestSaveErrorShown(t *testing.T) {
	settings := model.DefaultSettings()
	saver := &recordingSaver{err: errors.New("read-only file system")}
	m := NewModel(&settings, saver)
	press(m, keySpace)
	if !strings.Contains(m.View(), "read-only file system") {
		t.Fatalf("expected save error in view:\n%s", m.View())
	}
}

func TestViewShowsTooltipAndChecks(t *testing.T) {
	settings := model.DefaultSettings()
	settings.EnableEncounterStats = true
	m := NewModel(&settings, &recordingSaver{})
	out := m.View()
	for _, want := range []string{"[x] Enable Encounter Stats", "[x] Show GCD clip", "[ ] Show GCD waste", "Tracks clips and wasted GCD time"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestCursorClampedWhenItemsHide(t *testing.T) {
	settings := model.DefaultSettings()
	settings.EnableEncounterStats = true
	m := NewModel(&settings, &recordingSaver{})
	press(m, keyDown, keyDown, keyDown)
	settings.EnableEncounterStats = false
	it, ok := m.current()
	if !ok || it.label != "Enable Encounter Stats" {
		t.Fatalf("expected cursor clamped to first item, got %q", it.label)
	}
}
