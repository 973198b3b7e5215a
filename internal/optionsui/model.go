// Package optionsui provides the Bubble Tea options panel for encounter stats.
package optionsui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/gcdstats/internal/model"
)

// Saver persists the settings record.
type Saver interface {
	Save(settings model.Settings) error
}

type itemKind int

const (
	kindToggle itemKind = iota
	kindNumber
)

type item struct {
	label   string
	tooltip string
	kind    itemKind
	indent  int
	toggle  func(s *model.Settings) *bool
	number  func(s *model.Settings) *int
	visible func(s *model.Settings) bool
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	itemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	tooltipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Inc    key.Binding
	Dec    key.Binding
	Done   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Inc, k.Dec, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Done}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle/edit")),
		Inc:    key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→", "+1")),
		Dec:    key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←", "-1")),
		Done:   key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter/esc", "finish editing")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model implements the Bubble Tea options panel.
type Model struct {
	settings *model.Settings
	saver    Saver

	items   []item
	cursor  int
	editing bool
	input   textinput.Model
	errMsg  string

	keys keyMap
	help help.Model

	width int
}

// NewModel constructs an options panel bound to settings. The panel edits the
// persisted record only; a running host picks up the enable flag on its next load.
func NewModel(settings *model.Settings, saver Saver) *Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 6
	input.Width = 8
	m := &Model{
		settings: settings,
		saver:    saver,
		items:    buildItems(),
		input:    input,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	return m
}

func buildItems() []item {
	statsOn := func(s *model.Settings) bool { return s.EnableEncounterStats }
	reportOn := func(s *model.Settings) bool { return s.EnableEncounterStats && s.EnableEncounterStatsLoggingReport }
	always := func(*model.Settings) bool { return true }
	return []item{
		{
			label:   "Enable Encounter Stats",
			tooltip: "Tracks clips and wasted GCD time while in combat, and logs the total afterwards.",
			toggle:  func(s *model.Settings) *bool { return &s.EnableEncounterStats },
			visible: always,
		},
		{
			label:   "Show GCD clip",
			tooltip: "Show individual encounter GCD clip.",
			indent:  1,
			toggle:  func(s *model.Settings) *bool { return &s.EnableEncounterStatsLoggingClip },
			visible: statsOn,
		},
		{
			label:   "Show GCD waste",
			tooltip: "Show individual encounter GCD waste.",
			indent:  1,
			toggle:  func(s *model.Settings) *bool { return &s.EnableEncounterStatsLoggingWaste },
			visible: statsOn,
		},
		{
			label:   "Show summary after combat",
			tooltip: "Show GCD clip and waste report after a combat.",
			indent:  1,
			toggle:  func(s *model.Settings) *bool { return &s.EnableEncounterStatsLoggingReport },
			visible: statsOn,
		},
		{
			label:   "But no shorter than",
			tooltip: "Show report only for combat longer than this seconds.",
			kind:    kindNumber,
			indent:  2,
			number:  func(s *model.Settings) *int { return &s.EnableEncounterStatsLoggingReportMinSeconds },
			visible: reportOn,
		},
		{
			label:   "Show encounter total time in seconds",
			tooltip: "Show encounter total time in seconds in report after combat.",
			indent:  2,
			toggle:  func(s *model.Settings) *bool { return &s.EnableEncounterStatsLoggingReportInSeconds },
			visible: reportOn,
		},
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.Toggle):
			return m, m.activate()
		case key.Matches(msg, m.keys.Inc):
			m.step(1)
		case key.Matches(msg, m.keys.Dec):
			m.step(-1)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Done) {
		m.editing = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	value, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
	if err != nil || value < 0 {
		m.errMsg = "seconds must be a non-negative number"
		return m, cmd
	}
	m.setNumber(value)
	return m, cmd
}

func (m *Model) visibleItems() []item {
	out := make([]item, 0, len(m.items))
	for _, it := range m.items {
		if it.visible(m.settings) {
			out = append(out, it)
		}
	}
	return out
}

func (m *Model) current() (item, bool) {
	visible := m.visibleItems()
	if len(visible) == 0 {
		return item{}, false
	}
	if m.cursor >= len(visible) {
		m.cursor = len(visible) - 1
	}
	return visible[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	count := len(m.visibleItems())
	if count == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= count {
		next = count - 1
	}
	m.cursor = next
}

func (m *Model) activate() tea.Cmd {
	it, ok := m.current()
	if !ok {
		return nil
	}
	if it.kind == kindNumber {
		m.editing = true
		m.input.SetValue(strconv.Itoa(*it.number(m.settings)))
		m.input.CursorEnd()
		return m.input.Focus()
	}
	ptr := it.toggle(m.settings)
	*ptr = !*ptr
	m.save()
	return nil
}

func (m *Model) step(delta int) {
	it, ok := m.current()
	if !ok || it.kind != kindNumber {
		return
	}
	value := *it.number(m.settings) + delta
	if value < 0 {
		return
	}
	m.setNumber(value)
}

func (m *Model) setNumber(value int) {
	ptr := &m.settings.EnableEncounterStatsLoggingReportMinSeconds
	if *ptr == value {
		m.errMsg = ""
		return
	}
	*ptr = value
	m.save()
}

func (m *Model) save() {
	m.report(m.saver.Save(*m.settings))
}

func (m *Model) report(err error) {
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to save settings: %v", err)
		return
	}
	m.errMsg = ""
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{titleStyle.Render("Encounter Stats"), ""}
	visible := m.visibleItems()
	for i, it := range visible {
		lines = append(lines, m.renderItem(it, i == m.cursor))
	}
	if it, ok := m.current(); ok {
		lines = append(lines, "", tooltipStyle.Render(it.tooltip))
	}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	lines = append(lines, "", m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m *Model) renderItem(it item, focused bool) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", it.indent))
	if it.indent > 1 {
		b.WriteString("┗ ")
	}
	switch it.kind {
	case kindNumber:
		value := strconv.Itoa(*it.number(m.settings))
		if focused && m.editing {
			value = m.input.View()
		}
		b.WriteString(fmt.Sprintf("%s [%s] seconds", it.label, value))
	default:
		mark := " "
		if *it.toggle(m.settings) {
			mark = "x"
		}
		b.WriteString(fmt.Sprintf("[%s] %s", mark, it.label))
	}
	if focused {
		return focusStyle.Render("> " + b.String())
	}
	return itemStyle.Render("  " + b.String())
}
