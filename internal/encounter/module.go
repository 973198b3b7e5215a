package encounter

import (
	"fmt"

	"github.com/verte-zerg/gcdstats/internal/model"
)

// ModuleID is the key the module registers its frame callback under.
const ModuleID = "encounter-stats"

// TickSource dispatches a callback once per frame.
type TickSource interface {
	Register(id string, fn func())
	Unregister(id string)
}

// Saver persists the settings record.
type Saver interface {
	Save(settings model.Settings) error
}

// Module binds a Tracker to a tick source and the settings record.
type Module struct {
	tracker  *Tracker
	ticks    TickSource
	saver    Saver
	settings *model.Settings
	enabled  bool
}

// NewModule constructs the stats module. It starts disabled.
func NewModule(tracker *Tracker, ticks TickSource, saver Saver, settings *model.Settings) *Module {
	return &Module{
		tracker:  tracker,
		ticks:    ticks,
		saver:    saver,
		settings: settings,
	}
}

// IsEnabled reports the persisted enable flag.
func (m *Module) IsEnabled() bool {
	return m.settings.EnableEncounterStats
}

// SetEnabled updates and saves the enable flag, subscribing or unsubscribing as needed.
func (m *Module) SetEnabled(enabled bool) error {
	m.settings.EnableEncounterStats = enabled
	if enabled {
		m.Enable()
	} else {
		m.Disable()
	}
	if err := m.saver.Save(*m.settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Enable subscribes the tracker to the frame tick.
func (m *Module) Enable() {
	if m.enabled {
		return
	}
	m.ticks.Register(ModuleID, m.tracker.Update)
	m.enabled = true
}

// Disable unsubscribes the tracker from the frame tick.
func (m *Module) Disable() {
	if !m.enabled {
		return
	}
	m.ticks.Unregister(ModuleID)
	m.enabled = false
}

// Subscribed reports whether the frame callback is registered.
func (m *Module) Subscribed() bool {
	return m.enabled
}
