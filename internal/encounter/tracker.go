// Package encounter tracks GCD clipping and wasted GCD time per combat encounter.
package encounter

import (
	"time"

	"github.com/verte-zerg/gcdstats/internal/model"
	"github.com/verte-zerg/gcdstats/internal/stats"
)

// castTax is the animation lock left behind by a cast. Locks of exactly this
// value are not counted as clips.
// TODO: replace with a real cast detection once the action state exposes one;
// this also counts limit breaks.
const castTax float32 = 0.1

// CombatStatus reports whether the player is in combat.
type CombatStatus interface {
	InCombat() bool
}

// ActionState provides snapshots of the game's action manager.
type ActionState interface {
	Snapshot() model.Sample
}

// FrameClock reports the seconds elapsed since the previous frame.
type FrameClock interface {
	DeltaTime() float64
}

// Clock provides wall-clock time for encounter timing.
type Clock interface {
	Now() time.Time
}

// Printer receives user-facing log lines.
type Printer interface {
	Printf(format string, args ...any)
}

// State is the encounter timer state.
type State int

const (
	// Idle means no encounter is running.
	Idle State = iota
	// Active means an encounter started and has not ended yet.
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Host bundles the collaborators a Tracker reads from.
type Host struct {
	Combat  CombatStatus
	Actions ActionState
	Frame   FrameClock
	Clock   Clock
	Log     Printer
}

// Totals is a read-only view of the current encounter accumulators.
type Totals struct {
	Clip         float64
	Waste        float64
	PendingWaste float64
	Clips        int
	Wastes       int
	LastSequence uint16
}

// Tracker detects clips and wasted GCD time while in combat.
type Tracker struct {
	host     Host
	settings *model.Settings

	// OnEncounterEnd, when set, receives every finished encounter.
	OnEncounterEnd func(model.EncounterSummary)

	startedAt        time.Time
	lastDetectedClip uint16
	pendingWaste     float64
	totalClip        float64
	totalWaste       float64
	clips            int
	wastes           int
}

// NewTracker constructs a tracker reading settings through the given pointer.
func NewTracker(host Host, settings *model.Settings) *Tracker {
	return &Tracker{host: host, settings: settings}
}

// State reports whether an encounter is running.
func (t *Tracker) State() State {
	if t.startedAt.IsZero() {
		return Idle
	}
	return Active
}

// StartedAt returns the start time of the running encounter, or the zero time.
func (t *Tracker) StartedAt() time.Time {
	return t.startedAt
}

// Totals returns the current accumulators.
func (t *Tracker) Totals() Totals {
	return Totals{
		Clip:         t.totalClip,
		Waste:        t.totalWaste,
		PendingWaste: t.pendingWaste,
		Clips:        t.clips,
		Wastes:       t.wastes,
		LastSequence: t.lastDetectedClip,
	}
}

// Update is the per-frame entry point. It reads the frame delta from the host.
func (t *Tracker) Update() {
	t.UpdateFrame(t.host.Frame.DeltaTime())
}

// UpdateFrame runs one frame with an explicit delta in seconds.
func (t *Tracker) UpdateFrame(dt float64) {
	if t.host.Combat.InCombat() {
		if t.State() == Idle {
			t.BeginEncounter()
		}
		sample := t.host.Actions.Snapshot()
		t.detectClipping(sample)
		t.detectWastedGCD(sample, dt)
		return
	}
	if t.State() == Active {
		t.EndEncounter()
	}
}

// BeginEncounter starts a fresh encounter and discards previous totals.
func (t *Tracker) BeginEncounter() {
	t.startedAt = t.host.Clock.Now()
	t.totalClip = 0
	t.totalWaste = 0
	t.pendingWaste = 0
	t.clips = 0
	t.wastes = 0
}

// EndEncounter prints the summary line when enabled and returns to Idle.
func (t *Tracker) EndEncounter() {
	now := t.host.Clock.Now()
	summary := model.EncounterSummary{
		StartedAt:  t.startedAt,
		EndedAt:    now,
		Elapsed:    now.Sub(t.startedAt),
		TotalClip:  t.totalClip,
		TotalWaste: t.totalWaste,
		Clips:      t.clips,
		Wastes:     t.wastes,
	}
	if t.settings.EnableEncounterStatsLoggingReport && t.shouldReport(summary.Elapsed) {
		t.host.Log.Printf("%s", stats.FormatReport(summary.Elapsed, t.totalClip, t.totalWaste, t.settings.EnableEncounterStatsLoggingReportInSeconds))
		summary.Reported = true
	}
	t.startedAt = time.Time{}
	if t.OnEncounterEnd != nil {
		t.OnEncounterEnd(summary)
	}
}

func (t *Tracker) shouldReport(elapsed time.Duration) bool {
	if elapsed.Seconds() < float64(t.settings.EnableEncounterStatsLoggingReportMinSeconds) {
		return false
	}
	return t.totalClip != 0 || t.totalWaste != 0
}

func (t *Tracker) detectClipping(s model.Sample) {
	lock := s.AnimationLock
	if t.lastDetectedClip == s.CurrentSequence || s.IsGCDRecastActive || lock <= 0 {
		return
	}
	if lock != castTax {
		t.totalClip += float64(lock)
		t.clips++
		if t.settings.EnableEncounterStatsLoggingClip {
			t.host.Log.Printf("%s", stats.FormatClip(float64(lock)))
		}
	}
	t.lastDetectedClip = s.CurrentSequence
}

func (t *Tracker) detectWastedGCD(s model.Sample, dt float64) {
	if !s.IsGCDRecastActive && !s.IsQueued {
		if s.AnimationLock > 0 {
			return
		}
		t.pendingWaste += dt
		return
	}
	if t.pendingWaste <= 0 {
		return
	}
	t.totalWaste += t.pendingWaste
	t.wastes++
	if t.settings.EnableEncounterStatsLoggingWaste {
		t.host.Log.Printf("%s", stats.FormatWaste(t.pendingWaste))
	}
	t.pendingWaste = 0
}
