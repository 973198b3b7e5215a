// Package model defines shared data structures.
package model

import "time"

// Settings is the persisted settings record for encounter stats.
type Settings struct {
	EnableEncounterStats                        bool
	EnableEncounterStatsLoggingReport           bool
	EnableEncounterStatsLoggingReportMinSeconds int
	EnableEncounterStatsLoggingReportInSeconds  bool
	EnableEncounterStatsLoggingClip             bool
	EnableEncounterStatsLoggingWaste            bool
}

// DefaultSettings returns the settings used when nothing is persisted.
func DefaultSettings() Settings {
	return Settings{
		EnableEncounterStats:                        false,
		EnableEncounterStatsLoggingReport:           false,
		EnableEncounterStatsLoggingReportMinSeconds: 30,
		EnableEncounterStatsLoggingReportInSeconds:  true,
		EnableEncounterStatsLoggingClip:             true,
		EnableEncounterStatsLoggingWaste:            false,
	}
}

// Sample is a read-only snapshot of the game's action state.
type Sample struct {
	CurrentSequence   uint16
	IsGCDRecastActive bool
	IsQueued          bool
	AnimationLock     float32
}

// Frame is one recorded frame of a trace.
type Frame struct {
	Time     float64
	Delta    float64
	InCombat bool
	Sample   Sample
}

// EncounterSummary describes a finished encounter.
type EncounterSummary struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Elapsed    time.Duration
	TotalClip  float64
	TotalWaste float64
	Clips      int
	Wastes     int
	Reported   bool
}
