// Package config provides settings persistence and TOML parsing.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/gcdstats/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Stats StatsConfig `toml:"stats"`
}

// StatsConfig maps encounter stats settings. Nil fields keep their defaults.
type StatsConfig struct {
	Enabled          *bool `toml:"enabled"`
	Report           *bool `toml:"report"`
	ReportMinSeconds *int  `toml:"report-min-seconds"`
	ReportInSeconds  *bool `toml:"report-in-seconds"`
	LogClip          *bool `toml:"log-clip"`
	LogWaste         *bool `toml:"log-waste"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Apply overlays the values set in the file onto settings.
func (c StatsConfig) Apply(settings *model.Settings) {
	if c.Enabled != nil {
		settings.EnableEncounterStats = *c.Enabled
	}
	if c.Report != nil {
		settings.EnableEncounterStatsLoggingReport = *c.Report
	}
	if c.ReportMinSeconds != nil {
		settings.EnableEncounterStatsLoggingReportMinSeconds = *c.ReportMinSeconds
	}
	if c.ReportInSeconds != nil {
		settings.EnableEncounterStatsLoggingReportInSeconds = *c.ReportInSeconds
	}
	if c.LogClip != nil {
		settings.EnableEncounterStatsLoggingClip = *c.LogClip
	}
	if c.LogWaste != nil {
		settings.EnableEncounterStatsLoggingWaste = *c.LogWaste
	}
}

// LoadSettings reads settings from path, starting from the defaults.
func LoadSettings(path string) (model.Settings, error) {
	settings := model.DefaultSettings()
	cfg, err := LoadConfig(path)
	if err != nil {
		return settings, err
	}
	cfg.Stats.Apply(&settings)
	if err := Validate(settings); err != nil {
		return model.DefaultSettings(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return settings, nil
}

// Validate rejects settings no panel or tracker can act on.
func Validate(settings model.Settings) error {
	if settings.EnableEncounterStatsLoggingReportMinSeconds < 0 {
		return fmt.Errorf("report-min-seconds must be >= 0, got %d", settings.EnableEncounterStatsLoggingReportMinSeconds)
	}
	return nil
}

func fromSettings(settings model.Settings) FileConfig {
	return FileConfig{Stats: StatsConfig{
		Enabled:          &settings.EnableEncounterStats,
		Report:           &settings.EnableEncounterStatsLoggingReport,
		ReportMinSeconds: &settings.EnableEncounterStatsLoggingReportMinSeconds,
		ReportInSeconds:  &settings.EnableEncounterStatsLoggingReportInSeconds,
		LogClip:          &settings.EnableEncounterStatsLoggingClip,
		LogWaste:         &settings.EnableEncounterStatsLoggingWaste,
	}}
}

// Store persists settings to a TOML file.
type Store struct {
	path string
}

// NewStore returns a Store writing to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the settings file.
func (s *Store) Load() (model.Settings, error) {
	return LoadSettings(s.path)
}

// Save writes the full settings record, replacing the file atomically.
func (s *Store) Save(settings model.Settings) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(fromSettings(settings)); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "config-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close config: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
