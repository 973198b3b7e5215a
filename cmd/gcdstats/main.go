// Package main provides the CLI entrypoint for gcdstats.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/gcdstats/internal/chatlog"
	"github.com/verte-zerg/gcdstats/internal/config"
	"github.com/verte-zerg/gcdstats/internal/encounter"
	"github.com/verte-zerg/gcdstats/internal/model"
	"github.com/verte-zerg/gcdstats/internal/optionsui"
	"github.com/verte-zerg/gcdstats/internal/stats"
	"github.com/verte-zerg/gcdstats/internal/trace"
)

var (
	replayReport     bool
	replayMinSeconds int
	replayInSeconds  bool
	replayLogClip    bool
	replayLogWaste   bool
	replayNoSummary  bool
	replayColor      string
	configPath       string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := model.DefaultSettings()
	rootCmd := &cobra.Command{
		Use:           "gcdstats",
		Short:         "GCD clip and waste encounter stats",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "settings file")

	replayCmd := &cobra.Command{
		Use:   "replay <trace.csv>",
		Short: "Replay a recorded action-state trace",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplayCmd,
	}
	replayCmd.Flags().BoolVar(&replayReport, "report", defaults.EnableEncounterStatsLoggingReport, "show summary after combat")
	replayCmd.Flags().IntVar(&replayMinSeconds, "min-seconds", defaults.EnableEncounterStatsLoggingReportMinSeconds, "minimum encounter length for a summary")
	replayCmd.Flags().BoolVar(&replayInSeconds, "in-seconds", defaults.EnableEncounterStatsLoggingReportInSeconds, "show encounter time in seconds")
	replayCmd.Flags().BoolVar(&replayLogClip, "log-clip", defaults.EnableEncounterStatsLoggingClip, "show individual GCD clips")
	replayCmd.Flags().BoolVar(&replayLogWaste, "log-waste", defaults.EnableEncounterStatsLoggingWaste, "show individual GCD waste")
	replayCmd.Flags().BoolVar(&replayNoSummary, "no-summary", false, "skip the encounter table")
	replayCmd.Flags().StringVar(&replayColor, "color", "auto", "color output: auto, always, never")

	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(newOptionsCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func runReplayCmd(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolFlag(cmd, "report", &settings.EnableEncounterStatsLoggingReport, replayReport)
	applyIntFlag(cmd, "min-seconds", &settings.EnableEncounterStatsLoggingReportMinSeconds, replayMinSeconds)
	applyBoolFlag(cmd, "in-seconds", &settings.EnableEncounterStatsLoggingReportInSeconds, replayInSeconds)
	applyBoolFlag(cmd, "log-clip", &settings.EnableEncounterStatsLoggingClip, replayLogClip)
	applyBoolFlag(cmd, "log-waste", &settings.EnableEncounterStatsLoggingWaste, replayLogWaste)
	if err := config.Validate(settings); err != nil {
		return fmt.Errorf("--min-seconds: %w", err)
	}
	useColor, err := resolveColor(replayColor, os.Stdout)
	if err != nil {
		return err
	}

	path := config.ResolveTracePath(args[0])
	frames, err := trace.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load trace %s: %w", path, err)
	}

	replayer := trace.NewReplayer(frames, time.Now())
	printer := chatlog.New(cmd.OutOrStdout(), chatlog.WithColor(useColor), chatlog.WithClock(replayer.Now))
	tracker := encounter.NewTracker(encounter.Host{
		Combat:  replayer,
		Actions: replayer,
		Frame:   replayer,
		Clock:   replayer,
		Log:     printer,
	}, &settings)
	var encounters []model.EncounterSummary
	tracker.OnEncounterEnd = func(s model.EncounterSummary) {
		encounters = append(encounters, s)
	}

	// Replays always track; the persisted enable flag is left untouched.
	module := encounter.NewModule(tracker, replayer, discardSaver{}, &settings)
	if err := module.SetEnabled(true); err != nil {
		return err
	}
	defer module.Disable()

	if err := replayer.Run(cmd.Context()); err != nil {
		return fmt.Errorf("replay interrupted: %w", err)
	}
	if tracker.State() == encounter.Active {
		logErrln("trace ended in combat; closing the last encounter")
		tracker.EndEncounter()
	}

	if replayNoSummary {
		return nil
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderEncounters(cmd.OutOrStdout(), encounters, settings.EnableEncounterStatsLoggingReportInSeconds); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

type discardSaver struct{}

func (discardSaver) Save(model.Settings) error { return nil }

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Edit encounter stats options",
		Args:  cobra.NoArgs,
		RunE:  runOptionsCmd,
	}
}

func runOptionsCmd(_ *cobra.Command, _ []string) error {
	st := config.NewStore(configPath)
	settings, err := st.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	m := optionsui.NewModel(&settings, st)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run options TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyBoolFlag(cmd *cobra.Command, name string, target *bool, value bool) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func resolveColor(mode string, out *os.File) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return term.IsTerminal(int(out.Fd())), nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("--color must be auto, always or never")
	}
}

func defaultConfigTemplate() string {
	defaults := model.DefaultSettings()
	return fmt.Sprintf(`# gcdstats configuration
# Uncomment a value to enable it. CLI flags override config values.

[stats]
# enabled = %t              # Track clips and wasted GCD time in combat
# log-clip = %t              # Show individual encounter GCD clip
# log-waste = %t            # Show individual encounter GCD waste
# report = %t               # Show GCD clip and waste report after a combat
# report-min-seconds = %d    # Only report combat longer than this many seconds
# report-in-seconds = %t     # Show encounter total time in seconds
`,
		defaults.EnableEncounterStats,
		defaults.EnableEncounterStatsLoggingClip,
		defaults.EnableEncounterStatsLoggingWaste,
		defaults.EnableEncounterStatsLoggingReport,
		defaults.EnableEncounterStatsLoggingReportMinSeconds,
		defaults.EnableEncounterStatsLoggingReportInSeconds,
	)
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
