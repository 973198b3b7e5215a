package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const replayTrace = `time,delta,in_combat,sequence,gcd_recast,queued,animation_lock
0,0,false,0,false,false,0
1,1,true,1,false,false,0.5
2,1,true,1,false,false,0
3,1,true,2,true,false,0
35,32,true,2,true,false,0
36,1,false,2,false,false,0
`

func TestReplayCommand(t *testing.T) {
	dir := t.TempDir()
	tracePath := filepath.Join(dir, "pull.csv")
	if err := os.WriteFile(tracePath, []byte(replayTrace), 0o644); err != nil {
		t.Fatalf("write trace: %v", err)
	}
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[stats]\nreport = true\nlog-waste = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"replay", tracePath, "--config", cfgPath, "--color", "never", "--in-seconds=false"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("replay: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"[gcdstats] clipped: 500 ms",
		"[gcdstats] wasted: 1000 ms",
		"[gcdstats] in 00m35s, clipped: 0.50, wasted: 1.00",
		"Encounters: 1 (1 reported)",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if strings.Contains(string(data), "enabled") {
		t.Fatalf("replay must not persist settings, got:\n%s", data)
	}
}

func TestReplayRejectsNegativeMinSecondsInConfig(t *testing.T) {
	dir := t.TempDir()
	tracePath := filepath.Join(dir, "pull.csv")
	if err := os.WriteFile(tracePath, []byte(replayTrace), 0o644); err != nil {
		t.Fatalf("write trace: %v", err)
	}
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[stats]\nreport-min-seconds = -1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"replay", tracePath, "--config", cfgPath, "--color", "never"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for negative report-min-seconds")
	}
}

func TestDefaultConfigTemplateListsAllKeys(t *testing.T) {
	tmpl := defaultConfigTemplate()
	for _, key := range []string{"enabled", "log-clip", "log-waste", "report", "report-min-seconds", "report-in-seconds"} {
		if !strings.Contains(tmpl, "# "+key+" = ") {
			t.Fatalf("template missing %s:\n%s", key, tmpl)
		}
	}
}
