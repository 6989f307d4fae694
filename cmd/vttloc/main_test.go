package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/vttloc/internal/config"
	"github.com/nguyentantai21042004/vttloc/internal/processor"
)

const testVTT = `WEBVTT

00:00:01.000 --> 00:00:02.500
- Where are you going?
- Home.

00:00:03.000 --> 00:00:04.000
SHAKE: Ohh!
`

func writeTestConfig(t *testing.T, base string) string {
	t.Helper()
	path := filepath.Join(base, "vttloc.yaml")
	content := "paths:\n" +
		"  state_dir: " + filepath.Join(base, "state") + "\n" +
		"  log_dir: " + filepath.Join(base, "logs") + "\n" +
		"logging:\n" +
		"  level: error\n" +
		"  format: text\n" +
		"  file: false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestPrepareFinalizeHistory(t *testing.T) {
	base := t.TempDir()
	cfgPath := writeTestConfig(t, base)
	src := filepath.Join(base, "show", "ep1.webvtt")
	if err := os.MkdirAll(filepath.Dir(src), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte(testVTT), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "--config", cfgPath, "prepare", filepath.Join(base, "show"))
	if err != nil {
		t.Fatalf("prepare error = %v", err)
	}
	prepared := filepath.Join(base, "show", "prepared", "ep1.webvtt")
	if !strings.Contains(out, prepared) {
		t.Errorf("prepare summary missing output path:\n%s", out)
	}

	if _, err := runCLI(t, "--config", cfgPath, "finalize", prepared); err != nil {
		t.Fatalf("finalize error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "show", "prepared", "final", "ep1.webvtt")); err != nil {
		t.Errorf("final file missing: %v", err)
	}

	out, err = runCLI(t, "--config", cfgPath, "history", "--limit", "5")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	for _, want := range []string{"prepare", "finalize", "ok"} {
		if !strings.Contains(out, want) {
			t.Errorf("history output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckCommand(t *testing.T) {
	base := t.TempDir()
	cfgPath := writeTestConfig(t, base)
	src := filepath.Join(base, "ep.webvtt")
	if err := os.WriteFile(src, []byte(testVTT), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "--config", cfgPath, "check", src)
	if err != nil {
		t.Fatalf("check error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("check output = %s", out)
	}
}

func TestInvalidTarget(t *testing.T) {
	base := t.TempDir()
	cfgPath := writeTestConfig(t, base)
	_, err := runCLI(t, "--config", cfgPath, "prepare", filepath.Join(base, "missing"))
	if !errors.Is(err, processor.ErrInvalidTarget) {
		t.Errorf("prepare error = %v, want ErrInvalidTarget", err)
	}
}

func TestAllCapsNotice(t *testing.T) {
	base := t.TempDir()
	cfgPath := writeTestConfig(t, base)
	src := filepath.Join(base, "loud.webvtt")
	loud := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nHELLO THERE.\n"
	if err := os.WriteFile(src, []byte(loud), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "--config", cfgPath, "prepare", src)
	if err != nil {
		t.Fatalf("prepare error = %v", err)
	}
	if !strings.Contains(out, "no lowercase letters") {
		t.Errorf("missing all-caps notice:\n%s", out)
	}
}

func TestLogLevelOverride(t *testing.T) {
	configFlag := ""
	level := "debug"
	ctx := newCommandContext(&configFlag, &level)
	cfg, err := ctx.ensureConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %v, want debug", cfg.Logging.Level)
	}
}

func TestPreparedMatcher(t *testing.T) {
	cfg := config.Default()
	match := preparedMatcher(cfg)
	tests := []struct {
		path string
		want bool
	}{
		{"/shows/prepared/ep.webvtt", true},
		{"/shows/prepared/ep.WEBVTT", true},
		{"/shows/ep.webvtt", false},
		{"/shows/prepared/final/ep.webvtt", false},
		{"/shows/prepared/ep.docx", false},
	}
	for _, tt := range tests {
		if got := match(tt.path); got != tt.want {
			t.Errorf("preparedMatcher(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
