package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunHeadlessExitsCleanly(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SKIRMISH_HEADLESS", "true")
	t.Setenv("SKIRMISH_ENCOUNTERS", "1")
	t.Setenv("SKIRMISH_SEED", "11")
	t.Setenv("SKIRMISH_BATTLE_DELAY", "0s")
	t.Setenv("SKIRMISH_ANIMATION_DELAY", "0s")
	t.Setenv("SKIRMISH_HURT_DELAY", "0s")
	t.Setenv("SKIRMISH_HONEYCOMB_API_KEY", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	if code := run(); code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
}

func TestRunFailureFlushesLog(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	logFile := filepath.Join(dir, "skirmish.log")
	t.Setenv("SKIRMISH_HEADLESS", "false")
	t.Setenv("SKIRMISH_LOG_FILE", logFile)
	t.Setenv("SKIRMISH_ROSTER_FILE", filepath.Join(dir, "missing.json"))
	t.Setenv("SKIRMISH_HONEYCOMB_API_KEY", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	if code := run(); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "failed to initialize game") {
		t.Errorf("log file does not record the failure:\n%s", data)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SKIRMISH_ENCOUNTERS", "-3")

	if code := run(); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
}

func TestSetupOTelEnv(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
	t.Setenv("SKIRMISH_HONEYCOMB_API_KEY", "")

	setupOTelEnv()
	if got := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); got != "" {
		t.Errorf("endpoint set without an API key: %q", got)
	}

	t.Setenv("SKIRMISH_HONEYCOMB_API_KEY", "secret")
	t.Setenv("SKIRMISH_HONEYCOMB_DATASET", "")
	setupOTelEnv()
	if got := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); got != "https://api.honeycomb.io" {
		t.Errorf("endpoint = %q", got)
	}
	if got := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); got != "x-honeycomb-team=secret,x-honeycomb-dataset=skirmish" {
		t.Errorf("headers = %q", got)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}
