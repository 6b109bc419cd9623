package config

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	apperrors "github.com/agbru/sqrace/internal/errors"
	"github.com/agbru/sqrace/internal/workload"
)

func availableRunners() []string {
	return []string{"sequential", "concurrent", "pooled", "all"}
}

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	return ParseConfig("sqrace", args, io.Discard, availableRunners())
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}

	if cfg.Count != workload.DefaultCount {
		t.Errorf("Count = %d, want %d", cfg.Count, workload.DefaultCount)
	}
	if cfg.Delay != workload.DefaultDelay {
		t.Errorf("Delay = %s, want %s", cfg.Delay, workload.DefaultDelay)
	}
	if cfg.Runner != workload.StrategyAll {
		t.Errorf("Runner = %q, want %q", cfg.Runner, workload.StrategyAll)
	}
	if cfg.Workers != workload.DefaultWorkers {
		t.Errorf("Workers = %d, want %d", cfg.Workers, workload.DefaultWorkers)
	}
	if cfg.Quiet || cfg.Verbose || cfg.TUI {
		t.Error("boolean modes should default to false")
	}
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := parse(t, "-n", "100", "--delay", "50ms", "--runner", "concurrent", "--workers", "4", "-q")
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}

	if cfg.Count != 100 {
		t.Errorf("Count = %d, want 100", cfg.Count)
	}
	if cfg.Delay != 50*time.Millisecond {
		t.Errorf("Delay = %s, want 50ms", cfg.Delay)
	}
	if cfg.Runner != "concurrent" {
		t.Errorf("Runner = %q, want concurrent", cfg.Runner)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if !cfg.Quiet {
		t.Error("Quiet should be true")
	}
}

func TestParseConfig_HelpFlag(t *testing.T) {
	_, err := parse(t, "--help")
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("ParseConfig error = %v, want flag.ErrHelp", err)
	}
}

func TestParseConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative count", []string{"-n", "-5"}},
		{"negative delay", []string{"--delay", "-1s"}},
		{"zero workers", []string{"--workers", "0"}},
		{"zero timeout", []string{"--timeout", "0s"}},
		{"unknown runner", []string{"--runner", "warp-drive"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("ParseConfig error = %v, want ConfigError", err)
			}
		})
	}
}

func TestValidate_NamesTheField(t *testing.T) {
	cfg := AppConfig{Count: -1, Delay: time.Second, Workers: 10, Timeout: time.Minute, Runner: "all"}

	err := cfg.Validate(availableRunners())
	var valErr apperrors.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Validate error = %v, want ValidationError", err)
	}
	if valErr.Field != "count" {
		t.Errorf("Field = %q, want count", valErr.Field)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"COUNT", "25")
	t.Setenv(EnvPrefix+"DELAY", "10ms")
	t.Setenv(EnvPrefix+"RUNNER", "pooled")
	t.Setenv(EnvPrefix+"QUIET", "yes")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}

	if cfg.Count != 25 {
		t.Errorf("Count = %d, want env override 25", cfg.Count)
	}
	if cfg.Delay != 10*time.Millisecond {
		t.Errorf("Delay = %s, want env override 10ms", cfg.Delay)
	}
	if cfg.Runner != "pooled" {
		t.Errorf("Runner = %q, want env override pooled", cfg.Runner)
	}
	if !cfg.Quiet {
		t.Error("Quiet should honor env override")
	}
}

// TestEnvOverrides_FlagsWin verifies the priority: CLI flags > env > defaults.
func TestEnvOverrides_FlagsWin(t *testing.T) {
	t.Setenv(EnvPrefix+"COUNT", "25")

	cfg, err := parse(t, "-n", "75")
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Count != 75 {
		t.Errorf("Count = %d, explicit flag must beat env override", cfg.Count)
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		val        string
		defaultVal bool
		want       bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.defaultVal); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.val, tt.defaultVal, got, tt.want)
		}
	}
}
