package config

import (
	"log/slog"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // keep a stray graph-validator.toml out of the test

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CatalogFile != "" {
		t.Errorf("Expected empty catalog default, got %s", cfg.CatalogFile)
	}
	if cfg.RulesFile != "config/rules.yaml" {
		t.Errorf("Unexpected rules default: %s", cfg.RulesFile)
	}
	if cfg.OutputDir != "catalog" {
		t.Errorf("Unexpected output default: %s", cfg.OutputDir)
	}
	if cfg.Watch {
		t.Error("Watch should default to false")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GRAPH_VALIDATOR_OUTPUT", "build/reports")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != "build/reports" {
		t.Errorf("Expected env override, got %s", cfg.OutputDir)
	}
}

func TestLoadFlagOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GRAPH_VALIDATOR_RULES", "from-env.yaml")

	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.String("rules", "config/rules.yaml", "")
	if err := f.Parse([]string{"--rules", "from-flag.yaml"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RulesFile != "from-flag.yaml" {
		t.Errorf("Flags should beat env, got %s", cfg.RulesFile)
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name      string
		verbosity string
		verbose   int
		want      slog.Level
	}{
		{"default", "", 0, slog.LevelInfo},
		{"verbose flag", "", 1, slog.LevelDebug},
		{"explicit debug", "debug", 0, slog.LevelDebug},
		{"explicit warn", "warn", 0, slog.LevelWarn},
		{"explicit error", "error", 0, slog.LevelError},
		{"verbosity wins over counter", "error", 3, slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Verbosity: tt.verbosity, VerboseCnt: tt.verbose}
			if got := cfg.LogLevel(); got != tt.want {
				t.Errorf("LogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
