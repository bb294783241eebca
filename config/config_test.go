package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/relokit/settler/core/planner"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `planner:
  max_tasks_per_day: 5
  relevance_threshold: 0.7
  missing_dependency: "fail"
lookup:
  provider: "overpass"
  city: "Hong Kong"
metrics:
  sinks:
    - type: "nop"
logging:
  level: "debug"
  format: "console"
export:
  format: "csv"
  path: "plan.csv"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Planner.MaxTasksPerDay != 5 {
		t.Fatalf("max_tasks_per_day = %d", cfg.Planner.MaxTasksPerDay)
	}
	if cfg.Planner.RelevanceThreshold != 0.7 {
		t.Fatalf("relevance_threshold = %v", cfg.Planner.RelevanceThreshold)
	}
	if cfg.Planner.MissingDependency != planner.PolicyFail {
		t.Fatalf("missing_dependency = %v", cfg.Planner.MissingDependency)
	}
	// Unset fields get defaults.
	if cfg.Planner.HorizonDays != 30 {
		t.Fatalf("horizon_days = %d", cfg.Planner.HorizonDays)
	}
	if len(cfg.Metrics.Sinks) != 1 || cfg.Metrics.Sinks[0].Type != "nop" {
		t.Fatalf("sinks = %+v", cfg.Metrics.Sinks)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
	if cfg.Export.Format != "csv" || cfg.Export.Path != "plan.csv" {
		t.Fatalf("export = %+v", cfg.Export)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("planner:\n  max_tasks_per_day: 4\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SETTLER_PLANNER__MAX_TASKS_PER_DAY", "6")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Planner.MaxTasksPerDay != 6 {
		t.Fatalf("env override ignored: %d", cfg.Planner.MaxTasksPerDay)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: \"verbose\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}

	if _, err := Load(filepath.Join(dir, "config.toml")); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Planner.MaxTasksPerDay != 4 || cfg.Lookup.Provider != "overpass" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Planner.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}
