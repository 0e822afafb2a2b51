package config

import (
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.Optimization.MinIterations != 10 || cfg.Optimization.MaxIterations != 500 {
		t.Errorf("expected default iteration bounds [10, 500], got [%d, %d]",
			cfg.Optimization.MinIterations, cfg.Optimization.MaxIterations)
	}
	if cfg.Optimization.DerivativeFreeCeiling != 400 {
		t.Errorf("expected default derivative-free ceiling 400, got %d", cfg.Optimization.DerivativeFreeCeiling)
	}
	if cfg.Scan.MinSteps != 2 || cfg.Scan.MaxSteps != 50 {
		t.Errorf("expected default scan bounds [2, 50], got [%d, %d]", cfg.Scan.MinSteps, cfg.Scan.MaxSteps)
	}
	if cfg.Scan.PointIterations != 50 {
		t.Errorf("expected default scan point iterations 50, got %d", cfg.Scan.PointIterations)
	}
}

func TestParseOverrides(t *testing.T) {
	yamlData := `
log_level: debug
optimization:
  min_iterations: 20
  max_iterations: 200
scan:
  point_iterations: 25
`
	cfg, err := Parse([]byte(yamlData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.Optimization.MinIterations != 20 || cfg.Optimization.MaxIterations != 200 {
		t.Errorf("unexpected iteration bounds [%d, %d]",
			cfg.Optimization.MinIterations, cfg.Optimization.MaxIterations)
	}
	// Unspecified fields still default.
	if cfg.Optimization.DerivativeFreeCeiling != 400 {
		t.Errorf("expected ceiling default 400, got %d", cfg.Optimization.DerivativeFreeCeiling)
	}
	if cfg.Scan.PointIterations != 25 {
		t.Errorf("expected scan point iterations 25, got %d", cfg.Scan.PointIterations)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad log level", "log_level: verbose", "invalid log_level"},
		{"inverted iteration bounds", "optimization:\n  min_iterations: 100\n  max_iterations: 50", "max_iterations"},
		{"scan steps below two", "scan:\n  min_steps: 1", "min_steps"},
		{"malformed yaml", "log_level: [", "invalid YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
