package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a configuration file, applying defaults and
// validating the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses YAML configuration bytes, applying defaults and
// validating the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	opt := cfg.Optimization
	if opt.MinIterations <= 0 {
		return fmt.Errorf("optimization min_iterations must be positive, got %d", opt.MinIterations)
	}
	if opt.MaxIterations < opt.MinIterations {
		return fmt.Errorf("optimization max_iterations (%d) must not be below min_iterations (%d)",
			opt.MaxIterations, opt.MinIterations)
	}
	if opt.DerivativeFreeCeiling <= 0 {
		return fmt.Errorf("optimization derivative_free_ceiling must be positive, got %d", opt.DerivativeFreeCeiling)
	}
	if opt.GradientTolerance <= 0 {
		return fmt.Errorf("optimization gradient_tolerance must be positive, got %g", opt.GradientTolerance)
	}

	scan := cfg.Scan
	if scan.MinSteps < 2 {
		return fmt.Errorf("scan min_steps must be at least 2, got %d", scan.MinSteps)
	}
	if scan.MaxSteps < scan.MinSteps {
		return fmt.Errorf("scan max_steps (%d) must not be below min_steps (%d)", scan.MaxSteps, scan.MinSteps)
	}
	if scan.PointIterations <= 0 {
		return fmt.Errorf("scan point_iterations must be positive, got %d", scan.PointIterations)
	}

	return nil
}
