package config

// Config holds engine-wide configuration loaded from YAML.
type Config struct {
	LogLevel     string              `yaml:"log_level"`
	Optimization *OptimizationLimits `yaml:"optimization,omitempty"`
	Scan         *ScanLimits         `yaml:"scan,omitempty"`
	Export       *ExportConfig       `yaml:"export,omitempty"`
}

// OptimizationLimits bounds caller-supplied iteration budgets and fixes
// the internal ceilings of the optimizer policy.
type OptimizationLimits struct {
	// MinIterations is the smallest iteration budget a caller may request.
	MinIterations int `yaml:"min_iterations"`
	// MaxIterations is the largest iteration budget a caller may request.
	MaxIterations int `yaml:"max_iterations"`
	// DerivativeFreeCeiling caps derivative-free optimizer evaluations
	// regardless of the caller's budget.
	DerivativeFreeCeiling int `yaml:"derivative_free_ceiling"`
	// GradientTolerance is the convergence tolerance for the
	// gradient-based optimizer.
	GradientTolerance float64 `yaml:"gradient_tolerance"`
}

// ScanLimits bounds bond-length scan requests.
type ScanLimits struct {
	// MinSteps is the smallest number of scan points a caller may request.
	MinSteps int `yaml:"min_steps"`
	// MaxSteps is the largest number of scan points a caller may request.
	MaxSteps int `yaml:"max_steps"`
	// PointIterations is the reduced iteration budget used per scan point.
	PointIterations int `yaml:"point_iterations"`
}

// ExportConfig configures result export.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Optimization: &OptimizationLimits{
			MinIterations:         10,
			MaxIterations:         500,
			DerivativeFreeCeiling: 400,
			GradientTolerance:     1e-4,
		},
		Scan: &ScanLimits{
			MinSteps:        2,
			MaxSteps:        50,
			PointIterations: 50,
		},
		Export: &ExportConfig{
			Dir: "results",
		},
	}
}

// applyDefaults fills unset fields with defaults.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.Optimization == nil {
		cfg.Optimization = def.Optimization
	} else {
		if cfg.Optimization.MinIterations == 0 {
			cfg.Optimization.MinIterations = def.Optimization.MinIterations
		}
		if cfg.Optimization.MaxIterations == 0 {
			cfg.Optimization.MaxIterations = def.Optimization.MaxIterations
		}
		if cfg.Optimization.DerivativeFreeCeiling == 0 {
			cfg.Optimization.DerivativeFreeCeiling = def.Optimization.DerivativeFreeCeiling
		}
		if cfg.Optimization.GradientTolerance == 0 {
			cfg.Optimization.GradientTolerance = def.Optimization.GradientTolerance
		}
	}
	if cfg.Scan == nil {
		cfg.Scan = def.Scan
	} else {
		if cfg.Scan.MinSteps == 0 {
			cfg.Scan.MinSteps = def.Scan.MinSteps
		}
		if cfg.Scan.MaxSteps == 0 {
			cfg.Scan.MaxSteps = def.Scan.MaxSteps
		}
		if cfg.Scan.PointIterations == 0 {
			cfg.Scan.PointIterations = def.Scan.PointIterations
		}
	}
	if cfg.Export == nil {
		cfg.Export = def.Export
	} else if cfg.Export.Dir == "" {
		cfg.Export.Dir = def.Export.Dir
	}
}
