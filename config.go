package polyreg

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Default zone and hysteresis settings for the safety gate.
const (
	defaultWatchFactor    = 100.0 // WATCH below 100× threshold
	defaultDangerFactor   = 10.0  // CRITICAL below 10× threshold
	defaultExitFactor     = 10.0  // Reopen only above 10× threshold
	defaultMinHoldSeconds = 60.0  // Stay closed for at least a minute
)

// GateConfig holds SafetyGate configuration.
type GateConfig struct {
	Margin         float64 `yaml:"margin"`           // Margin constant, > 0
	Threshold      float64 `yaml:"threshold"`        // Pass threshold for the ratio (default 1e12)
	WatchFactor    float64 `yaml:"watch_factor"`     // WATCH zone boundary, multiple of threshold
	DangerFactor   float64 `yaml:"danger_factor"`    // CRITICAL zone boundary, multiple of threshold
	ExitFactor     float64 `yaml:"exit_factor"`      // Breach reopen boundary, multiple of threshold
	MinHoldSeconds float64 `yaml:"min_hold_seconds"` // Minimum breach hold time
	Formulation    string  `yaml:"formulation"`      // Formulation CheckResponse evaluates
}

// DefaultGateConfig returns the documented defaults with a unit margin.
func DefaultGateConfig() GateConfig {
	cfg := GateConfig{Margin: 1.0}
	applyGateDefaults(&cfg)
	return cfg
}

// LoadGateConfig reads gate configuration from a YAML file.
// If the file doesn't exist, it returns the default config and no error.
func LoadGateConfig(path string) (GateConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultGateConfig(), nil
		}
		return GateConfig{}, err
	}

	var cfg GateConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GateConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}

	applyGateDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return GateConfig{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func applyGateDefaults(cfg *GateConfig) {
	if cfg.Threshold == 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.WatchFactor == 0 {
		cfg.WatchFactor = defaultWatchFactor
	}
	if cfg.DangerFactor == 0 {
		cfg.DangerFactor = defaultDangerFactor
	}
	if cfg.ExitFactor == 0 {
		cfg.ExitFactor = defaultExitFactor
	}
	if cfg.MinHoldSeconds == 0 {
		cfg.MinHoldSeconds = defaultMinHoldSeconds
	}
	if cfg.Formulation == "" {
		cfg.Formulation = FormulationSincEnvelope
	}
}

// Validate checks the config for required fields and safe values.
// Messages name the YAML key so a misconfigured file is easy to fix.
func (c GateConfig) Validate() error {
	if !(c.Margin > 0) || math.IsInf(c.Margin, 0) {
		return fmt.Errorf("margin must be a positive finite number, got %v", c.Margin)
	}
	if !(c.Threshold > 0) || math.IsInf(c.Threshold, 0) {
		return fmt.Errorf("threshold must be a positive finite number, got %v", c.Threshold)
	}
	if c.DangerFactor < 1 {
		return fmt.Errorf("danger_factor must be >= 1, got %v", c.DangerFactor)
	}
	if c.WatchFactor <= c.DangerFactor {
		return fmt.Errorf("watch_factor (%v) must exceed danger_factor (%v)",
			c.WatchFactor, c.DangerFactor)
	}
	if c.ExitFactor < 1 {
		return fmt.Errorf("exit_factor must be >= 1, got %v", c.ExitFactor)
	}
	if c.MinHoldSeconds < 0 || math.IsNaN(c.MinHoldSeconds) {
		return fmt.Errorf("min_hold_seconds must be >= 0, got %v", c.MinHoldSeconds)
	}
	if _, ok := LookupFormulation(c.Formulation); !ok {
		return errors.New("formulation " + c.Formulation + " is not registered")
	}
	return nil
}
