// Package config loads and validates the runtime configuration for the
// fault-reparability engine: default fault-model and yield-sweep
// parameters, reporting output settings, and the safety threshold that
// gates large fault multiplicities behind --confirm.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level runtime configuration document.
type Config struct {
	Framework  FrameworkConfig  `yaml:"framework"`
	FaultModel FaultModelConfig `yaml:"fault_model"`
	MonteCarlo MonteCarloConfig `yaml:"monte_carlo"`
	Reporting  ReportingConfig  `yaml:"reporting"`
	Safety     SafetyConfig     `yaml:"safety"`
}

// FrameworkConfig contains general framework settings.
type FrameworkConfig struct {
	Version   string `yaml:"version"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// FaultModelConfig holds the default fault-pattern parameters (§4.C), used
// to seed CLI flags when the user doesn't override them.
type FaultModelConfig struct {
	FaultType          string `yaml:"fault_type"`           // "Short" or "Open"
	FaultsNumber       int    `yaml:"faults_number"`        // number of simultaneous faults, m
	ShortedBumpsNumber int    `yaml:"shorted_bumps_number"` // bumps per short, k
	ShortDistance      int    `yaml:"short_distance"`       // max grid distance for a short candidate
	BundleMode         bool   `yaml:"bundle_mode"`
	PreserveSubFaults  bool   `yaml:"preserve_sub_faults"`
}

// MonteCarloConfig holds the default yield-sweep parameters (§4.G).
type MonteCarloConfig struct {
	MinYield                      float64 `yaml:"min_yield"`
	MaxYield                      float64 `yaml:"max_yield"`
	NumberOfElectricalYieldTested int     `yaml:"number_of_electrical_yield_tested"`
	NumberOfFaultsTested          int     `yaml:"number_of_faults_tested"`
	LogScale                      bool    `yaml:"log_scale"`
}

// ReportingConfig contains reporting and output settings.
type ReportingConfig struct {
	OutputDir string   `yaml:"output_dir"`
	KeepLastN int      `yaml:"keep_last_n"`
	Formats   []string `yaml:"formats"`
}

// SafetyConfig gates fault multiplicities large enough to explode
// combinatorially before requiring --confirm.
type SafetyConfig struct {
	MaxFaultsNumber     int  `yaml:"max_faults_number"`
	RequireConfirmation bool `yaml:"require_confirmation"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Framework: FrameworkConfig{
			Version:   "v1",
			LogLevel:  "info",
			LogFormat: "text",
		},
		FaultModel: FaultModelConfig{
			FaultType:          "Open",
			FaultsNumber:       1,
			ShortedBumpsNumber: 2,
			ShortDistance:      1,
		},
		MonteCarlo: MonteCarloConfig{
			MinYield:                      0.9,
			MaxYield:                      0.999999,
			NumberOfElectricalYieldTested: 10,
			NumberOfFaultsTested:          1000,
		},
		Reporting: ReportingConfig{
			OutputDir: "./reports",
			KeepLastN: 50,
			Formats:   []string{"json", "html"},
		},
		Safety: SafetyConfig{
			MaxFaultsNumber:     4,
			RequireConfirmation: true,
		},
	}
}

// Load loads configuration from a YAML file, overlaying it onto
// DefaultConfig and expanding $ENV references. A missing file is not an
// error: Load returns the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = "config.yaml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	if err := yaml.Unmarshal(expandedData, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.FaultModel.FaultType != "Short" && c.FaultModel.FaultType != "Open" {
		return fmt.Errorf("fault_model.fault_type must be \"Short\" or \"Open\"")
	}

	if c.FaultModel.FaultsNumber < 1 {
		return fmt.Errorf("fault_model.faults_number must be at least 1")
	}

	if c.FaultModel.ShortedBumpsNumber < 1 {
		return fmt.Errorf("fault_model.shorted_bumps_number must be at least 1")
	}

	if c.Reporting.OutputDir == "" {
		return fmt.Errorf("reporting.output_dir is required")
	}

	if c.Safety.MaxFaultsNumber < 1 {
		return fmt.Errorf("safety.max_faults_number must be at least 1")
	}

	return nil
}

// RequiresConfirmation reports whether faultsNumber exceeds the configured
// safety threshold and therefore needs an explicit --confirm.
func (c *Config) RequiresConfirmation(faultsNumber int) bool {
	return c.Safety.RequireConfirmation && faultsNumber > c.Safety.MaxFaultsNumber
}
