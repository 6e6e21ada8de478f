// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/maplerates/mortgage-engine/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for the mortgage engine.
type Configuration struct {
	Qualification QualificationConfig `yaml:"qualification,omitempty"`
	Logging       LoggingConfig       `yaml:"logging,omitempty"`
	Output        OutputConfig        `yaml:"output,omitempty"`
}

// QualificationConfig holds the debt service ceilings and stress test
// parameters. Zero values fall back to the regulatory defaults.
type QualificationConfig struct {
	GDSLimit                float64 `yaml:"gdsLimit,omitempty"`
	TDSLimit                float64 `yaml:"tdsLimit,omitempty"`
	StressTestBufferPercent float64 `yaml:"stressTestBufferPercent,omitempty"`
	BenchmarkRatePercent    float64 `yaml:"benchmarkRatePercent,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// Merge overlays the non-empty fields of override onto the receiver, so a
// more specific config (the server's) can refine the engine-wide one.
func (c LoggingConfig) Merge(override LoggingConfig) LoggingConfig {
	if override.Level != "" {
		c.Level = override.Level
	}
	if override.Format != "" {
		c.Format = override.Format
	}
	if override.OutputFile != "" {
		c.OutputFile = override.OutputFile
	}
	return c
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// Default returns a Configuration carrying the regulatory defaults, used
// when no config file is supplied.
func Default() *Configuration {
	conf := &Configuration{}
	conf.ApplyDefaults()
	return conf
}

// ApplyDefaults fills unset qualification parameters with the regulatory
// norms.
func (conf *Configuration) ApplyDefaults() {
	if conf.Qualification.GDSLimit == 0 {
		conf.Qualification.GDSLimit = constants.DefaultGDSLimit
	}
	if conf.Qualification.TDSLimit == 0 {
		conf.Qualification.TDSLimit = constants.DefaultTDSLimit
	}
	if conf.Qualification.StressTestBufferPercent == 0 {
		conf.Qualification.StressTestBufferPercent = constants.DefaultStressTestBufferPercent
	}
	if conf.Qualification.BenchmarkRatePercent == 0 {
		conf.Qualification.BenchmarkRatePercent = constants.DefaultBenchmarkRatePercent
	}
}

// ValidateConfiguration checks the configuration for suspicious values and
// returns warnings for anything that deserves operator attention.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	q := conf.Qualification
	if q.GDSLimit > q.TDSLimit {
		warnings = append(warnings, fmt.Sprintf(
			"GDS limit %.2f exceeds TDS limit %.2f - GDS will never bind", q.GDSLimit, q.TDSLimit))
	}
	if q.GDSLimit > 1 || q.TDSLimit > 1 {
		warnings = append(warnings, fmt.Sprintf(
			"debt service limits look like percentages (GDS %.2f, TDS %.2f) - expected fractions such as 0.32", q.GDSLimit, q.TDSLimit))
	}
	if q.BenchmarkRatePercent > 25 {
		warnings = append(warnings, fmt.Sprintf(
			"benchmark qualifying rate %.2f%% is implausibly high", q.BenchmarkRatePercent))
	}

	return warnings
}
