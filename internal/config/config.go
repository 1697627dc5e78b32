// Package config holds the dashboard settings. Values come from Default and
// may be overridden by a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/sekarsister/pdrdash/internal/analysis"
	"github.com/sekarsister/pdrdash/internal/geo"
)

// DefaultDataFile is the source table read by both dashboards.
const DefaultDataFile = "PDR_Marrakech_Safi_Projects.csv"

// Config is the full set of settings.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Geo     geo.Jitter    `yaml:"geo"`
	Alerts  AlertsConfig  `yaml:"alerts"`
	Server  ServerConfig  `yaml:"server"`
	Report  ReportConfig  `yaml:"report"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig locates the source table.
type DataConfig struct {
	File      string `yaml:"file"`
	Delimiter string `yaml:"delimiter"`
}

// AlertsConfig drives the critical-project shortlist and the delayed KPI.
type AlertsConfig struct {
	Critical        analysis.CriticalRule `yaml:"critical"`
	DelayedStatuses []string              `yaml:"delayed_statuses"`
}

// ServerConfig configures the HTTP dashboard.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ReportConfig configures the static report.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in settings.
func Default() *Config {
	critical := analysis.DefaultCriticalRule
	critical.Statuses = append([]string(nil), critical.Statuses...)

	return &Config{
		Data: DataConfig{
			File:      DefaultDataFile,
			Delimiter: ";",
		},
		Geo: geo.MarrakechSafi,
		Alerts: AlertsConfig{
			Critical:        critical,
			DelayedStatuses: append([]string(nil), analysis.DefaultDelayedStatuses...),
		},
		Server: ServerConfig{
			Addr: ":8501",
		},
		Report: ReportConfig{
			OutputDir: "rapport",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. An empty path yields the defaults; a
// named file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings for values the pipeline cannot use.
func (c *Config) Validate() error {
	if c.Data.File == "" {
		return errors.New("config: data.file is required")
	}
	if utf8.RuneCountInString(c.Data.Delimiter) != 1 {
		return fmt.Errorf("config: data.delimiter must be a single character, got %q", c.Data.Delimiter)
	}
	if c.Geo.HalfLat < 0 || c.Geo.HalfLon < 0 {
		return errors.New("config: geo half widths must not be negative")
	}
	if c.Alerts.Critical.BudgetThreshold < 0 {
		return errors.New("config: alerts.critical.budget_threshold must not be negative")
	}
	if c.Alerts.Critical.Limit < 0 {
		return errors.New("config: alerts.critical.limit must not be negative")
	}
	return nil
}

// Delimiter returns the field delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.Data.Delimiter)
	return r
}

// Options returns the pipeline options derived from the alert settings.
func (c *Config) Options() analysis.Options {
	return analysis.Options{
		Critical:        c.Alerts.Critical,
		DelayedStatuses: c.Alerts.DelayedStatuses,
	}
}
