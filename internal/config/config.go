// Package config loads the engine's YAML configuration: threshold boundaries,
// the state/priority table, the special-date calendar, and daemon wiring.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/deskpet/internal/classify"
	"github.com/danielpatrickdp/deskpet/internal/statedef"
	"github.com/danielpatrickdp/deskpet/internal/timewheel"
)

// #region config

// Config is the full configuration surface. Everything has a default; a
// missing file means "run with defaults".
type Config struct {
	Thresholds   classify.Thresholds     `yaml:"thresholds"`
	States       []statedef.Def          `yaml:"states"`
	SpecialDates []timewheel.SpecialDate `yaml:"special_dates"`
	Fallback     statedef.ID             `yaml:"fallback"`

	Journal JournalConfig `yaml:"journal"`
	Bus     BusConfig     `yaml:"bus"`
	Daemon  DaemonConfig  `yaml:"daemon"`
}

// JournalConfig locates the transition journal.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// BusConfig wires the NATS change notifier.
type BusConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// DaemonConfig holds scheduler and listener settings.
type DaemonConfig struct {
	SamplesPath    string   `yaml:"samples_path"`
	SampleInterval Duration `yaml:"sample_interval"`
	TimeInterval   Duration `yaml:"time_interval"`
	MetricsAddr    string   `yaml:"metrics_addr"`
	InteractionTTL Duration `yaml:"interaction_ttl"`
}

// Duration parses "800ms" / "1m" style values from YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: bad duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the stdlib representation.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// #endregion config

// #region defaults

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		Thresholds:   classify.DefaultThresholds(),
		States:       statedef.DefaultDefs(),
		SpecialDates: timewheel.DefaultSpecialDates(),
		Fallback:     statedef.SystemIdle,
		Journal:      JournalConfig{Path: "deskpet.db"},
		Bus: BusConfig{
			Enabled: false,
			URL:     "nats://127.0.0.1:4222",
			Subject: "deskpet.state.changed",
		},
		Daemon: DaemonConfig{
			SamplesPath:    "samples.json",
			SampleInterval: Duration(time.Second),
			TimeInterval:   Duration(time.Minute),
			MetricsAddr:    ":9477",
			InteractionTTL: Duration(800 * time.Millisecond),
		},
	}
}

// #endregion defaults

// #region load

// Load reads path over the defaults. An empty path returns defaults as-is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks everything that must fail at construction time.
func (c *Config) Validate() error {
	if err := c.Thresholds.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	reg, err := statedef.NewRegistry(c.States)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, ok := reg.Lookup(c.Fallback); !ok {
		return fmt.Errorf("config: fallback state %q not registered", c.Fallback)
	}
	for _, s := range c.SpecialDates {
		cat, ok := reg.CategoryOf(s.State)
		if !ok || cat != statedef.CategorySpecialDate {
			return fmt.Errorf("config: special date %d/%d maps to non-special state %q",
				s.Month, s.Day, s.State)
		}
		if s.Day < 1 || s.Day > 31 {
			return fmt.Errorf("config: special date day %d out of range", s.Day)
		}
	}
	if c.Daemon.SampleInterval <= 0 || c.Daemon.TimeInterval <= 0 {
		return fmt.Errorf("config: daemon intervals must be positive")
	}
	return nil
}

// Registry builds the state registry from the configured table.
func (c *Config) Registry() (*statedef.Registry, error) {
	return statedef.NewRegistry(c.States)
}

// #endregion load
