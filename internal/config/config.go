// Package config loads the optional YAML configuration file for the
// tracker. Defaults are populated first, then overwritten by whatever the
// file sets.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rawjson/use-in-view/internal/session"
)

// Duration wraps time.Duration so config files can use "2s"/"100ms" forms,
// which yaml.v3 does not decode natively.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Zone    ZoneConfig    `yaml:"zone"`
	Session SessionConfig `yaml:"session"`
	Mirror  MirrorConfig  `yaml:"mirror"`

	// Thresholds overrides the entry threshold per target id. Ids not
	// listed use the default (0.5).
	Thresholds map[string]float64 `yaml:"thresholds"`
}

type ZoneConfig struct {
	Offset  int     `yaml:"offset"`
	Rows    int     `yaml:"rows"`
	Percent float64 `yaml:"percent"`
}

type SessionConfig struct {
	FirstTargetActiveOnMount bool `yaml:"first_target_active_on_mount"`

	// PollInterval enables a bounded polling fallback for hosts without
	// reliable resize notifications. Zero disables polling.
	PollInterval Duration `yaml:"poll_interval"`
}

type MirrorConfig struct {
	Throttle Duration `yaml:"throttle"`
}

// Default returns the built-in configuration: zone at 50% of the viewport
// (the ZoneSpec zero value), first target active on mount, polling off,
// 100ms mirror throttle.
func Default() *Config {
	return &Config{
		Session: SessionConfig{
			FirstTargetActiveOnMount: true,
		},
		Mirror: MirrorConfig{
			Throttle: Duration(100 * time.Millisecond),
		},
	}
}

// Load reads the config at path on top of the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate applies the fail-fast configuration checks: zone shape and
// threshold ranges are rejected at load time, not at first tick.
func (c *Config) Validate() error {
	if err := c.ZoneSpec().Validate(); err != nil {
		return err
	}
	for id, th := range c.Thresholds {
		if _, err := session.NewTarget(id, th); err != nil {
			return err
		}
	}
	if c.Session.PollInterval < 0 {
		return &session.ConfigError{Field: "poll_interval", Detail: "must not be negative"}
	}
	if c.Mirror.Throttle < 0 {
		return &session.ConfigError{Field: "mirror.throttle", Detail: "must not be negative"}
	}
	return nil
}

// ZoneSpec converts the file shape to the session model.
func (c *Config) ZoneSpec() session.ZoneSpec {
	return session.ZoneSpec{
		Offset:  c.Zone.Offset,
		Rows:    c.Zone.Rows,
		Percent: c.Zone.Percent,
	}
}

// Threshold returns the configured entry threshold for a target id, or the
// default when the id has no override.
func (c *Config) Threshold(id string) float64 {
	if th, ok := c.Thresholds[id]; ok {
		return th
	}
	return session.DefaultThreshold
}
