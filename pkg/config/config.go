// Package config loads the bench binary's workload configuration from YAML.
// When no file is given the bench falls back to Default, so a config file is
// an override, not a requirement.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quevin/flatqueue/internal/testbench"
)

// Duration wraps time.Duration so it can be written as "2s" or "500ms" in
// YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Workload mirrors testbench.Config in YAML form.
type Workload struct {
	Name      string `yaml:"name"`
	PushBurst int    `yaml:"push_burst"`
	PopBurst  int    `yaml:"pop_burst"`
	Prefill   int    `yaml:"prefill"`
}

// Config is the full bench configuration.
type Config struct {
	Iterations int        `yaml:"iterations"`
	Duration   Duration   `yaml:"duration"`
	Workloads  []Workload `yaml:"workloads"`
}

// Default returns the built-in workload set: a steady-state pattern, a
// pop-heavy pattern that stresses front trimming, a push-heavy pattern that
// stresses growth, and a deep-queue steady pattern.
func Default() Config {
	return Config{
		Iterations: 5,
		Duration:   Duration(2 * time.Second),
		Workloads: []Workload{
			{Name: "steady", PushBurst: 1, PopBurst: 1},
			{Name: "pop-heavy", PushBurst: 4, PopBurst: 16, Prefill: 4096},
			{Name: "push-heavy", PushBurst: 16, PopBurst: 4},
			{Name: "deep-steady", PushBurst: 64, PopBurst: 64, Prefill: 65536},
		},
	}
}

// Load reads and validates a YAML config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be >= 1, got %d", c.Iterations)
	}
	if time.Duration(c.Duration) <= 0 {
		return fmt.Errorf("duration must be positive, got %v", time.Duration(c.Duration))
	}
	if len(c.Workloads) == 0 {
		return fmt.Errorf("no workloads defined")
	}
	seen := make(map[string]bool, len(c.Workloads))
	for i, w := range c.Workloads {
		if w.Name == "" {
			return fmt.Errorf("workload %d has no name", i)
		}
		if seen[w.Name] {
			return fmt.Errorf("duplicate workload name %q", w.Name)
		}
		seen[w.Name] = true
		if w.PushBurst < 1 {
			return fmt.Errorf("workload %q: push_burst must be >= 1", w.Name)
		}
		if w.PopBurst < 0 || w.Prefill < 0 {
			return fmt.Errorf("workload %q: negative burst or prefill", w.Name)
		}
	}
	return nil
}

// Benchmarks converts the YAML workloads into testbench configs.
func (c Config) Benchmarks() []testbench.Config {
	out := make([]testbench.Config, 0, len(c.Workloads))
	for _, w := range c.Workloads {
		out = append(out, testbench.Config{
			Name:      w.Name,
			PushBurst: w.PushBurst,
			PopBurst:  w.PopBurst,
			Prefill:   w.Prefill,
		})
	}
	return out
}
