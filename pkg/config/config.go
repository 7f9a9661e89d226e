// Package config loads and validates tuning parameters for the AI runtime
// core: scheduler bucket/LOD settings, intensity tier presets, agent pool
// slab sizing, blackboard capacity, and perception ring capacity.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the AI runtime core.
type Config struct {
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
	Intensity   IntensityConfig   `yaml:"intensity"`
	Pool        PoolConfig        `yaml:"pool"`
	Blackboard  BlackboardConfig  `yaml:"blackboard"`
	Perception  PerceptionConfig  `yaml:"perception"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// SchedulerConfig controls frame-bucketing and level-of-detail gating.
type SchedulerConfig struct {
	Buckets        int     `yaml:"buckets"`
	LODRadiusTiles float64 `yaml:"lod_radius_tiles"`
}

// TierTunables scales action frequency, movement speed, and cooldowns for
// one intensity tier.
type TierTunables struct {
	ActionFreqMult float64 `yaml:"action_freq_mult"`
	MoveSpeedMult  float64 `yaml:"move_speed_mult"`
	CooldownMult   float64 `yaml:"cooldown_mult"`
}

// IntensityConfig holds the per-tier tunable tuples, in tier order
// (Passive, Standard, Aggressive, Frenzied).
type IntensityConfig struct {
	Passive    TierTunables `yaml:"passive"`
	Standard   TierTunables `yaml:"standard"`
	Aggressive TierTunables `yaml:"aggressive"`
	Frenzied   TierTunables `yaml:"frenzied"`
}

// PoolConfig sizes the agent pool's fixed-slab allocator.
type PoolConfig struct {
	SlabPayloadBytes int `yaml:"slab_payload_bytes"`
}

// BlackboardConfig sizes the per-agent blackboard.
type BlackboardConfig struct {
	Capacity int `yaml:"capacity"`
}

// PerceptionConfig sizes the perception event ring.
type PerceptionConfig struct {
	EventRingCapacity int `yaml:"event_ring_capacity"`
}

// LoggingConfig controls the ambient logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration matching spec.md's documented defaults.
func Default() *Config {
	return &Config{
		Scheduler: SchedulerConfig{
			Buckets:        4,
			LODRadiusTiles: 24,
		},
		Intensity: IntensityConfig{
			Passive:    TierTunables{ActionFreqMult: 0.80, MoveSpeedMult: 0.90, CooldownMult: 1.10},
			Standard:   TierTunables{ActionFreqMult: 1.0, MoveSpeedMult: 1.0, CooldownMult: 1.0},
			Aggressive: TierTunables{ActionFreqMult: 1.25, MoveSpeedMult: 1.15, CooldownMult: 0.85},
			Frenzied:   TierTunables{ActionFreqMult: 1.55, MoveSpeedMult: 1.25, CooldownMult: 0.70},
		},
		Pool: PoolConfig{
			SlabPayloadBytes: 512,
		},
		Blackboard: BlackboardConfig{
			Capacity: 32,
		},
		Perception: PerceptionConfig{
			EventRingCapacity: 32,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads YAML configuration from path, applying it on top of Default().
// A missing file is not an error: the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes cfg to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for values the runtime cannot operate
// under, mirroring spec.md §6's enumerated constraints.
func (c *Config) Validate() error {
	if c.Scheduler.Buckets < 1 {
		return fmt.Errorf("scheduler.buckets must be >= 1")
	}
	if c.Scheduler.LODRadiusTiles < 0 {
		return fmt.Errorf("scheduler.lod_radius_tiles must be >= 0")
	}
	if c.Pool.SlabPayloadBytes <= 0 {
		return fmt.Errorf("pool.slab_payload_bytes must be > 0")
	}
	if c.Blackboard.Capacity <= 0 {
		return fmt.Errorf("blackboard.capacity must be > 0")
	}
	if c.Perception.EventRingCapacity <= 0 {
		return fmt.Errorf("perception.event_ring_capacity must be > 0")
	}
	for name, t := range map[string]TierTunables{
		"passive": c.Intensity.Passive, "standard": c.Intensity.Standard,
		"aggressive": c.Intensity.Aggressive, "frenzied": c.Intensity.Frenzied,
	} {
		if t.ActionFreqMult <= 0 || t.MoveSpeedMult <= 0 || t.CooldownMult <= 0 {
			return fmt.Errorf("intensity.%s tunables must all be > 0", name)
		}
	}
	return nil
}
