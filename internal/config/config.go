// Package config handles dice engine configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// Config holds all engine settings.
type Config struct {
	Throw   ThrowConfig   `yaml:"throw"`
	Session SessionConfig `yaml:"session"`
	Arena   ArenaConfig   `yaml:"arena"`
	Physics PhysicsConfig `yaml:"physics"`
	Logging LoggingConfig `yaml:"logging"`
}

// ThrowConfig holds the throw strength applied to new rolls.
type ThrowConfig struct {
	Speed float64 `yaml:"speed"`
	Spin  float64 `yaml:"spin"`
	Seed  uint64  `yaml:"seed"` // 0 picks a random seed per run
}

// SessionConfig holds the roll protocol tuning.
type SessionConfig struct {
	FixedStep          float64       `yaml:"fixed_step"` // seconds
	SettleThreshold    float64       `yaml:"settle_threshold"`
	ProbeSpeedFactor   float64       `yaml:"probe_speed_factor"`
	ProbeMaxSubSteps   int           `yaml:"probe_max_sub_steps"`
	PresentMaxSubSteps int           `yaml:"present_max_sub_steps"`
	FadeDuration       time.Duration `yaml:"fade_duration"`
	SettleTimeout      time.Duration `yaml:"settle_timeout"` // simulated time per phase, 0 disables
	Up                 [3]float64    `yaml:"up"`
}

// ArenaConfig holds the tray dimensions.
type ArenaConfig struct {
	FrustumSize   float64 `yaml:"frustum_size"`
	Aspect        float64 `yaml:"aspect"`
	WallHeight    float64 `yaml:"wall_height"`
	WallThickness float64 `yaml:"wall_thickness"`
	Margin        float64 `yaml:"margin"`
	DieSize       float64 `yaml:"die_size"`
}

// PhysicsConfig holds the reference world parameters.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	DieMass        float64 `yaml:"die_mass"`
	LinearDamping  float64 `yaml:"linear_damping"`
	AngularDamping float64 `yaml:"angular_damping"`
	Restitution    float64 `yaml:"restitution"`
	GroundFriction float64 `yaml:"ground_friction"`
}

// LoggingConfig holds logging settings. The rotation fields apply only when
// LogFile is set.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Throw: ThrowConfig{
			Speed: 15,
			Spin:  20,
		},
		Session: SessionConfig{
			FixedStep:          1.0 / 60,
			SettleThreshold:    0.01,
			ProbeSpeedFactor:   100000,
			ProbeMaxSubSteps:   999999999,
			PresentMaxSubSteps: 2,
			FadeDuration:       500 * time.Millisecond,
			SettleTimeout:      30 * time.Second,
			Up:                 [3]float64{0, 1, 0},
		},
		Arena: ArenaConfig{
			FrustumSize:   18,
			Aspect:        16.0 / 9,
			WallHeight:    20,
			WallThickness: 2,
			Margin:        2,
			DieSize:       1,
		},
		Physics: PhysicsConfig{
			Gravity:        -50,
			DieMass:        1,
			LinearDamping:  0.1,
			AngularDamping: 0.1,
			Restitution:    0.4,
			GroundFriction: 0.95,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Validate rejects settings the session cannot run with.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	unit := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0,1], got %v", name, v))
		}
	}

	positive("session.fixed_step", c.Session.FixedStep)
	positive("session.settle_threshold", c.Session.SettleThreshold)
	positive("session.probe_speed_factor", c.Session.ProbeSpeedFactor)
	if c.Session.ProbeMaxSubSteps < 1 {
		errs = append(errs, fmt.Errorf("session.probe_max_sub_steps must be at least 1, got %d", c.Session.ProbeMaxSubSteps))
	}
	if c.Session.PresentMaxSubSteps < 1 {
		errs = append(errs, fmt.Errorf("session.present_max_sub_steps must be at least 1, got %d", c.Session.PresentMaxSubSteps))
	}
	if c.Session.FadeDuration < 0 {
		errs = append(errs, fmt.Errorf("session.fade_duration must not be negative, got %v", c.Session.FadeDuration))
	}
	if c.Session.SettleTimeout < 0 {
		errs = append(errs, fmt.Errorf("session.settle_timeout must not be negative, got %v", c.Session.SettleTimeout))
	}
	if up := c.Session.Up; up == [3]float64{} {
		errs = append(errs, errors.New("session.up must not be the zero vector"))
	}

	positive("arena.frustum_size", c.Arena.FrustumSize)
	positive("arena.aspect", c.Arena.Aspect)
	positive("arena.wall_height", c.Arena.WallHeight)
	positive("arena.wall_thickness", c.Arena.WallThickness)
	positive("arena.die_size", c.Arena.DieSize)

	positive("physics.die_mass", c.Physics.DieMass)
	unit("physics.linear_damping", c.Physics.LinearDamping)
	unit("physics.angular_damping", c.Physics.AngularDamping)
	unit("physics.restitution", c.Physics.Restitution)
	unit("physics.ground_friction", c.Physics.GroundFriction)

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		errs = append(errs, errors.New("logging rotation limits must not be negative"))
	}

	return errors.Join(errs...)
}
