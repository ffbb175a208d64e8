package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/skirmish/internal/battle"
)

// Config holds game configuration options, read from SKIRMISH_* variables.
type Config struct {
	// Seed for random number generation. Used for reproducible enemy target
	// choices. A seed of 0 means a random seed will be generated.
	Seed int64 `env:"SKIRMISH_SEED" envDefault:"0"`

	// Headless swaps the terminal for a log-only presenter and an autopilot.
	Headless bool `env:"SKIRMISH_HEADLESS" envDefault:"false"`

	// Encounters stops the game after that many battles. 0 plays forever.
	Encounters int `env:"SKIRMISH_ENCOUNTERS" envDefault:"0"`

	BattleDelay    time.Duration `env:"SKIRMISH_BATTLE_DELAY"    envDefault:"2s"`
	AnimationDelay time.Duration `env:"SKIRMISH_ANIMATION_DELAY" envDefault:"500ms"`
	HurtDelay      time.Duration `env:"SKIRMISH_HURT_DELAY"      envDefault:"1s"`

	// RosterFile overrides the embedded roster.json.
	RosterFile string `env:"SKIRMISH_ROSTER_FILE"`

	LogFile      string `env:"SKIRMISH_LOG_FILE"      envDefault:"skirmish.log"`
	LogVerbosity int    `env:"SKIRMISH_LOG_VERBOSITY" envDefault:"0"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values that have no sensible meaning.
func (c Config) Validate() error {
	var errs []error
	if c.Encounters < 0 {
		errs = append(errs, fmt.Errorf("SKIRMISH_ENCOUNTERS must not be negative, got %d", c.Encounters))
	}
	if c.BattleDelay < 0 || c.AnimationDelay < 0 || c.HurtDelay < 0 {
		errs = append(errs, errors.New("delays must not be negative"))
	}
	if c.LogVerbosity < 0 {
		errs = append(errs, fmt.Errorf("SKIRMISH_LOG_VERBOSITY must not be negative, got %d", c.LogVerbosity))
	}
	return errors.Join(errs...)
}

// Mode returns how the game is presented.
func (c Config) Mode() Mode {
	if c.Headless {
		return ModeHeadless
	}
	return ModeTerminal
}

// Timing returns the battle pacing.
func (c Config) Timing() battle.Timing {
	return battle.Timing{
		BattleDelay:    c.BattleDelay,
		AnimationDelay: c.AnimationDelay,
		HurtDelay:      c.HurtDelay,
	}
}
