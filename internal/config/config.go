package config

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sync"
	"time"
)

// GameConfig holds the tunable match settings.
type GameConfig struct {
	// RoundsOptions lists the match lengths offered to players.
	RoundsOptions []int `json:"rounds_options"`
	DefaultRounds int   `json:"default_rounds"`
	// RoundCooldownMs is how long results stay on screen before the next move is accepted.
	RoundCooldownMs int    `json:"round_cooldown_ms"`
	OpponentLevel   string `json:"opponent_level"`
	// TickRate is the Nakama match loop frequency (1..60).
	TickRate int `json:"tick_rate"`
}

// Defaults used when no config file was loaded or a field is left empty.
const (
	defaultRounds     = 5
	defaultCooldownMs = 1000
	defaultTickRate   = 5
)

var defaultRoundsOptions = []int{3, 5, 7, 10}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		c, err := ReadGameConfig(path)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// ReadGameConfig reads and validates a config file without touching the global.
func ReadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}

	var c GameConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	for _, r := range c.RoundsOptions {
		if r <= 0 {
			return nil, fmt.Errorf("rounds option %d must be positive", r)
		}
	}
	if c.TickRate < 0 || c.TickRate > 60 {
		return nil, fmt.Errorf("tick rate %d out of range 1..60", c.TickRate)
	}
	return &c, nil
}

// GetGameConfig returns the global game configuration, or nil if none was loaded.
func GetGameConfig() *GameConfig {
	return cfg
}

// Effective returns c with defaults filled in; a nil receiver yields pure defaults.
func (c *GameConfig) Effective() GameConfig {
	out := GameConfig{}
	if c != nil {
		out = *c
	}
	if len(out.RoundsOptions) == 0 {
		out.RoundsOptions = slices.Clone(defaultRoundsOptions)
	}
	if out.DefaultRounds <= 0 {
		out.DefaultRounds = defaultRounds
	}
	if out.RoundCooldownMs <= 0 {
		out.RoundCooldownMs = defaultCooldownMs
	}
	if out.TickRate <= 0 {
		out.TickRate = defaultTickRate
	}
	return out
}

// RoundCooldown returns the cooldown as a duration.
func (c GameConfig) RoundCooldown() time.Duration {
	return time.Duration(c.RoundCooldownMs) * time.Millisecond
}

// CooldownTicks converts the cooldown into match loop ticks, at least one.
func (c GameConfig) CooldownTicks() int64 {
	if c.TickRate <= 0 {
		return 1
	}
	ticks := (int64(c.RoundCooldown())*int64(c.TickRate) + int64(time.Second) - 1) / int64(time.Second)
	return max(1, ticks)
}
