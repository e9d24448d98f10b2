package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig configures the HTTP session daemon.
type ServerConfig struct {
	HTTPAddr     string        `env:"RPS_HTTP_ADDR" envDefault:"127.0.0.1:8080"`
	TicketSecret string        `env:"RPS_TICKET_SECRET,required,notEmpty"`
	TicketIssuer string        `env:"RPS_TICKET_ISSUER" envDefault:"rpsarena"`
	TicketTTL    time.Duration `env:"RPS_TICKET_TTL" envDefault:"1h"`
	GameConfig   string        `env:"RPS_GAME_CONFIG" envDefault:"data/game_config.json"`
	Opponents    string        `env:"RPS_OPPONENTS" envDefault:"data/opponents.json"`
	// Seed fixes the opponent random source for reproducible sessions; 0 means time-seeded.
	Seed int64 `env:"RPS_SEED" envDefault:"0"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
