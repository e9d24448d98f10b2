package nakama

import (
	"context"
	"database/sql"

	"rpsarena/internal/bot"
	"rpsarena/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig(gameConfigPath); err != nil {
		logger.Warn("Could not load game config, using defaults: %v", err)
	}
	if err := bot.LoadIdentities(opponentsPath); err != nil {
		logger.Warn("Could not load opponent identities, using fallback: %v", err)
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameRPS, NewMatch); err != nil {
		return err
	}

	logger.Info("RPS Arena Go module loaded.")
	return nil
}
