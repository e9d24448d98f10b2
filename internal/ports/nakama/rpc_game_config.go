package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"rpsarena/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// GameConfigResponse lists the menu choices offered to clients.
type GameConfigResponse struct {
	RoundsOptions   []int  `json:"rounds_options"`
	DefaultRounds   int    `json:"default_rounds"`
	RoundCooldownMs int    `json:"round_cooldown_ms"`
	OpponentLevel   string `json:"opponent_level"`
}

func gameConfigResponse(cfg config.GameConfig) GameConfigResponse {
	return GameConfigResponse{
		RoundsOptions:   cfg.RoundsOptions,
		DefaultRounds:   cfg.DefaultRounds,
		RoundCooldownMs: cfg.RoundCooldownMs,
		OpponentLevel:   cfg.OpponentLevel,
	}
}

func rpcGameConfig(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	cfg := applyEnvOverrides(config.GetGameConfig().Effective(), env, logger)

	b, err := json.Marshal(gameConfigResponse(cfg))
	if err != nil {
		logger.Error("rpcGameConfig: %v", err)
		return "", runtime.NewError("failed to encode config", errCodeInternal)
	}
	return string(b), nil
}
