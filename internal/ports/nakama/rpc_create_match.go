package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"rpsarena/internal/bot"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	errCodeInvalidArgument = 3
	errCodeInternal        = 13
)

var (
	errBadPayload      = runtime.NewError("invalid request payload", errCodeInvalidArgument)
	errUnknownOpponent = runtime.NewError("unknown opponent", errCodeInvalidArgument)
	errCreateFailed    = runtime.NewError("failed to create match", errCodeInternal)
)

// CreateMatchRequest optionally pins the opponent identity.
type CreateMatchRequest struct {
	OpponentID string `json:"opponent_id,omitempty"`
}

// CreateMatchResponse is the payload returned to clients after a match was created.
type CreateMatchResponse struct {
	MatchID string `json:"match_id"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcCreateMatch, rpcCreateMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcGameConfig, rpcGameConfig)
}

// parseCreateMatchRequest decodes the optional RPC payload into match params.
// A non-empty userID reserves the seat for that user.
func parseCreateMatchRequest(userID, payload string) (map[string]interface{}, error) {
	params := map[string]interface{}{}
	if userID != "" {
		params[paramOwnerID] = userID
	}
	if payload == "" {
		return params, nil
	}

	var req CreateMatchRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return nil, errBadPayload
	}
	if req.OpponentID != "" {
		if _, ok := bot.LookupIdentity(req.OpponentID); !ok {
			return nil, errUnknownOpponent
		}
		params[paramOpponentID] = req.OpponentID
	}
	return params, nil
}

// rpcCreateMatch opens an authoritative match only the caller may join.
func rpcCreateMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	params, err := parseCreateMatchRequest(userID, payload)
	if err != nil {
		logger.Warn("rpcCreateMatch [User:%s]: %v", userID, err)
		return "", err
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameRPS, params)
	if err != nil {
		logger.Error("rpcCreateMatch [User:%s]: MatchCreate error: %v", userID, err)
		return "", errCreateFailed
	}

	logger.Info("rpcCreateMatch [User:%s]: Created match %s", userID, matchID)
	b, err := json.Marshal(CreateMatchResponse{MatchID: matchID})
	if err != nil {
		return "", errCreateFailed
	}
	return string(b), nil
}
