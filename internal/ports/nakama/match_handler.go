package nakama

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"rpsarena/internal/app"
	"rpsarena/internal/bot"
	"rpsarena/internal/config"
	"rpsarena/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	OwnerID       string                      `json:"owner_id"`       // Only user allowed to take the seat, empty for an open match
	PlayerID      string                      `json:"player_id"`      // The single human seat, empty until someone joins
	Tick          int64                       `json:"tick"`           // Current tick of the match
	CooldownUntil int64                       `json:"cooldown_until"` // Tick at which the round cooldown ends, 0 when none is pending
	CooldownTicks int64                       `json:"cooldown_ticks"` // Cooldown length in ticks
	Config        config.GameConfig           `json:"-"`
	Presences     map[string]runtime.Presence `json:"-"` // Map UserId -> Presence for targeted messaging
	Opponent      *bot.Agent                  `json:"-"`
	App           *app.Service                `json:"-"` // Match engine driving Match
	Match         *domain.MatchState          `json:"-"`
}

// newMatchState builds a match around the given opponent.
func newMatchState(cfg config.GameConfig, opponent *bot.Agent) *MatchState {
	return &MatchState{
		CooldownTicks: cfg.CooldownTicks(),
		Config:        cfg,
		Presences:     make(map[string]runtime.Presence),
		Opponent:      opponent,
		App:           app.NewService(opponent),
		Match:         domain.NewMatchState(),
	}
}

// canSeat reports whether userID may take the human seat.
func (ms *MatchState) canSeat(userID string) (bool, string) {
	if bot.IsBot(userID) {
		return false, "reserved id"
	}
	if ms.OwnerID != "" && ms.OwnerID != userID {
		return false, "private match"
	}
	if ms.PlayerID != "" && ms.PlayerID != userID {
		return false, "Match full"
	}
	return true, ""
}

// open reports whether the match should be listed as joinable.
func (ms *MatchState) open() bool {
	return ms.OwnerID == "" && ms.PlayerID == ""
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities(opponentsPath); err != nil {
		logger.Warn("MatchInit: Could not load opponent identities: %v", err)
	}
	if err := config.LoadGameConfig(gameConfigPath); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	cfg := applyEnvOverrides(config.GetGameConfig().Effective(), env, logger)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	identity, err := pickOpponent(cfg, params, rng)
	if err != nil {
		logger.Error("MatchInit: %v", err)
		return nil, 0, ""
	}
	agent, err := bot.NewAgent(identity, rng)
	if err != nil {
		logger.Error("MatchInit: Failed to create opponent %s: %v", identity.ID, err)
		return nil, 0, ""
	}

	state := newMatchState(cfg, agent)
	state.OwnerID, _ = params[paramOwnerID].(string)

	label, err := matchLabel(state.open(), state.Match.Phase)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	logger.Info("MatchInit: Opponent %s (%s, %s), owner %q, cooldown %d ticks.", agent.Name, agent.ID, agent.Level, state.OwnerID, state.CooldownTicks)
	return state, cfg.TickRate, label
}

// applyEnvOverrides layers Nakama runtime env values over the file config.
func applyEnvOverrides(cfg config.GameConfig, env map[string]string, logger runtime.Logger) config.GameConfig {
	if val, ok := env[envRoundCooldownMs]; ok {
		if ms, err := strconv.Atoi(val); err == nil && ms > 0 {
			cfg.RoundCooldownMs = ms
		} else {
			logger.Warn("MatchInit: Ignoring %s=%q", envRoundCooldownMs, val)
		}
	}
	if val, ok := env[envOpponentLevel]; ok {
		if _, err := bot.ParseLevel(val); err == nil {
			cfg.OpponentLevel = val
		} else {
			logger.Warn("MatchInit: Ignoring %s=%q: %v", envOpponentLevel, val, err)
		}
	}
	return cfg
}

// pickOpponent honours an explicit opponent_id param, else draws an identity at the configured level.
func pickOpponent(cfg config.GameConfig, params map[string]interface{}, rng *rand.Rand) (bot.OpponentIdentity, error) {
	if id, ok := params[paramOpponentID].(string); ok && id != "" {
		identity, found := bot.LookupIdentity(id)
		if !found {
			return bot.OpponentIdentity{}, errors.New("unknown opponent " + id)
		}
		return identity, nil
	}
	level, err := bot.ParseLevel(cfg.OpponentLevel)
	if err != nil {
		return bot.OpponentIdentity{}, err
	}
	return bot.IdentityForLevel(level, rng.Intn(1<<16)), nil
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if allowed, reason := matchState.canSeat(presence.GetUserId()); !allowed {
		logger.Debug("MatchJoinAttempt: Refused %s: %s", presence.GetUserId(), reason)
		return state, false, reason
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		if allowed, reason := matchState.canSeat(p.GetUserId()); !allowed {
			logger.Warn("MatchJoin: User %s joined without a seat: %s", p.GetUserId(), reason)
			continue
		}
		matchState.PlayerID = p.GetUserId()
		matchState.Presences[p.GetUserId()] = p
		logger.Debug("MatchJoin: User %s seated against %s.", p.GetUserId(), matchState.Opponent.ID)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.sendMatchState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		if p.GetUserId() == matchState.PlayerID {
			logger.Info("MatchLeave: Player %s left, terminating match.", p.GetUserId())
			return nil
		}
	}
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		mh.handleMessage(matchState, dispatcher, logger, msg.GetUserId(), msg.GetOpCode(), msg.GetData())
	}

	mh.processCooldown(matchState, dispatcher, logger)

	return matchState
}

// handleMessage routes one client message to the match engine.
func (mh *matchHandler) handleMessage(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, opCode int64, data []byte) {
	if senderID != state.PlayerID {
		logger.Warn("handleMessage: Ignoring op %d from unseated user %s", opCode, senderID)
		return
	}

	switch opCode {
	case OpStartMatch:
		mh.handleStartMatch(state, dispatcher, logger, data)
	case OpPlayMove:
		mh.handlePlayMove(state, dispatcher, logger, data)
	case OpResetToMenu:
		state.CooldownUntil = 0
		events := state.App.ResetToMenu(state.Match)
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastEvents(state, dispatcher, logger, events)
	case OpRequestSummary:
		summary, err := state.App.FinalSummary(state.Match)
		if err != nil {
			mh.sendIgnored(state, dispatcher, logger, opCode, err)
			return
		}
		mh.broadcastEvents(state, dispatcher, logger, []app.Event{{
			Kind:       app.EventMatchFinished,
			Payload:    app.MatchFinishedPayload{Summary: summary},
			Recipients: []string{state.PlayerID},
		}})
	default:
		logger.Warn("MatchLoop: Unknown opcode received: %d", opCode)
	}
}

func (mh *matchHandler) handleStartMatch(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, data []byte) {
	rounds, err := decodeStartRequest(data, state.Config.DefaultRounds)
	if err != nil {
		logger.Warn("StartMatch: %v", err)
		mh.sendError(state, dispatcher, logger, 400, err.Error())
		return
	}
	if err := app.CheckRoundsOption(state.Config.RoundsOptions, rounds); err != nil {
		logger.Warn("StartMatch: %v", err)
		mh.sendError(state, dispatcher, logger, 422, err.Error())
		return
	}

	events, err := state.App.StartMatch(state.Match, rounds)
	if err != nil {
		logger.Error("StartMatch: Failed to start match: %v", err)
		mh.sendError(state, dispatcher, logger, 422, err.Error())
		return
	}
	state.CooldownUntil = 0

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastEvents(state, dispatcher, logger, events)
	logger.Info("StartMatch: %s started a %d round match.", state.PlayerID, rounds)
}

func (mh *matchHandler) handlePlayMove(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, data []byte) {
	move, err := decodeMoveRequest(data)
	if err != nil {
		logger.Warn("handlePlayMove: %v", err)
		mh.sendError(state, dispatcher, logger, 400, err.Error())
		return
	}

	report, events, err := state.App.PlayRound(state.Match, move)
	if err != nil {
		if errors.Is(err, app.ErrIgnored) {
			mh.sendIgnored(state, dispatcher, logger, OpPlayMove, err)
			return
		}
		mh.sendError(state, dispatcher, logger, 400, err.Error())
		return
	}

	switch state.Match.Phase {
	case domain.PhaseRoundCooldown:
		state.CooldownUntil = state.Tick + state.CooldownTicks
	case domain.PhaseFinished:
		mh.updateLabel(state, dispatcher, logger)
	}

	logger.Debug("handlePlayMove: Round %d %s vs %s -> %s", report.Result.Number, report.Result.PlayerMove, report.Result.OpponentMove, report.Result.Outcome)
	mh.broadcastEvents(state, dispatcher, logger, events)
}

// processCooldown resumes play once the cooldown tick has been reached.
func (mh *matchHandler) processCooldown(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.CooldownUntil == 0 || state.Tick < state.CooldownUntil {
		return
	}
	state.CooldownUntil = 0

	phase, events, err := state.App.Resume(state.Match)
	if err != nil {
		logger.Debug("processCooldown: Resume ignored in phase %s", phase)
		return
	}
	if phase == domain.PhaseFinished {
		mh.updateLabel(state, dispatcher, logger)
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
}

// sendMatchState sends the full snapshot plus menu choices to the seated player.
func (mh *matchHandler) sendMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	options := make([]any, len(state.Config.RoundsOptions))
	for i, r := range state.Config.RoundsOptions {
		options[i] = r
	}
	data, err := marshalFields(map[string]any{
		"snapshot":       snapshotFields(state.Match.Snapshot()),
		"rounds_options": options,
		"default_rounds": state.Config.DefaultRounds,
		"opponent": map[string]any{
			"id":    state.Opponent.ID,
			"name":  state.Opponent.Name,
			"level": state.Opponent.Level.String(),
		},
	})
	if err != nil {
		logger.Error("sendMatchState: Failed to marshal: %v", err)
		return
	}
	mh.send(state, dispatcher, logger, OpMatchState, data, []string{state.PlayerID})
}

// broadcastEvents encodes and dispatches app events in order.
func (mh *matchHandler) broadcastEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		opCode, data, err := encodeEvent(ev)
		if err != nil {
			logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
			continue
		}
		mh.send(state, dispatcher, logger, opCode, data, ev.Recipients)
	}
}

// send dispatches data to the given user ids, or everyone when none are named.
func (mh *matchHandler) send(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, data []byte, userIDs []string) {
	var recipients []runtime.Presence
	if len(userIDs) > 0 {
		for _, uid := range userIDs {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Intended recipients that are not connected must not turn into a broadcast.
		if len(recipients) == 0 {
			return
		}
	}
	if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
		logger.Error("Failed to send op %d: %v", opCode, err)
	}
}

// sendIgnored tells the player an operation was not valid in the current phase.
func (mh *matchHandler) sendIgnored(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, cause error) {
	data, err := marshalFields(map[string]any{
		"op":     opCode,
		"phase":  string(state.Match.Phase),
		"reason": cause.Error(),
	})
	if err != nil {
		logger.Error("Failed to marshal ignored notice: %v", err)
		return
	}
	mh.send(state, dispatcher, logger, OpIgnored, data, []string{state.PlayerID})
}

// sendError sends an error payload to the seated player.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, code int, message string) {
	data, err := marshalFields(map[string]any{
		"code":    code,
		"message": message,
	})
	if err != nil {
		logger.Error("Failed to marshal error: %v", err)
		return
	}
	mh.send(state, dispatcher, logger, OpError, data, []string{state.PlayerID})
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := matchLabel(state.open(), state.Match.Phase)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
