package nakama

const (
	// RpcCreateMatch is the Nakama RPC id clients call to open a match against the computer.
	RpcCreateMatch = "rps_create_match"
	// RpcGameConfig returns the menu choices (rounds options, default rounds).
	RpcGameConfig = "rps_game_config"

	// MatchNameRPS is the authoritative match handler name registered with Nakama.
	MatchNameRPS = "rps_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartMatch     int64 = 1
	OpPlayMove       int64 = 2
	OpResetToMenu    int64 = 3
	OpRequestSummary int64 = 4

	// Server -> Client events
	OpMatchState    int64 = 101
	OpMatchStarted  int64 = 102
	OpRoundResolved int64 = 103
	OpPhaseChanged  int64 = 104
	OpMatchFinished int64 = 105
	OpMatchReset    int64 = 106
	OpIgnored       int64 = 110 // send privately
	OpError         int64 = 111 // send privately
)

// Match label keys, queryable with "+label.open:T label.game:rps".
const (
	MatchLabelKeyOpen  = "open"
	MatchLabelKeyGame  = "game"
	MatchLabelKeyPhase = "phase"

	matchLabelGame = "rps"
)

// Runtime env keys read from the Nakama config.
const (
	envRoundCooldownMs = "rps_round_cooldown_ms"
	envOpponentLevel   = "rps_opponent_level"
)

// Match params accepted by MatchInit.
const (
	paramOpponentID = "opponent_id"
	paramOwnerID    = "owner_id"
)

// Data files relative to the Nakama working directory.
const (
	gameConfigPath = "data/game_config.json"
	opponentsPath  = "data/opponents.json"
)
