package domain

import "math"

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseMenu means no match is active.
	PhaseMenu Phase = "menu"
	// PhasePlaying means the match accepts the next move.
	PhasePlaying Phase = "playing"
	// PhaseRoundCooldown means a round was just resolved and the caller has not resumed yet.
	PhaseRoundCooldown Phase = "round_cooldown"
	// PhaseFinished means the rounds target was reached.
	PhaseFinished Phase = "finished"
)

// Counter-bias tuning. The bias only moves on the 0.05 grid between the bounds.
const (
	InitialCounterBias = 0.70
	MinCounterBias     = 0.50
	MaxCounterBias     = 0.90
	CounterBiasStep    = 0.05
	StreakThreshold    = 3
)

// RoundResult is the immutable record of one resolved round.
type RoundResult struct {
	Number       int // 1-based
	PlayerMove   Move
	OpponentMove Move
	Outcome      Outcome
}

// WinningMove returns the move that took the round, or MoveUnspecified on a tie.
func (r RoundResult) WinningMove() Move {
	switch r.Outcome {
	case OutcomePlayerWin:
		return r.PlayerMove
	case OutcomeOpponentWin:
		return r.OpponentMove
	default:
		return MoveUnspecified
	}
}

// Message is the banner text shown for the round.
func (r RoundResult) Message() string {
	switch r.Outcome {
	case OutcomePlayerWin:
		return "YOU WIN! " + r.PlayerMove.Title() + " takes it!"
	case OutcomeOpponentWin:
		return "COMPUTER WINS! " + r.OpponentMove.Title() + " dominates."
	default:
		return "IT'S A TIE!"
	}
}

// MatchState captures the domain state for a single match instance.
type MatchState struct {
	Phase Phase

	TargetRounds  int
	RoundsPlayed  int
	PlayerScore   int
	OpponentScore int
	Ties          int

	History []Move        // player moves, one per round
	Rounds  []RoundResult // resolved rounds in order

	// WinStreak is positive while the opponent is streaking and negative while the player is.
	WinStreak   int
	CounterBias float64
}

// NewMatchState returns a cleared state sitting in the menu.
func NewMatchState() *MatchState {
	s := &MatchState{}
	s.Reset(PhaseMenu, 0)
	return s
}

// Reset clears every counter and moves the state to the given phase.
func (s *MatchState) Reset(phase Phase, targetRounds int) {
	*s = MatchState{
		Phase:        phase,
		TargetRounds: targetRounds,
		History:      []Move{},
		Rounds:       []RoundResult{},
		CounterBias:  InitialCounterBias,
	}
}

// Record applies a resolved round to the scores, streak and bias.
func (s *MatchState) Record(player, opponent Move) RoundResult {
	outcome := Resolve(player, opponent)
	s.History = append(s.History, player)
	s.RoundsPlayed++

	switch outcome {
	case OutcomePlayerWin:
		s.PlayerScore++
		s.WinStreak = min(-1, s.WinStreak-1)
	case OutcomeOpponentWin:
		s.OpponentScore++
		s.WinStreak = max(1, s.WinStreak+1)
	default:
		s.Ties++
		s.WinStreak = 0
	}

	if s.WinStreak >= StreakThreshold {
		s.CounterBias = roundBias(math.Min(MaxCounterBias, s.CounterBias+CounterBiasStep))
	} else if s.WinStreak <= -StreakThreshold {
		s.CounterBias = roundBias(math.Max(MinCounterBias, s.CounterBias-CounterBiasStep))
	}

	result := RoundResult{
		Number:       s.RoundsPlayed,
		PlayerMove:   player,
		OpponentMove: opponent,
		Outcome:      outcome,
	}
	s.Rounds = append(s.Rounds, result)
	return result
}

// TargetReached reports whether every configured round has been played.
func (s *MatchState) TargetReached() bool {
	return s.TargetRounds > 0 && s.RoundsPlayed >= s.TargetRounds
}

// Snapshot is a read-only copy of the displayable counters.
type Snapshot struct {
	Phase         Phase
	TargetRounds  int
	RoundsPlayed  int
	PlayerScore   int
	OpponentScore int
	Ties          int
	WinStreak     int
	CounterBias   float64
}

// Snapshot copies the displayable counters out of the state.
func (s *MatchState) Snapshot() Snapshot {
	return Snapshot{
		Phase:         s.Phase,
		TargetRounds:  s.TargetRounds,
		RoundsPlayed:  s.RoundsPlayed,
		PlayerScore:   s.PlayerScore,
		OpponentScore: s.OpponentScore,
		Ties:          s.Ties,
		WinStreak:     s.WinStreak,
		CounterBias:   s.CounterBias,
	}
}

// roundBias pins the bias to two decimals so repeated steps stay on the grid.
func roundBias(b float64) float64 {
	return math.Round(b*100) / 100
}
