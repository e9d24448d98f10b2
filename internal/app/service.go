package app

import (
	"errors"
	"math/rand"
	"time"

	"rpsarena/internal/bot"
	"rpsarena/internal/domain"
)

// Service contains the match engine use-cases operating on domain state.
// A Service and the state it drives belong to a single session.
type Service struct {
	opponent bot.Brain
}

// NewService constructs a Service around the given opponent, or an adaptive
// opponent with a time-seeded source when nil.
func NewService(opponent bot.Brain) *Service {
	if opponent == nil {
		opponent, _ = bot.NewBrain(bot.BotLevelAdaptive, rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	return &Service{opponent: opponent}
}

var (
	ErrInvalidConfiguration = errors.New("rounds target must be positive")
	ErrIgnored              = errors.New("operation ignored in current phase")
	ErrInvalidMove          = errors.New("invalid move")
)

// RoundReport is returned after every resolved round.
type RoundReport struct {
	Result   domain.RoundResult
	Snapshot domain.Snapshot
}

// StartMatch resets the state for a new match of targetRounds rounds.
func (s *Service) StartMatch(state *domain.MatchState, targetRounds int) ([]Event, error) {
	if targetRounds <= 0 {
		return nil, ErrInvalidConfiguration
	}

	state.Reset(domain.PhasePlaying, targetRounds)

	return []Event{
		{
			Kind:    EventMatchStarted,
			Payload: MatchStartedPayload{Snapshot: state.Snapshot()},
		},
	}, nil
}

// PlayRound resolves one round against the opponent.
// It returns ErrIgnored without touching state unless the match is accepting moves.
func (s *Service) PlayRound(state *domain.MatchState, move domain.Move) (RoundReport, []Event, error) {
	if state.Phase != domain.PhasePlaying {
		return RoundReport{}, nil, ErrIgnored
	}
	if !move.Valid() {
		return RoundReport{}, nil, ErrInvalidMove
	}

	// The opponent only sees rounds that are already over.
	opponentMove := s.opponent.ChooseMove(state.History, state.CounterBias)
	result := state.Record(move, opponentMove)

	if state.TargetReached() {
		state.Phase = domain.PhaseFinished
	} else {
		state.Phase = domain.PhaseRoundCooldown
	}

	report := RoundReport{Result: result, Snapshot: state.Snapshot()}
	events := []Event{
		{
			Kind:    EventRoundResolved,
			Payload: RoundResolvedPayload{Report: report},
		},
	}
	if state.Phase == domain.PhaseFinished {
		events = append(events, Event{
			Kind:    EventMatchFinished,
			Payload: MatchFinishedPayload{Summary: domain.Summarize(state)},
		})
	}

	return report, events, nil
}

// Resume ends the round cooldown once the caller decides it has elapsed.
func (s *Service) Resume(state *domain.MatchState) (domain.Phase, []Event, error) {
	if state.Phase != domain.PhaseRoundCooldown {
		return state.Phase, nil, ErrIgnored
	}

	if state.TargetReached() {
		state.Phase = domain.PhaseFinished
	} else {
		state.Phase = domain.PhasePlaying
	}

	events := []Event{
		{
			Kind:    EventPhaseChanged,
			Payload: PhaseChangedPayload{Phase: state.Phase},
		},
	}
	if state.Phase == domain.PhaseFinished {
		events = append(events, Event{
			Kind:    EventMatchFinished,
			Payload: MatchFinishedPayload{Summary: domain.Summarize(state)},
		})
	}
	return state.Phase, events, nil
}

// FinalSummary reports the end-of-match statistics once the match is finished.
func (s *Service) FinalSummary(state *domain.MatchState) (domain.Summary, error) {
	if state.Phase != domain.PhaseFinished {
		return domain.Summary{}, ErrIgnored
	}
	return domain.Summarize(state), nil
}

// ResetToMenu clears the match from any phase.
func (s *Service) ResetToMenu(state *domain.MatchState) []Event {
	state.Reset(domain.PhaseMenu, 0)
	return []Event{
		{
			Kind:    EventMatchReset,
			Payload: PhaseChangedPayload{Phase: state.Phase},
		},
	}
}
