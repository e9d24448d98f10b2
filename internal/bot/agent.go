package bot

import (
	"math/rand"

	"rpsarena/internal/domain"
)

// Agent represents the computer opponent seated in a match.
type Agent struct {
	ID       string
	Name     string
	Level    BotLevel
	Strategy Brain
}

// NewAgent builds an agent for the given identity with a fresh brain.
func NewAgent(identity OpponentIdentity, rng *rand.Rand) (*Agent, error) {
	level, err := ParseLevel(identity.Level)
	if err != nil {
		return nil, err
	}
	strategy, err := NewBrain(level, rng)
	if err != nil {
		return nil, err
	}
	return &Agent{
		ID:       identity.ID,
		Name:     identity.DisplayName,
		Level:    level,
		Strategy: strategy,
	}, nil
}

// ChooseMove asks the agent's strategy for its next move.
func (a *Agent) ChooseMove(history []domain.Move, bias float64) domain.Move {
	return a.Strategy.ChooseMove(history, bias)
}
