package bot

import (
	"math/rand"

	"rpsarena/internal/bot/brain"
	"rpsarena/internal/domain"
)

// RandomBot ignores the player and throws uniformly at random.
type RandomBot struct {
	rng *rand.Rand
}

// ChooseMove returns a uniformly random move.
func (b *RandomBot) ChooseMove(history []domain.Move, bias float64) domain.Move {
	return randomMove(b.rng)
}

// AdaptiveBot models the player from their history: it answers known two-move
// habits and otherwise counters the player's favorite move with probability bias.
type AdaptiveBot struct {
	rng    *rand.Rand
	tuning Tuning
	rules  []DecisionRule
}

// ChooseMove runs the decision pipeline over the player's history.
func (b *AdaptiveBot) ChooseMove(history []domain.Move, bias float64) domain.Move {
	ctx := &DecisionContext{
		Profile: brain.ProfileFromHistory(history),
		Bias:    bias,
		Rng:     b.rng,
		Tuning:  b.tuning,
	}
	return RunPipeline(ctx, b.rules)
}
