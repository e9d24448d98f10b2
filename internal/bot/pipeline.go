package bot

import (
	"math/rand"

	"rpsarena/internal/bot/brain"
	"rpsarena/internal/domain"
)

// DecisionContext holds the inputs shared by the decision rules for one round.
type DecisionContext struct {
	Profile *brain.OpponentProfile
	Bias    float64
	Rng     *rand.Rand
	Tuning  Tuning
}

// DecisionRule is one step of the opponent's decision pipeline.
// A rule that returns ok=true ends the pipeline with its move.
type DecisionRule interface {
	Name() string
	Apply(ctx *DecisionContext) (domain.Move, bool)
}

// InsufficientDataRule plays at random until enough moves have been observed.
type InsufficientDataRule struct{}

func (r *InsufficientDataRule) Name() string { return "InsufficientData" }

func (r *InsufficientDataRule) Apply(ctx *DecisionContext) (domain.Move, bool) {
	if ctx.Profile.Rounds < ctx.Tuning.MinHistory {
		return randomMove(ctx.Rng), true
	}
	return domain.MoveUnspecified, false
}

// TransitionPatternRule answers a known two-move habit immediately.
type TransitionPatternRule struct{}

func (r *TransitionPatternRule) Name() string { return "TransitionPattern" }

func (r *TransitionPatternRule) Apply(ctx *DecisionContext) (domain.Move, bool) {
	first, second, ok := ctx.Profile.LastPair()
	if !ok {
		return domain.MoveUnspecified, false
	}
	reply, ok := ctx.Tuning.Transitions[[2]domain.Move{first, second}]
	return reply, ok
}

// FrequencyCounterRule counters the player's favorite move with probability Bias
// and otherwise falls back to a random move. It always decides.
type FrequencyCounterRule struct{}

func (r *FrequencyCounterRule) Name() string { return "FrequencyCounter" }

func (r *FrequencyCounterRule) Apply(ctx *DecisionContext) (domain.Move, bool) {
	favorite, ok := ctx.Profile.Favorite()
	if !ok {
		return randomMove(ctx.Rng), true
	}
	counter := domain.CounterOf(favorite)
	if ctx.Rng.Float64() < ctx.Bias {
		return counter, true
	}
	return randomMove(ctx.Rng), true
}

// DefaultPipeline is the rule order used by the adaptive opponent.
func DefaultPipeline() []DecisionRule {
	return []DecisionRule{
		&InsufficientDataRule{},
		&TransitionPatternRule{},
		&FrequencyCounterRule{},
	}
}

// RunPipeline applies rules in order and returns the first decision.
func RunPipeline(ctx *DecisionContext, rules []DecisionRule) domain.Move {
	for _, rule := range rules {
		if move, ok := rule.Apply(ctx); ok {
			return move
		}
	}
	return randomMove(ctx.Rng)
}

func randomMove(rng *rand.Rand) domain.Move {
	return domain.Moves[rng.Intn(len(domain.Moves))]
}
