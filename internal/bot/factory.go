package bot

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// BotLevel selects an opponent strategy.
type BotLevel int

const (
	BotLevelRandom BotLevel = iota
	BotLevelAdaptive
)

func (l BotLevel) String() string {
	switch l {
	case BotLevelRandom:
		return "random"
	case BotLevelAdaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel converts a configured level name into a BotLevel.
func ParseLevel(name string) (BotLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "adaptive":
		return BotLevelAdaptive, nil
	case "random":
		return BotLevelRandom, nil
	default:
		return 0, fmt.Errorf("unknown bot level: %q", name)
	}
}

// NewBrain creates a new opponent brain based on the specified level.
// The rng is owned by the brain; pass nil for a time-seeded source.
func NewBrain(level BotLevel, rng *rand.Rand) (Brain, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	switch level {
	case BotLevelRandom:
		return &RandomBot{rng: rng}, nil
	case BotLevelAdaptive:
		return &AdaptiveBot{rng: rng, tuning: DefaultTuning, rules: DefaultPipeline()}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
