package bot

import "rpsarena/internal/domain"

// Tuning holds the fixed parameters of the adaptive opponent.
type Tuning struct {
	// MinHistory is the number of observed moves required before modelling the player.
	MinHistory int
	// Transitions maps the player's last two moves to an immediate reply.
	Transitions map[[2]domain.Move]domain.Move
}

// DefaultTuning reads the cyclic habits players fall into: after paper then rock
// they tend to go scissors, so paper is played, and so on around the cycle.
var DefaultTuning = Tuning{
	MinHistory: 3,
	Transitions: map[[2]domain.Move]domain.Move{
		{domain.Paper, domain.Rock}:     domain.Paper,
		{domain.Scissors, domain.Paper}: domain.Scissors,
		{domain.Rock, domain.Scissors}:  domain.Rock,
	},
}
