package bot

import (
	"rpsarena/internal/domain"
)

// Brain is the interface that all opponent strategies must implement.
// history is the player's move history before the current round; bias is the
// probability of playing the informed counter-move.
type Brain interface {
	ChooseMove(history []domain.Move, bias float64) domain.Move
}
