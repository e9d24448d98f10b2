package domain

import (
	"fmt"
	"strings"
)

// Move is a single rock/paper/scissors throw.
type Move int

const (
	MoveUnspecified Move = iota
	Rock
	Paper
	Scissors
)

// Moves lists every legal move in canonical order.
var Moves = [3]Move{Rock, Paper, Scissors}

var moveNames = map[Move]string{
	Rock:     "rock",
	Paper:    "paper",
	Scissors: "scissors",
}

// beats maps a move to the move it defeats.
var beats = map[Move]Move{
	Rock:     Scissors,
	Scissors: Paper,
	Paper:    Rock,
}

// Valid reports whether m is one of the three legal moves.
func (m Move) Valid() bool {
	_, ok := beats[m]
	return ok
}

func (m Move) String() string {
	if name, ok := moveNames[m]; ok {
		return name
	}
	return "unspecified"
}

// Title returns the capitalized move name used in result messages.
func (m Move) Title() string {
	s := m.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Beats reports whether m defeats other.
func (m Move) Beats(other Move) bool {
	loser, ok := beats[m]
	return ok && loser == other
}

// CounterOf returns the move that defeats m.
func CounterOf(m Move) Move {
	for winner, loser := range beats {
		if loser == m {
			return winner
		}
	}
	return MoveUnspecified
}

// ParseMove converts a move name ("rock", "PAPER", ...) into a Move.
func ParseMove(s string) (Move, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range moveNames {
		if n == name {
			return m, nil
		}
	}
	return MoveUnspecified, fmt.Errorf("unknown move %q", s)
}

// Outcome is the result of one round from the player's point of view.
type Outcome int

const (
	OutcomeTie Outcome = iota
	OutcomePlayerWin
	OutcomeOpponentWin
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlayerWin:
		return "player_win"
	case OutcomeOpponentWin:
		return "opponent_win"
	default:
		return "tie"
	}
}

// Resolve compares the player's move against the opponent's.
func Resolve(player, opponent Move) Outcome {
	switch {
	case player == opponent:
		return OutcomeTie
	case player.Beats(opponent):
		return OutcomePlayerWin
	default:
		return OutcomeOpponentWin
	}
}
