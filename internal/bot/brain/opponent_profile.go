package brain

import (
	"rpsarena/internal/domain"
)

// OpponentProfile summarizes the observed behavior of the human player.
type OpponentProfile struct {
	// Counts holds how many times each move was thrown.
	Counts map[domain.Move]int
	// FirstSeen lists moves in the order they first appeared.
	FirstSeen []domain.Move
	// Rounds is the number of moves observed.
	Rounds int

	last, previous domain.Move
}

// NewOpponentProfile initializes an empty profile.
func NewOpponentProfile() *OpponentProfile {
	return &OpponentProfile{
		Counts: make(map[domain.Move]int, len(domain.Moves)),
	}
}

// ProfileFromHistory builds a profile by replaying a full move history.
func ProfileFromHistory(history []domain.Move) *OpponentProfile {
	p := NewOpponentProfile()
	for _, m := range history {
		p.RecordMove(m)
	}
	return p
}

// RecordMove logs a move thrown by the player.
func (p *OpponentProfile) RecordMove(m domain.Move) {
	if !m.Valid() {
		return
	}
	if p.Counts[m] == 0 {
		p.FirstSeen = append(p.FirstSeen, m)
	}
	p.Counts[m]++
	p.Rounds++
	p.previous, p.last = p.last, m
}

// LastPair returns the two most recent moves, oldest first.
// ok is false until two moves have been recorded.
func (p *OpponentProfile) LastPair() (first, second domain.Move, ok bool) {
	if p.Rounds < 2 {
		return domain.MoveUnspecified, domain.MoveUnspecified, false
	}
	return p.previous, p.last, true
}

// Favorite returns the most thrown move. Equal counts go to the move seen first.
func (p *OpponentProfile) Favorite() (domain.Move, bool) {
	return domain.PickFavorite(p.FirstSeen, p.Counts)
}
