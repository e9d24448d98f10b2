package domain

// Winner names the side that took the series.
type Winner string

const (
	WinnerPlayer   Winner = "player"
	WinnerOpponent Winner = "opponent"
	WinnerDraw     Winner = "draw"
)

// Summary holds the end-of-match statistics.
type Summary struct {
	Winner        Winner
	PlayerScore   int
	OpponentScore int
	Ties          int
	RoundsPlayed  int
	WinRate       float64 // percent of rounds the player won
	FavoriteMove  Move    // MoveUnspecified when no round was played
}

// Verdict is the headline shown on the game-over screen.
func (s Summary) Verdict() string {
	switch s.Winner {
	case WinnerPlayer:
		return "FINAL VICTOR: PLAYER!"
	case WinnerOpponent:
		return "FINAL VICTOR: COMPUTER!"
	default:
		return "SERIES DRAW!"
	}
}

// Summarize computes the end-of-match statistics for the given state.
func Summarize(s *MatchState) Summary {
	winner := WinnerDraw
	if s.PlayerScore > s.OpponentScore {
		winner = WinnerPlayer
	} else if s.OpponentScore > s.PlayerScore {
		winner = WinnerOpponent
	}

	favorite, _ := MostFrequent(s.History)
	return Summary{
		Winner:        winner,
		PlayerScore:   s.PlayerScore,
		OpponentScore: s.OpponentScore,
		Ties:          s.Ties,
		RoundsPlayed:  s.RoundsPlayed,
		WinRate:       WinRate(s.PlayerScore, s.RoundsPlayed),
		FavoriteMove:  favorite,
	}
}

// WinRate returns wins/rounds as a percentage, 0 when no rounds were played.
func WinRate(wins, rounds int) float64 {
	if rounds <= 0 {
		return 0
	}
	return float64(wins) / float64(rounds) * 100
}

// MostFrequent returns the most common move in history.
// Equal counts go to the move that appeared first. ok is false for an empty history.
func MostFrequent(history []Move) (move Move, ok bool) {
	counts := make(map[Move]int, len(Moves))
	var order []Move
	for _, m := range history {
		if !m.Valid() {
			continue
		}
		if counts[m] == 0 {
			order = append(order, m)
		}
		counts[m]++
	}
	return PickFavorite(order, counts)
}

// PickFavorite returns the move with the highest count, walking order so that
// a later move only wins with a strictly higher count.
func PickFavorite(order []Move, counts map[Move]int) (move Move, ok bool) {
	best, bestCount := MoveUnspecified, 0
	for _, m := range order {
		if counts[m] > bestCount {
			best, bestCount = m, counts[m]
		}
	}
	return best, bestCount > 0
}
