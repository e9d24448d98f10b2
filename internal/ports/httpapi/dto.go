package httpapi

import (
	"rpsarena/internal/app"
	"rpsarena/internal/bot"
	"rpsarena/internal/domain"
)

type snapshotResponse struct {
	Phase         string  `json:"phase"`
	TargetRounds  int     `json:"target_rounds"`
	RoundsPlayed  int     `json:"rounds_played"`
	PlayerScore   int     `json:"player_score"`
	OpponentScore int     `json:"opponent_score"`
	Ties          int     `json:"ties"`
	WinStreak     int     `json:"win_streak"`
	CounterBias   float64 `json:"counter_bias"`
}

func toSnapshot(s domain.Snapshot) snapshotResponse {
	return snapshotResponse{
		Phase:         string(s.Phase),
		TargetRounds:  s.TargetRounds,
		RoundsPlayed:  s.RoundsPlayed,
		PlayerScore:   s.PlayerScore,
		OpponentScore: s.OpponentScore,
		Ties:          s.Ties,
		WinStreak:     s.WinStreak,
		CounterBias:   s.CounterBias,
	}
}

type roundResponse struct {
	Round        int    `json:"round"`
	PlayerMove   string `json:"player_move"`
	OpponentMove string `json:"opponent_move"`
	Outcome      string `json:"outcome"`
	WinningMove  string `json:"winning_move,omitempty"`
	Message      string `json:"message"`
}

func toRound(r domain.RoundResult) roundResponse {
	out := roundResponse{
		Round:        r.Number,
		PlayerMove:   r.PlayerMove.String(),
		OpponentMove: r.OpponentMove.String(),
		Outcome:      r.Outcome.String(),
		Message:      r.Message(),
	}
	if m := r.WinningMove(); m.Valid() {
		out.WinningMove = m.String()
	}
	return out
}

type summaryResponse struct {
	Winner        string  `json:"winner"`
	Verdict       string  `json:"verdict"`
	PlayerScore   int     `json:"player_score"`
	OpponentScore int     `json:"opponent_score"`
	Ties          int     `json:"ties"`
	RoundsPlayed  int     `json:"rounds_played"`
	WinRate       float64 `json:"win_rate"`
	FavoriteMove  string  `json:"favorite_move,omitempty"`
}

func toSummary(s domain.Summary) summaryResponse {
	out := summaryResponse{
		Winner:        string(s.Winner),
		Verdict:       s.Verdict(),
		PlayerScore:   s.PlayerScore,
		OpponentScore: s.OpponentScore,
		Ties:          s.Ties,
		RoundsPlayed:  s.RoundsPlayed,
		WinRate:       s.WinRate,
	}
	if s.FavoriteMove.Valid() {
		out.FavoriteMove = s.FavoriteMove.String()
	}
	return out
}

type opponentResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

func toOpponent(a *bot.Agent) opponentResponse {
	return opponentResponse{ID: a.ID, Name: a.Name, Level: a.Level.String()}
}

type roundsRequest struct {
	Rounds *int `json:"rounds"`
}

type moveRequest struct {
	Move string `json:"move"`
}

type createMatchResponse struct {
	MatchID  string           `json:"match_id"`
	Ticket   string           `json:"ticket"`
	Opponent opponentResponse `json:"opponent"`
	Snapshot snapshotResponse `json:"snapshot"`
}

type matchResponse struct {
	MatchID  string           `json:"match_id"`
	Opponent opponentResponse `json:"opponent"`
	Snapshot snapshotResponse `json:"snapshot"`
}

type roundReportResponse struct {
	Result   roundResponse    `json:"result"`
	Snapshot snapshotResponse `json:"snapshot"`
	Summary  *summaryResponse `json:"summary,omitempty"`
}

func toReport(r app.RoundReport) roundReportResponse {
	return roundReportResponse{Result: toRound(r.Result), Snapshot: toSnapshot(r.Snapshot)}
}

type phaseResponse struct {
	Phase string `json:"phase"`
}

type configResponse struct {
	RoundsOptions []int  `json:"rounds_options"`
	DefaultRounds int    `json:"default_rounds"`
	OpponentLevel string `json:"opponent_level"`
}

type errorResponse struct {
	Error string `json:"error"`
	Phase string `json:"phase,omitempty"`
}
