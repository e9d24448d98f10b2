package domain

import (
	"math"
	"testing"
)

func TestRecordStreakClamp(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		player   Move
		opponent Move
		want     int
	}{
		{name: "opponent win from zero", start: 0, player: Rock, opponent: Paper, want: 1},
		{name: "opponent win extends", start: 2, player: Rock, opponent: Paper, want: 3},
		{name: "opponent win after player streak jumps to one", start: -4, player: Rock, opponent: Paper, want: 1},
		{name: "player win from zero", start: 0, player: Paper, opponent: Rock, want: -1},
		{name: "player win extends", start: -2, player: Paper, opponent: Rock, want: -3},
		{name: "player win after opponent streak drops to minus one", start: 5, player: Paper, opponent: Rock, want: -1},
		{name: "tie resets", start: 4, player: Rock, opponent: Rock, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMatchState()
			s.Reset(PhasePlaying, 10)
			s.WinStreak = tt.start
			s.Record(tt.player, tt.opponent)
			if s.WinStreak != tt.want {
				t.Fatalf("WinStreak = %d, want %d", s.WinStreak, tt.want)
			}
		})
	}
}

func TestRecordBiasAdjustment(t *testing.T) {
	s := NewMatchState()
	s.Reset(PhasePlaying, 20)

	// Two opponent wins leave the bias alone; the third and later each add a step.
	wantBias := []float64{0.70, 0.70, 0.75, 0.80, 0.85, 0.90, 0.90}
	for i, want := range wantBias {
		s.Record(Rock, Paper)
		if s.CounterBias != want {
			t.Fatalf("after opponent win %d: bias = %v, want %v", i+1, s.CounterBias, want)
		}
	}

	// A player streak walks it back down to the floor.
	wantBias = []float64{0.90, 0.90, 0.85, 0.80, 0.75, 0.70, 0.65, 0.60, 0.55, 0.50, 0.50}
	for i, want := range wantBias {
		s.Record(Paper, Rock)
		if s.CounterBias != want {
			t.Fatalf("after player win %d: bias = %v, want %v", i+1, s.CounterBias, want)
		}
	}
}

func TestRecordBiasStaysOnGrid(t *testing.T) {
	s := NewMatchState()
	s.Reset(PhasePlaying, 100)
	for i := 0; i < 50; i++ {
		s.Record(Rock, Paper)
	}
	for i := 0; i < 50; i++ {
		s.Record(Scissors, Paper)
	}
	steps := s.CounterBias / CounterBiasStep
	if math.Abs(steps-math.Round(steps)) > 1e-9 {
		t.Fatalf("bias %v drifted off the %.2f grid", s.CounterBias, CounterBiasStep)
	}
}

func TestRecordScoresAndHistory(t *testing.T) {
	s := NewMatchState()
	s.Reset(PhasePlaying, 3)

	r1 := s.Record(Rock, Scissors)
	r2 := s.Record(Paper, Scissors)
	r3 := s.Record(Scissors, Scissors)

	if r1.Outcome != OutcomePlayerWin || r2.Outcome != OutcomeOpponentWin || r3.Outcome != OutcomeTie {
		t.Fatalf("unexpected outcomes: %v %v %v", r1.Outcome, r2.Outcome, r3.Outcome)
	}
	if r3.Number != 3 {
		t.Fatalf("round number = %d, want 3", r3.Number)
	}
	if s.PlayerScore != 1 || s.OpponentScore != 1 || s.Ties != 1 || s.RoundsPlayed != 3 {
		t.Fatalf("unexpected counters: %+v", s.Snapshot())
	}
	if len(s.History) != 3 || s.History[1] != Paper {
		t.Fatalf("history = %v", s.History)
	}
	if !s.TargetReached() {
		t.Fatalf("target should be reached after 3 of 3 rounds")
	}
}

func TestRoundResultMessage(t *testing.T) {
	tests := []struct {
		result      RoundResult
		wantMessage string
		wantWinning Move
	}{
		{RoundResult{PlayerMove: Rock, OpponentMove: Rock, Outcome: OutcomeTie}, "IT'S A TIE!", MoveUnspecified},
		{RoundResult{PlayerMove: Rock, OpponentMove: Scissors, Outcome: OutcomePlayerWin}, "YOU WIN! Rock takes it!", Rock},
		{RoundResult{PlayerMove: Rock, OpponentMove: Paper, Outcome: OutcomeOpponentWin}, "COMPUTER WINS! Paper dominates.", Paper},
	}

	for _, tt := range tests {
		if got := tt.result.Message(); got != tt.wantMessage {
			t.Errorf("Message() = %q, want %q", got, tt.wantMessage)
		}
		if got := tt.result.WinningMove(); got != tt.wantWinning {
			t.Errorf("WinningMove() = %s, want %s", got, tt.wantWinning)
		}
	}
}
