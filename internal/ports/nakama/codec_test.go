package nakama

import (
	"encoding/json"
	"testing"

	"rpsarena/internal/app"
	"rpsarena/internal/domain"
)

func parseLabel(t *testing.T, label string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(label), &out); err != nil {
		t.Fatalf("label is not JSON: %v", err)
	}
	return out
}

func TestMatchLabel(t *testing.T) {
	label, err := matchLabel(true, domain.PhaseMenu)
	if err != nil {
		t.Fatalf("matchLabel: %v", err)
	}
	got := parseLabel(t, label)
	if got[MatchLabelKeyOpen] != true || got[MatchLabelKeyGame] != "rps" || got[MatchLabelKeyPhase] != "menu" {
		t.Fatalf("unexpected label: %v", got)
	}
}

func TestDecodeStartRequest(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    int
		wantErr bool
	}{
		{name: "empty uses default", data: nil, want: 5},
		{name: "missing field uses default", data: mustFields(t, map[string]any{"other": 1}), want: 5},
		{name: "explicit rounds", data: mustFields(t, map[string]any{"rounds": 7}), want: 7},
		{name: "fractional rounds", data: mustFields(t, map[string]any{"rounds": 1.5}), wantErr: true},
		{name: "null uses default", data: mustFields(t, map[string]any{"rounds": nil}), want: 5},
		{name: "string rounds", data: mustFields(t, map[string]any{"rounds": "5"}), wantErr: true},
		{name: "bool rounds", data: mustFields(t, map[string]any{"rounds": true}), wantErr: true},
		{name: "list rounds", data: mustFields(t, map[string]any{"rounds": []any{5}}), wantErr: true},
		{name: "out of range", data: mustFields(t, map[string]any{"rounds": 1e12}), wantErr: true},
		{name: "not protobuf", data: []byte("not proto"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeStartRequest(tt.data, 5)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("decodeStartRequest() = %d, %v; want %d", got, err, tt.want)
			}
		})
	}
}

func TestDecodeMoveRequest(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    domain.Move
		wantErr bool
	}{
		{name: "rock", data: mustFields(t, map[string]any{"move": "rock"}), want: domain.Rock},
		{name: "upper case", data: mustFields(t, map[string]any{"move": "SCISSORS"}), want: domain.Scissors},
		{name: "missing", data: nil, wantErr: true},
		{name: "wrong type", data: mustFields(t, map[string]any{"move": 2}), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeMoveRequest(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("decodeMoveRequest() = %v, %v; want %v", got, err, tt.want)
			}
		})
	}
}

func TestEncodeEvent(t *testing.T) {
	state := domain.NewMatchState()
	state.Reset(domain.PhasePlaying, 3)
	result := state.Record(domain.Rock, domain.Paper)
	state.Phase = domain.PhaseRoundCooldown

	tests := []struct {
		name   string
		event  app.Event
		wantOp int64
		check  func(t *testing.T, fields map[string]any)
	}{
		{
			name:   "round resolved",
			event:  app.Event{Kind: app.EventRoundResolved, Payload: app.RoundResolvedPayload{Report: app.RoundReport{Result: result, Snapshot: state.Snapshot()}}},
			wantOp: OpRoundResolved,
			check: func(t *testing.T, fields map[string]any) {
				r := fields["result"].(map[string]any)
				if r["winning_move"] != "paper" || r["outcome"] != "opponent_win" || r["round"] != float64(1) {
					t.Fatalf("unexpected result: %v", r)
				}
				s := fields["snapshot"].(map[string]any)
				if s["phase"] != "round_cooldown" || s["opponent_score"] != float64(1) || s["win_streak"] != float64(1) {
					t.Fatalf("unexpected snapshot: %v", s)
				}
			},
		},
		{
			name:   "phase changed",
			event:  app.Event{Kind: app.EventPhaseChanged, Payload: app.PhaseChangedPayload{Phase: domain.PhasePlaying}},
			wantOp: OpPhaseChanged,
			check: func(t *testing.T, fields map[string]any) {
				if fields["phase"] != "playing" {
					t.Fatalf("unexpected phase: %v", fields)
				}
			},
		},
		{
			name:   "finished without rounds",
			event:  app.Event{Kind: app.EventMatchFinished, Payload: app.MatchFinishedPayload{Summary: domain.Summarize(domain.NewMatchState())}},
			wantOp: OpMatchFinished,
			check: func(t *testing.T, fields map[string]any) {
				s := fields["summary"].(map[string]any)
				if s["favorite_move"] != "" || s["win_rate"] != float64(0) || s["winner"] != "draw" {
					t.Fatalf("unexpected summary: %v", s)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, data, err := encodeEvent(tt.event)
			if err != nil {
				t.Fatalf("encodeEvent: %v", err)
			}
			if op != tt.wantOp {
				t.Fatalf("op = %d, want %d", op, tt.wantOp)
			}
			tt.check(t, decodeMessage(t, data))
		})
	}

	if _, _, err := encodeEvent(app.Event{Kind: "bogus"}); err == nil {
		t.Fatalf("expected error for unknown event kind")
	}
}
