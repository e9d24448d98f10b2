package nakama

import (
	"fmt"
	"math"

	"rpsarena/internal/app"
	"rpsarena/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Messages are binary google.protobuf.Struct values.

func snapshotFields(s domain.Snapshot) map[string]any {
	return map[string]any{
		"phase":          string(s.Phase),
		"target_rounds":  s.TargetRounds,
		"rounds_played":  s.RoundsPlayed,
		"player_score":   s.PlayerScore,
		"opponent_score": s.OpponentScore,
		"ties":           s.Ties,
		"win_streak":     s.WinStreak,
		"counter_bias":   s.CounterBias,
	}
}

func roundFields(r domain.RoundResult) map[string]any {
	return map[string]any{
		"round":         r.Number,
		"player_move":   r.PlayerMove.String(),
		"opponent_move": r.OpponentMove.String(),
		"outcome":       r.Outcome.String(),
		"winning_move":  r.WinningMove().String(),
		"message":       r.Message(),
	}
}

func summaryFields(s domain.Summary) map[string]any {
	favorite := ""
	if s.FavoriteMove.Valid() {
		favorite = s.FavoriteMove.String()
	}
	return map[string]any{
		"winner":         string(s.Winner),
		"verdict":        s.Verdict(),
		"player_score":   s.PlayerScore,
		"opponent_score": s.OpponentScore,
		"ties":           s.Ties,
		"rounds_played":  s.RoundsPlayed,
		"win_rate":       s.WinRate,
		"favorite_move":  favorite,
	}
}

// encodeEvent maps an app event to its op code and wire payload.
func encodeEvent(ev app.Event) (int64, []byte, error) {
	var opCode int64
	var fields map[string]any

	switch ev.Kind {
	case app.EventMatchStarted:
		p := ev.Payload.(app.MatchStartedPayload)
		opCode = OpMatchStarted
		fields = map[string]any{"snapshot": snapshotFields(p.Snapshot)}
	case app.EventRoundResolved:
		p := ev.Payload.(app.RoundResolvedPayload)
		opCode = OpRoundResolved
		fields = map[string]any{
			"result":   roundFields(p.Report.Result),
			"snapshot": snapshotFields(p.Report.Snapshot),
		}
	case app.EventPhaseChanged:
		p := ev.Payload.(app.PhaseChangedPayload)
		opCode = OpPhaseChanged
		fields = map[string]any{"phase": string(p.Phase)}
	case app.EventMatchFinished:
		p := ev.Payload.(app.MatchFinishedPayload)
		opCode = OpMatchFinished
		fields = map[string]any{"summary": summaryFields(p.Summary)}
	case app.EventMatchReset:
		p := ev.Payload.(app.PhaseChangedPayload)
		opCode = OpMatchReset
		fields = map[string]any{"phase": string(p.Phase)}
	default:
		return 0, nil, fmt.Errorf("unknown event kind %q", ev.Kind)
	}

	data, err := marshalFields(fields)
	if err != nil {
		return 0, nil, fmt.Errorf("encode %s: %w", ev.Kind, err)
	}
	return opCode, data, nil
}

func marshalFields(fields map[string]any) ([]byte, error) {
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(st)
}

func unmarshalFields(data []byte) (*structpb.Struct, error) {
	st := &structpb.Struct{}
	if len(data) == 0 {
		return st, nil
	}
	if err := proto.Unmarshal(data, st); err != nil {
		return nil, err
	}
	return st, nil
}

// decodeStartRequest reads {rounds}; an empty payload selects defaultRounds.
func decodeStartRequest(data []byte, defaultRounds int) (int, error) {
	st, err := unmarshalFields(data)
	if err != nil {
		return 0, fmt.Errorf("invalid start request: %w", err)
	}
	v, ok := st.GetFields()["rounds"]
	if !ok {
		return defaultRounds, nil
	}
	switch v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return defaultRounds, nil
	case *structpb.Value_NumberValue:
	default:
		return 0, fmt.Errorf("rounds must be a number")
	}
	n := v.GetNumberValue()
	if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
		return 0, fmt.Errorf("rounds must be a whole number, got %v", n)
	}
	return int(n), nil
}

// decodeMoveRequest reads {move} as a move name.
func decodeMoveRequest(data []byte) (domain.Move, error) {
	st, err := unmarshalFields(data)
	if err != nil {
		return domain.MoveUnspecified, fmt.Errorf("invalid move request: %w", err)
	}
	return domain.ParseMove(st.GetFields()["move"].GetStringValue())
}

// matchLabel renders the JSON label used for match listing.
func matchLabel(open bool, phase domain.Phase) (string, error) {
	st, err := structpb.NewStruct(map[string]any{
		MatchLabelKeyOpen:  open,
		MatchLabelKeyGame:  matchLabelGame,
		MatchLabelKeyPhase: string(phase),
	})
	if err != nil {
		return "", err
	}
	b, err := protojson.Marshal(st)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
