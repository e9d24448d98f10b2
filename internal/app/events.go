package app

import "rpsarena/internal/domain"

// EventKind identifies emitted match events for transport dispatch.
type EventKind string

const (
	EventMatchStarted  EventKind = "match_started"
	EventRoundResolved EventKind = "round_resolved"
	EventPhaseChanged  EventKind = "phase_changed"
	EventMatchFinished EventKind = "match_finished"
	EventMatchReset    EventKind = "match_reset"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type MatchStartedPayload struct {
	Snapshot domain.Snapshot
}

type RoundResolvedPayload struct {
	Report RoundReport
}

type PhaseChangedPayload struct {
	Phase domain.Phase
}

type MatchFinishedPayload struct {
	Summary domain.Summary
}
