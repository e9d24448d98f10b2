package httpapi

import (
	"errors"
	"net/http"

	"rpsarena/internal/app"
	"rpsarena/internal/domain"

	"github.com/google/uuid"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.sessions.count()})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, configResponse{
		RoundsOptions: s.game.RoundsOptions,
		DefaultRounds: s.game.DefaultRounds,
		OpponentLevel: s.game.OpponentLevel,
	})
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req roundsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	rounds, err := s.rounds(req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "")
		return
	}

	opponent, err := s.opponents()
	if err != nil {
		s.logger.Printf("create match: opponent: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create opponent", "")
		return
	}

	sess := newSession(uuid.NewString(), opponent, s.sessions.now().Add(s.tickets.TTL()))
	if _, err := sess.svc.StartMatch(sess.match, rounds); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "")
		return
	}
	ticket, err := s.tickets.Issue(sess.id)
	if err != nil {
		s.logger.Printf("create match: ticket: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to issue ticket", "")
		return
	}
	s.sessions.add(sess)

	s.logger.Printf("match %s created: %d rounds against %s", sess.id, rounds, opponent.ID)
	writeJSON(w, http.StatusCreated, createMatchResponse{
		MatchID:  sess.id,
		Ticket:   ticket,
		Opponent: toOpponent(opponent),
		Snapshot: toSnapshot(sess.match.Snapshot()),
	})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	writeJSON(w, http.StatusOK, matchResponse{
		MatchID:  sess.id,
		Opponent: toOpponent(sess.opponent),
		Snapshot: toSnapshot(sess.match.Snapshot()),
	})
}

func (s *Server) handleStartMatch(w http.ResponseWriter, r *http.Request) {
	var req roundsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	rounds, err := s.rounds(req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "")
		return
	}

	sess := sessionFrom(r)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if _, err := sess.svc.StartMatch(sess.match, rounds); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "")
		return
	}
	writeJSON(w, http.StatusOK, toSnapshot(sess.match.Snapshot()))
}

func (s *Server) handlePlayRound(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	move, err := domain.ParseMove(req.Move)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	sess := sessionFrom(r)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	report, _, err := sess.svc.PlayRound(sess.match, move)
	switch {
	case errors.Is(err, app.ErrIgnored):
		writeError(w, http.StatusConflict, err.Error(), string(sess.match.Phase))
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	resp := toReport(report)
	if summary, err := sess.svc.FinalSummary(sess.match); err == nil {
		out := toSummary(summary)
		resp.Summary = &out
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	phase, _, err := sess.svc.Resume(sess.match)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error(), string(phase))
		return
	}
	writeJSON(w, http.StatusOK, phaseResponse{Phase: string(phase)})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	summary, err := sess.svc.FinalSummary(sess.match)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error(), string(sess.match.Phase))
		return
	}
	writeJSON(w, http.StatusOK, toSummary(summary))
}

func (s *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.mu.Lock()
	sess.svc.ResetToMenu(sess.match)
	phase := sess.match.Phase
	sess.mu.Unlock()

	s.sessions.remove(sess.id)
	s.logger.Printf("match %s closed", sess.id)
	writeJSON(w, http.StatusOK, phaseResponse{Phase: string(phase)})
}
