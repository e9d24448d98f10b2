package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"rpsarena/internal/app"
	"rpsarena/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes match sessions over HTTP.
type Server struct {
	game      config.GameConfig
	tickets   *app.TicketService
	opponents OpponentFactory
	sessions  *registry
	logger    *log.Logger
}

// NewServer builds a Server; a nil logger uses the standard logger.
func NewServer(game config.GameConfig, tickets *app.TicketService, opponents OpponentFactory, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		game:      game,
		tickets:   tickets,
		opponents: opponents,
		sessions:  newRegistry(),
		logger:    logger,
	}
}

// Routes returns the HTTP handler for the session API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: s.logger, NoColor: true}))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/config", s.handleConfig)
	r.Post("/matches", s.handleCreateMatch)

	r.Route("/matches/{matchID}", func(r chi.Router) {
		r.Use(s.requireTicket)
		r.Get("/", s.handleGetMatch)
		r.Delete("/", s.handleDeleteMatch)
		r.Post("/start", s.handleStartMatch)
		r.Post("/rounds", s.handlePlayRound)
		r.Post("/resume", s.handleResume)
		r.Get("/summary", s.handleSummary)
	})
	return r
}

type sessionKey struct{}

// requireTicket checks the bearer ticket against the path's match id and
// attaches the session to the request context.
func (s *Server) requireTicket(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		matchID := chi.URLParam(r, "matchID")

		ticket, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || ticket == "" {
			writeError(w, http.StatusUnauthorized, "missing match ticket", "")
			return
		}
		if err := s.tickets.Verify(ticket, matchID); err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, app.ErrTicketMismatch) {
				status = http.StatusForbidden
			}
			writeError(w, status, err.Error(), "")
			return
		}

		sess, ok := s.sessions.get(matchID)
		if !ok {
			writeError(w, http.StatusNotFound, "match not found", "")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

func sessionFrom(r *http.Request) *session {
	return r.Context().Value(sessionKey{}).(*session)
}

// decodeBody reads a JSON body into v; an empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// rounds resolves the requested match length against the offered options.
func (s *Server) rounds(req roundsRequest) (int, error) {
	rounds := s.game.DefaultRounds
	if req.Rounds != nil {
		rounds = *req.Rounds
	}
	if err := app.CheckRoundsOption(s.game.RoundsOptions, rounds); err != nil {
		return 0, err
	}
	return rounds, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, phase string) {
	writeJSON(w, status, errorResponse{Error: msg, Phase: phase})
}
