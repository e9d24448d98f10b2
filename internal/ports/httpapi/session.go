package httpapi

import (
	"math/rand"
	"sync"
	"time"

	"rpsarena/internal/app"
	"rpsarena/internal/bot"
	"rpsarena/internal/domain"
)

// session owns one match and the engine driving it.
// Every access to match goes through mu.
type session struct {
	mu       sync.Mutex
	id       string
	expires  time.Time // when the session's ticket stops verifying
	opponent *bot.Agent
	svc      *app.Service
	match    *domain.MatchState
}

func newSession(id string, opponent *bot.Agent, expires time.Time) *session {
	return &session{
		id:       id,
		expires:  expires,
		opponent: opponent,
		svc:      app.NewService(opponent),
		match:    domain.NewMatchState(),
	}
}

// registry maps match ids to live sessions. Expired sessions are dropped
// on every add and count, and never returned by get.
type registry struct {
	mu       sync.RWMutex
	sessions map[string]*session
	now      func() time.Time
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]*session), now: time.Now}
}

func (r *registry) add(s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	r.sessions[s.id] = s
}

func (r *registry) get(id string) (*session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !r.now().Before(s.expires) {
		r.remove(id)
		return nil, false
	}
	return s, true
}

func (r *registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *registry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	return len(r.sessions)
}

// pruneLocked drops expired sessions; r.mu must be held for writing.
func (r *registry) pruneLocked() {
	now := r.now()
	for id, s := range r.sessions {
		if !now.Before(s.expires) {
			delete(r.sessions, id)
		}
	}
}

// OpponentFactory creates the computer opponent for a new session.
type OpponentFactory func() (*bot.Agent, error)

// NewOpponentFactory rotates through the identities at level, giving each
// session its own random source derived from seed (0 means time-seeded).
func NewOpponentFactory(level bot.BotLevel, seed int64) OpponentFactory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	var (
		mu    sync.Mutex
		seeds = rand.New(rand.NewSource(seed))
		next  int
	)
	return func() (*bot.Agent, error) {
		mu.Lock()
		sessionSeed := seeds.Int63()
		index := next
		next++
		mu.Unlock()

		return bot.NewAgent(bot.IdentityForLevel(level, index), rand.New(rand.NewSource(sessionSeed)))
	}
}
