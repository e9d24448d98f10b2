package bot

import (
	"math/rand"
	"testing"

	"rpsarena/internal/domain"
)

func init() {
	if err := LoadIdentities("test_opponents.json"); err != nil {
		panic("Failed to load opponent identities for tests: " + err.Error())
	}
}

func TestLookupIdentity(t *testing.T) {
	tests := []struct {
		id       string
		wantName string
		wantOK   bool
	}{
		{id: "bot-rocky", wantName: "Rocky", wantOK: true},
		{id: "bot-coinflip", wantName: "Coin Flip", wantOK: true},
		{id: fallbackIdentity.ID, wantName: fallbackIdentity.DisplayName, wantOK: true},
		{id: "user-1", wantOK: false},
		{id: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			identity, ok := LookupIdentity(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("LookupIdentity(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
			}
			if ok && identity.DisplayName != tt.wantName {
				t.Fatalf("LookupIdentity(%q) name = %q, want %q", tt.id, identity.DisplayName, tt.wantName)
			}
		})
	}
}

func TestIsBot(t *testing.T) {
	if !IsBot("bot-shears") {
		t.Fatalf("bot-shears should be a bot")
	}
	if !IsBot(fallbackIdentity.ID) {
		t.Fatalf("fallback identity should be a bot")
	}
	if IsBot("user-1") {
		t.Fatalf("user-1 should not be a bot")
	}
}

func TestNewAgent(t *testing.T) {
	identity, ok := LookupIdentity("bot-coinflip")
	if !ok {
		t.Fatalf("bot-coinflip not loaded")
	}
	agent, err := NewAgent(identity, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewAgent failed: %v", err)
	}
	if agent.Level != BotLevelRandom || agent.Name != "Coin Flip" {
		t.Fatalf("unexpected agent: %+v", agent)
	}
	if m := agent.ChooseMove([]domain.Move{domain.Rock}, 0.7); !m.Valid() {
		t.Fatalf("agent returned invalid move %v", m)
	}

	if _, err := NewAgent(OpponentIdentity{ID: "x", Level: "god"}, nil); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestIdentityForLevel(t *testing.T) {
	tests := []struct {
		name  string
		level BotLevel
		index int
		want  string
	}{
		{name: "first adaptive", level: BotLevelAdaptive, index: 0, want: "bot-rocky"},
		{name: "second adaptive", level: BotLevelAdaptive, index: 1, want: "bot-shears"},
		{name: "adaptive wraps", level: BotLevelAdaptive, index: 2, want: "bot-rocky"},
		{name: "only random", level: BotLevelRandom, index: 5, want: "bot-coinflip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IdentityForLevel(tt.level, tt.index); got.ID != tt.want {
				t.Fatalf("IdentityForLevel(%v, %d) = %s, want %s", tt.level, tt.index, got.ID, tt.want)
			}
		})
	}

	fallback := IdentityForLevel(BotLevel(9), 0)
	if fallback.ID != fallbackIdentity.ID || fallback.Level != "level(9)" {
		t.Fatalf("unexpected fallback identity: %+v", fallback)
	}
}
