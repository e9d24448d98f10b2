package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// OpponentIdentity is the public face of a computer opponent.
type OpponentIdentity struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Level       string `json:"level"` // "random", "adaptive"
}

// fallbackIdentity is used when no identity file was loaded.
var fallbackIdentity = OpponentIdentity{
	ID:          "bot-arena",
	DisplayName: "COMPUTER",
	Level:       BotLevelAdaptive.String(),
}

var (
	identities    []OpponentIdentity
	identityByID  map[string]OpponentIdentity
	identityOnce  sync.Once
	identityError error
)

// LoadIdentities loads the opponent profiles from the given path.
func LoadIdentities(path string) error {
	identityOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			identityError = fmt.Errorf("failed to read opponent identities: %w", err)
			return
		}

		var loaded []OpponentIdentity
		if err := json.Unmarshal(data, &loaded); err != nil {
			identityError = fmt.Errorf("failed to unmarshal opponent identities: %w", err)
			return
		}

		byID := make(map[string]OpponentIdentity, len(loaded))
		for _, identity := range loaded {
			if identity.ID == "" {
				continue
			}
			if _, err := ParseLevel(identity.Level); err != nil {
				identityError = fmt.Errorf("opponent %s: %w", identity.ID, err)
				return
			}
			byID[identity.ID] = identity
			identities = append(identities, identity)
		}
		identityByID = byID
	})
	return identityError
}

// LookupIdentity returns the identity registered under id.
func LookupIdentity(id string) (OpponentIdentity, bool) {
	if id == fallbackIdentity.ID {
		return fallbackIdentity, true
	}
	identity, ok := identityByID[id]
	return identity, ok
}

// IsBot reports whether the given id belongs to a computer opponent.
func IsBot(id string) bool {
	_, ok := LookupIdentity(id)
	return ok
}

// IdentityForLevel returns the index-th identity (mod matches) playing at level.
// When none is registered the fallback identity is returned at that level.
func IdentityForLevel(level BotLevel, index int) OpponentIdentity {
	var matches []OpponentIdentity
	for _, identity := range identities {
		if l, err := ParseLevel(identity.Level); err == nil && l == level {
			matches = append(matches, identity)
		}
	}
	if len(matches) == 0 {
		identity := fallbackIdentity
		identity.Level = level.String()
		return identity
	}
	if index < 0 {
		index = -index
	}
	return matches[index%len(matches)]
}
