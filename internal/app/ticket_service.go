package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/google/uuid"
)

// TicketService issues and verifies match tickets: signed tokens that bind a
// remote client to the one match session it created.
type TicketService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

const defaultTicketIssuer = "rpsarena"

var (
	ErrTicketInvalid  = errors.New("match ticket is invalid")
	ErrTicketMismatch = errors.New("match ticket belongs to another match")
)

// NewTicketService builds a TicketService. The secret is required; a
// non-positive ttl falls back to one hour.
func NewTicketService(secret, issuer string, ttl time.Duration) (*TicketService, error) {
	if secret == "" {
		return nil, fmt.Errorf("ticket secret is required")
	}
	if issuer == "" {
		issuer = defaultTicketIssuer
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TicketService{secret: []byte(secret), issuer: issuer, ttl: ttl}, nil
}

// TTL is how long an issued ticket stays valid.
func (s *TicketService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a ticket for matchID.
func (s *TicketService) Issue(matchID string) (string, error) {
	if matchID == "" {
		return "", fmt.Errorf("match id is required")
	}
	now := time.Now()
	claims := jwt.StandardClaims{
		Id:        uuid.NewString(),
		Issuer:    s.issuer,
		Subject:   matchID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the signature, expiry and issuer of ticket and that it was
// issued for matchID.
func (s *TicketService) Verify(ticket, matchID string) error {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(ticket, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTicketInvalid, err)
	}
	if !token.Valid || !claims.VerifyIssuer(s.issuer, true) {
		return ErrTicketInvalid
	}
	if claims.Subject != matchID {
		return ErrTicketMismatch
	}
	return nil
}
