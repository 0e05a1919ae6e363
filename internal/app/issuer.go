package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"livegate/internal/domain"
)

var (
	// ErrMissingField means a required request field was empty. Never
	// retried; callers surface it as a bad request.
	ErrMissingField = errors.New("roomName and identity are required")
	// ErrIdentityTaken means a live credential already exists for the
	// identity. The caller must pick a different one.
	ErrIdentityTaken = errors.New("identity already in use")
)

// TokenRequest is the normalized form of both issuance entry shapes.
type TokenRequest struct {
	Room      domain.RoomName
	Identity  domain.Identity
	Publisher bool
}

// ParseRole maps a request role string onto publish capability. The
// comparison is case-insensitive; anything that is not "publisher" is a
// viewer.
func ParseRole(role string) bool {
	return strings.EqualFold(role, string(domain.RolePublisher))
}

// GrantEncoder is what the issuer needs from the grant package.
type GrantEncoder interface {
	Encode(identity domain.Identity, room domain.RoomName, publisher bool) (string, error)
}

// Issuer validates credential requests, claims the identity and encodes
// the grant. Requests for distinct identities proceed fully in parallel;
// same-identity races are settled by the registry's atomic reserve.
type Issuer struct {
	Registry *Registry
	Encoder  GrantEncoder
	Metrics  *Metrics
}

func NewIssuer(reg *Registry, enc GrantEncoder, m *Metrics) *Issuer {
	return &Issuer{Registry: reg, Encoder: enc, Metrics: m}
}

// Issue returns a signed credential for the request, or one of
// ErrMissingField / ErrIdentityTaken. If encoding fails after the
// identity was claimed, the reservation is rolled back so a failed
// issue never strands the identity.
func (s *Issuer) Issue(req TokenRequest) (string, error) {
	if req.Room == "" || req.Identity == "" {
		s.Metrics.rejected()
		return "", ErrMissingField
	}
	if !s.Registry.Reserve(req.Identity) {
		s.Metrics.conflicted()
		log.Info().Str("module", "app.issuer").
			Str("identity", string(req.Identity)).
			Msg("rejected duplicate identity")
		return "", ErrIdentityTaken
	}

	token, err := s.Encoder.Encode(req.Identity, req.Room, req.Publisher)
	if err != nil {
		s.Registry.Release(req.Identity)
		return "", fmt.Errorf("encode grant: %w", err)
	}

	s.Metrics.issued(req.Publisher)
	log.Info().Str("module", "app.issuer").
		Str("room", string(req.Room)).
		Str("identity", string(req.Identity)).
		Bool("publisher", req.Publisher).
		Msg("issued token")
	return token, nil
}
