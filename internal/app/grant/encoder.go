// Package grant builds and inspects the signed, time-boxed access tokens
// that admit a participant into a LiveKit room.
package grant

import (
	"errors"
	"time"

	"github.com/livekit/protocol/auth"

	"livegate/internal/domain"
)

// DefaultTTL is the baseline credential lifetime. Expiry is the only
// destruction mechanism; there is no revocation path.
const DefaultTTL = 10 * time.Minute

var ErrNoSigningKey = errors.New("livekit api key/secret not configured")

// Encoder signs access tokens for one LiveKit deployment. Stateless;
// safe for concurrent use.
type Encoder struct {
	apiKey    string
	apiSecret string
	ttl       time.Duration
}

// NewEncoder validates the signing key pair once, at startup. A
// misconfigured key is fatal here, never per-request.
func NewEncoder(apiKey, apiSecret string, ttl time.Duration) (*Encoder, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, ErrNoSigningKey
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Encoder{apiKey: apiKey, apiSecret: apiSecret, ttl: ttl}, nil
}

// TTL returns the credential lifetime tokens are issued with.
func (e *Encoder) TTL() time.Duration { return e.ttl }

// Encode produces a token whose subject is identity, valid for exactly
// room, with publish permission iff publisher is set. Viewers always get
// subscribe permission.
func (e *Encoder) Encode(identity domain.Identity, room domain.RoomName, publisher bool) (string, error) {
	grant := &auth.VideoGrant{
		RoomJoin: true,
		Room:     string(room),
	}
	grant.SetCanPublish(publisher)
	grant.SetCanSubscribe(true)

	at := auth.NewAccessToken(e.apiKey, e.apiSecret).
		SetVideoGrant(grant).
		SetIdentity(string(identity)).
		SetValidFor(e.ttl)

	return at.ToJWT()
}
