package grant

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"livegate/internal/domain"
)

// Claims is the decoded content of an issued credential.
type Claims struct {
	Identity     domain.Identity
	Room         domain.RoomName
	CanPublish   bool
	CanSubscribe bool
}

type videoGrantClaims struct {
	Room         string `json:"room"`
	RoomJoin     bool   `json:"roomJoin"`
	CanPublish   *bool  `json:"canPublish,omitempty"`
	CanSubscribe *bool  `json:"canSubscribe,omitempty"`
}

type tokenClaims struct {
	Video videoGrantClaims `json:"video"`
	jwt.RegisteredClaims
}

// Decode verifies the token signature and expiry and returns its claims.
// Used by downstream capability checks and by tests; the external
// transport does its own verification.
func (e *Encoder) Decode(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(e.apiSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if !claims.Video.RoomJoin {
		return nil, fmt.Errorf("token carries no room join grant")
	}

	out := &Claims{
		Identity: domain.Identity(claims.Subject),
		Room:     domain.RoomName(claims.Video.Room),
	}
	if claims.Video.CanPublish != nil {
		out.CanPublish = *claims.Video.CanPublish
	}
	if claims.Video.CanSubscribe != nil {
		out.CanSubscribe = *claims.Video.CanSubscribe
	}
	return out, nil
}
