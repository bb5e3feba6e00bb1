package identity

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"raillo/internal/models"
	"raillo/internal/repositories"
)

// Decoder turns bearer tokens into identities. A claims mirror, when
// configured, short-circuits repeat decodes of the same token.
type Decoder struct {
	secret []byte
	mirror repositories.ClaimsMirror
	now    func() time.Time
}

// NewDecoder creates a Decoder. The mirror may be nil.
func NewDecoder(secret []byte, mirror repositories.ClaimsMirror) *Decoder {
	if len(secret) == 0 {
		panic("jwt secret is required")
	}
	return &Decoder{secret: secret, mirror: mirror, now: time.Now}
}

// Resolve decodes the token into an identity. Absent, malformed and expired
// tokens all resolve to guest.
func (d *Decoder) Resolve(ctx context.Context, token string) models.Identity {
	if token == "" {
		return models.Guest()
	}

	if d.mirror != nil {
		if session, ok := d.mirror.Get(ctx, token); ok {
			if session.Valid(d.now()) {
				return models.Identity{Session: session}
			}
			return models.Guest()
		}
	}

	claims := &models.MemberClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return d.secret, nil
	}, jwt.WithTimeFunc(d.now))
	if err != nil || !parsed.Valid {
		return models.Guest()
	}

	session := models.SessionFromClaims(claims)
	if session == nil || !session.Valid(d.now()) {
		return models.Guest()
	}

	if d.mirror != nil {
		d.mirror.Put(ctx, token, session)
	}
	return models.Identity{Session: session}
}
