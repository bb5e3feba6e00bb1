package models

import "github.com/golang-jwt/jwt/v5"

// MemberClaims is the access-token payload issued by the auth backend.
// The BFF only reads these claims; issuing and refreshing tokens is owned
// by the external auth service.
type MemberClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// SessionFromClaims builds a Session from decoded claims. Returns nil when
// the claims carry no subject or no expiry, which callers treat as guest.
func SessionFromClaims(claims *MemberClaims) *Session {
	if claims == nil || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil
	}
	role := claims.Role
	if role == "" {
		role = RoleMember
	}
	return &Session{
		MemberID:  claims.Subject,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
}
