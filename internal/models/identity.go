package models

import "time"

// Roles carried in access-token claims.
const (
	RoleMember = "MEMBER"
	RoleAdmin  = "ADMIN"
)

// Identity is the caller's resolved identity: either a live member session
// or guest context. An expired, absent or undecodable token always resolves
// to guest, never to an error.
type Identity struct {
	Session *Session
}

// Session holds the decoded claims of a valid member token.
type Session struct {
	MemberID  string
	Role      string
	ExpiresAt time.Time
}

// Guest returns the guest identity.
func Guest() Identity {
	return Identity{}
}

// IsMember reports whether the identity carries a live session.
func (i Identity) IsMember() bool {
	return i.Session != nil
}

// SubjectID returns the member id, or the literal "guest" used on the wire
// for unauthenticated checkouts.
func (i Identity) SubjectID() string {
	if i.Session != nil {
		return i.Session.MemberID
	}
	return "guest"
}

// Valid reports whether the session has not expired at the given instant.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && now.Before(s.ExpiresAt)
}
