package authdomain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is the authenticated caller. Handlers receive it explicitly.
type Session struct {
	UserID    uuid.UUID
	Role      Role
	TeamID    *uuid.UUID
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired checks if the session has expired.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Can reports whether the session's role meets required.
func (s *Session) Can(required Role) bool {
	return s != nil && HasPermission(s.Role, required)
}

// IsPrivileged reports whether the caller may act on any team's behalf.
func (s *Session) IsPrivileged() bool {
	return s.Can(RoleAdmin)
}

// BelongsTo reports whether the caller is on one of the given teams.
func (s *Session) BelongsTo(teamIDs ...uuid.UUID) bool {
	if s == nil || s.TeamID == nil {
		return false
	}
	for _, id := range teamIDs {
		if *s.TeamID == id {
			return true
		}
	}
	return false
}

// CanManageTeam reports whether the caller is admin+ or a manager of one of teamIDs.
func (s *Session) CanManageTeam(teamIDs ...uuid.UUID) bool {
	if s.IsPrivileged() {
		return true
	}
	return s.Can(RoleManager) && s.BelongsTo(teamIDs...)
}

type sessionKey struct{}

// WithSession returns a context carrying sess.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFrom returns the session attached by the auth middleware, if any.
func SessionFrom(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*Session)
	return sess, ok && sess != nil
}
