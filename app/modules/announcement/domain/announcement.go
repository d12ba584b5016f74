// Package announcementdomain holds notice priorities, input validation and
// the scope rule for who may publish where.
package announcementdomain

import (
	"strings"
	"time"
	"unicode/utf8"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/google/uuid"
)

const (
	MaxTitleLength = 200
	MaxBodyLength  = 5000
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Input is a create or update request. A nil TeamID is league-wide.
type Input struct {
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Priority  Priority   `json:"priority"`
	Pinned    bool       `json:"pinned"`
	ExpiresAt *time.Time `json:"expiresAt"`
	TeamID    *uuid.UUID `json:"teamId"`
}

// Normalize trims text and defaults the priority.
func (in *Input) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	if in.Priority == "" {
		in.Priority = PriorityNormal
	}
}

// Validate checks lengths, priority and that any expiry is after now.
func (in Input) Validate(now time.Time) *apperr.Failure {
	switch n := utf8.RuneCountInString(in.Title); {
	case n == 0:
		return field("title", "title is required")
	case n > MaxTitleLength:
		return field("title", "title must be at most 200 characters")
	}
	switch n := utf8.RuneCountInString(in.Body); {
	case n == 0:
		return field("body", "body is required")
	case n > MaxBodyLength:
		return field("body", "body must be at most 5000 characters")
	}
	if !in.Priority.IsValid() {
		return field("priority", "priority must be one of low, normal, high, urgent")
	}
	if in.ExpiresAt != nil && !in.ExpiresAt.After(now) {
		return field("expiresAt", "expiresAt must be in the future")
	}
	return nil
}

func field(name, msg string) *apperr.Failure {
	return apperr.Validation(msg).WithDetail("field", name)
}

// CanPublish reports whether sess may publish to the scope. Admins may
// publish anywhere; managers only to their own team.
func CanPublish(sess *authdomain.Session, teamID *uuid.UUID) bool {
	if sess.IsPrivileged() {
		return true
	}
	return teamID != nil && sess.CanManageTeam(*teamID)
}

// CanView reports whether sess may read a notice in the scope.
func CanView(sess *authdomain.Session, teamID *uuid.UUID) bool {
	return teamID == nil || sess.IsPrivileged() || sess.BelongsTo(*teamID)
}
