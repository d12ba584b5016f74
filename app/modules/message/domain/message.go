// Package messagedomain holds team chat rules: channels, content limits and
// who may post, edit, delete or pin.
package messagedomain

import (
	"strings"
	"unicode/utf8"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/google/uuid"
)

const MaxContentLength = 2000

// Channel subdivides a team's messages.
type Channel string

const (
	ChannelImportant   Channel = "important"
	ChannelGeneral     Channel = "general"
	ChannelSubstitutes Channel = "substitutes"
)

func (c Channel) IsValid() bool {
	switch c {
	case ChannelImportant, ChannelGeneral, ChannelSubstitutes:
		return true
	}
	return false
}

// ParseChannel defaults an empty value to general.
func ParseChannel(raw string) (Channel, *apperr.Failure) {
	if raw == "" {
		return ChannelGeneral, nil
	}
	c := Channel(strings.ToLower(raw))
	if !c.IsValid() {
		return "", apperr.Validation("channel must be one of important, general, substitutes").WithDetail("field", "channel")
	}
	return c, nil
}

// NormalizeContent trims content and checks its length in characters.
func NormalizeContent(raw string) (string, *apperr.Failure) {
	content := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(content)
	if n == 0 {
		return "", apperr.Validation("message content is required").WithDetail("field", "content")
	}
	if n > MaxContentLength {
		return "", apperr.Validation("message content must be at most 2000 characters").WithDetail("field", "content")
	}
	return content, nil
}

// CanRead reports whether sess may see teamID's messages.
func CanRead(sess *authdomain.Session, teamID uuid.UUID) bool {
	return sess.IsPrivileged() || sess.BelongsTo(teamID)
}

// CanPost applies the channel rule on top of team membership. Only managers
// and above may post to the important channel.
func CanPost(sess *authdomain.Session, teamID uuid.UUID, ch Channel) bool {
	if !CanRead(sess, teamID) {
		return false
	}
	if ch == ChannelImportant {
		return sess.CanManageTeam(teamID)
	}
	return true
}

// CanEdit is author only.
func CanEdit(sess *authdomain.Session, authorID uuid.UUID) bool {
	return sess != nil && sess.UserID == authorID
}

// CanDelete allows the author or anyone who manages the team.
func CanDelete(sess *authdomain.Session, teamID, authorID uuid.UUID) bool {
	return CanEdit(sess, authorID) || sess.CanManageTeam(teamID)
}

// CanPin is limited to the team's managers and league staff.
func CanPin(sess *authdomain.Session, teamID uuid.UUID) bool {
	return sess.CanManageTeam(teamID)
}
