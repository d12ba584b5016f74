// Package availabilitydomain holds attendance responses and the per-team
// roll-up managers use to set a lineup.
package availabilitydomain

import (
	"sort"
	"strings"
	"unicode/utf8"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/google/uuid"
)

const MaxNoteLength = 280

type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusMaybe       Status = "maybe"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusUnavailable, StatusMaybe:
		return true
	}
	return false
}

// Input is a player's response for one game.
type Input struct {
	Status Status `json:"status"`
	Note   string `json:"note"`
}

// Validate trims the note and checks the status.
func (in *Input) Validate() *apperr.Failure {
	in.Note = strings.TrimSpace(in.Note)
	if !in.Status.IsValid() {
		return apperr.Validation("status must be one of available, unavailable, maybe").WithDetail("field", "status")
	}
	if utf8.RuneCountInString(in.Note) > MaxNoteLength {
		return apperr.Validation("note must be at most 280 characters").WithDetail("field", "note")
	}
	return nil
}

// CanSet reports whether sess may answer for a player. The player's linked
// user answers for themselves; managers answer for their roster.
func CanSet(sess *authdomain.Session, playerUserID *uuid.UUID, teamID uuid.UUID) bool {
	if sess == nil {
		return false
	}
	if playerUserID != nil && *playerUserID == sess.UserID {
		return true
	}
	return sess.CanManageTeam(teamID)
}

// Response is one rostered player's answer. A nil Status means no reply.
type Response struct {
	PlayerID uuid.UUID `json:"playerId"`
	Name     string    `json:"name"`
	Status   *Status   `json:"status,omitempty"`
	Note     string    `json:"note,omitempty"`
}

// TeamSummary counts responses for one team.
type TeamSummary struct {
	TeamID      uuid.UUID  `json:"teamId"`
	Available   int        `json:"available"`
	Unavailable int        `json:"unavailable"`
	Maybe       int        `json:"maybe"`
	NoResponse  int        `json:"noResponse"`
	Players     []Response `json:"players"`
}

// Summarize tallies responses. Players are listed available first, then
// maybe, unavailable and unanswered, by name within each group.
func Summarize(teamID uuid.UUID, responses []Response) TeamSummary {
	sum := TeamSummary{TeamID: teamID, Players: append([]Response(nil), responses...)}
	for _, r := range sum.Players {
		switch {
		case r.Status == nil:
			sum.NoResponse++
		case *r.Status == StatusAvailable:
			sum.Available++
		case *r.Status == StatusMaybe:
			sum.Maybe++
		case *r.Status == StatusUnavailable:
			sum.Unavailable++
		}
	}
	sort.SliceStable(sum.Players, func(i, j int) bool {
		ri, rj := rank(sum.Players[i].Status), rank(sum.Players[j].Status)
		if ri != rj {
			return ri < rj
		}
		return sum.Players[i].Name < sum.Players[j].Name
	})
	return sum
}

func rank(s *Status) int {
	if s == nil {
		return 3
	}
	switch *s {
	case StatusAvailable:
		return 0
	case StatusMaybe:
		return 1
	}
	return 2
}
