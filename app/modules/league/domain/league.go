package leaguedomain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Position is a fielding position.
type Position string

const (
	PositionPitcher     Position = "P"
	PositionCatcher     Position = "C"
	PositionFirstBase   Position = "1B"
	PositionSecondBase  Position = "2B"
	PositionThirdBase   Position = "3B"
	PositionShortstop   Position = "SS"
	PositionLeftField   Position = "LF"
	PositionCenterField Position = "CF"
	PositionRightField  Position = "RF"
	PositionDesignated  Position = "DH"
	PositionUtility     Position = "UTIL"
)

func (p Position) IsValid() bool {
	switch p {
	case PositionPitcher, PositionCatcher, PositionFirstBase, PositionSecondBase, PositionThirdBase,
		PositionShortstop, PositionLeftField, PositionCenterField, PositionRightField,
		PositionDesignated, PositionUtility:
		return true
	}
	return false
}

// Hand is a batting or throwing side. Switch only applies to batting.
type Hand string

const (
	HandLeft   Hand = "L"
	HandRight  Hand = "R"
	HandSwitch Hand = "S"
)

func (h Hand) IsValid() bool {
	return h == HandLeft || h == HandRight || h == HandSwitch
}

// PlayerStatus is a roster status.
type PlayerStatus string

const (
	PlayerActive   PlayerStatus = "active"
	PlayerInactive PlayerStatus = "inactive"
	PlayerInjured  PlayerStatus = "injured"
)

func (s PlayerStatus) IsValid() bool {
	return s == PlayerActive || s == PlayerInactive || s == PlayerInjured
}

const (
	MaxJerseyNumber = 99
	maxNameLength   = 80
)

var (
	abbreviationPattern = regexp.MustCompile(`^[A-Z]{2,4}$`)
	colorPattern        = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f, msg))
	}
	return strings.Join(parts, "; ")
}

type validator struct {
	fields map[string]string
}

func (v *validator) check(ok bool, field, msg string) {
	if ok {
		return
	}
	if v.fields == nil {
		v.fields = map[string]string{}
	}
	if _, exists := v.fields[field]; !exists {
		v.fields[field] = msg
	}
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

func validName(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && len(s) <= maxNameLength
}

// SeasonInput is the writable part of a season.
type SeasonInput struct {
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Active    bool      `json:"active"`
}

func (in SeasonInput) Validate() error {
	var v validator
	v.check(validName(in.Name), "name", "must be 1-80 characters")
	v.check(in.Year >= 1900 && in.Year <= 2200, "year", "must be between 1900 and 2200")
	v.check(!in.StartDate.IsZero(), "startDate", "is required")
	v.check(!in.EndDate.IsZero(), "endDate", "is required")
	v.check(in.EndDate.IsZero() || !in.EndDate.Before(in.StartDate), "endDate", "must not be before startDate")
	return v.err()
}

// TeamInput is the writable part of a team.
type TeamInput struct {
	Name          string     `json:"name"`
	Abbreviation  string     `json:"abbreviation"`
	Color         *string    `json:"color,omitempty"`
	ManagerUserID *uuid.UUID `json:"managerUserId,omitempty"`
}

func (in TeamInput) Validate() error {
	var v validator
	v.check(validName(in.Name), "name", "must be 1-80 characters")
	v.check(abbreviationPattern.MatchString(in.Abbreviation), "abbreviation", "must be 2-4 uppercase letters")
	v.check(in.Color == nil || colorPattern.MatchString(*in.Color), "color", "must be a #RRGGBB hex color")
	return v.err()
}

// PlayerInput is the writable part of a player.
type PlayerInput struct {
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	JerseyNumber *int         `json:"jerseyNumber,omitempty"`
	Position     Position     `json:"position"`
	Bats         Hand         `json:"bats"`
	Throws       Hand         `json:"throws"`
	Status       PlayerStatus `json:"status"`
	UserID       *uuid.UUID   `json:"userId,omitempty"`
}

// Normalize fills defaults for omitted optional fields.
func (in *PlayerInput) Normalize() {
	if in.Position == "" {
		in.Position = PositionUtility
	}
	if in.Bats == "" {
		in.Bats = HandRight
	}
	if in.Throws == "" {
		in.Throws = HandRight
	}
	if in.Status == "" {
		in.Status = PlayerActive
	}
}

func (in PlayerInput) Validate() error {
	var v validator
	v.check(validName(in.FirstName), "firstName", "must be 1-80 characters")
	v.check(validName(in.LastName), "lastName", "must be 1-80 characters")
	v.check(in.JerseyNumber == nil || (*in.JerseyNumber >= 0 && *in.JerseyNumber <= MaxJerseyNumber), "jerseyNumber", "must be between 0 and 99")
	v.check(in.Position.IsValid(), "position", "is not a known position")
	v.check(in.Bats.IsValid(), "bats", "must be L, R or S")
	v.check(in.Throws == HandLeft || in.Throws == HandRight, "throws", "must be L or R")
	v.check(in.Status.IsValid(), "status", "must be active, inactive or injured")
	return v.err()
}
