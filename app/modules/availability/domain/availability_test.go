package availabilitydomain

import (
	"strings"
	"testing"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		wantErr bool
	}{
		{name: "available", in: Input{Status: StatusAvailable}},
		{name: "maybe with note", in: Input{Status: StatusMaybe, Note: "  late from work  "}},
		{name: "empty status", in: Input{}, wantErr: true},
		{name: "unknown status", in: Input{Status: "probably"}, wantErr: true},
		{name: "long note", in: Input{Status: StatusUnavailable, Note: strings.Repeat("x", MaxNoteLength+1)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.in.Validate()
			if tt.wantErr {
				if assert.NotNil(t, f) {
					assert.Equal(t, apperr.KindValidation, f.Kind)
				}
				return
			}
			assert.Nil(t, f)
		})
	}

	in := Input{Status: StatusMaybe, Note: "  late  "}
	in.Validate()
	assert.Equal(t, "late", in.Note)
}

func TestCanSet(t *testing.T) {
	team := uuid.New()
	other := uuid.New()
	linked := uuid.New()

	self := &authdomain.Session{UserID: linked, Role: authdomain.RolePlayer, TeamID: &team}
	teammate := &authdomain.Session{UserID: uuid.New(), Role: authdomain.RolePlayer, TeamID: &team}
	manager := &authdomain.Session{UserID: uuid.New(), Role: authdomain.RoleManager, TeamID: &team}
	rival := &authdomain.Session{UserID: uuid.New(), Role: authdomain.RoleManager, TeamID: &other}
	admin := &authdomain.Session{UserID: uuid.New(), Role: authdomain.RoleAdmin}

	assert.True(t, CanSet(self, &linked, team))
	assert.False(t, CanSet(teammate, &linked, team))
	assert.True(t, CanSet(manager, &linked, team))
	assert.False(t, CanSet(rival, &linked, team))
	assert.True(t, CanSet(admin, nil, team))
	assert.False(t, CanSet(teammate, nil, team))
	assert.False(t, CanSet(nil, &linked, team))
}

func TestSummarize(t *testing.T) {
	status := func(s Status) *Status { return &s }
	team := uuid.New()

	sum := Summarize(team, []Response{
		{Name: "Zed", Status: status(StatusAvailable)},
		{Name: "Amy"},
		{Name: "Bo", Status: status(StatusUnavailable)},
		{Name: "Cy", Status: status(StatusMaybe)},
		{Name: "Al", Status: status(StatusAvailable)},
	})

	assert.Equal(t, team, sum.TeamID)
	assert.Equal(t, 2, sum.Available)
	assert.Equal(t, 1, sum.Maybe)
	assert.Equal(t, 1, sum.Unavailable)
	assert.Equal(t, 1, sum.NoResponse)

	var names []string
	for _, p := range sum.Players {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Al", "Zed", "Cy", "Bo", "Amy"}, names)
}
