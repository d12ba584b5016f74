package authdomain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasPermission(t *testing.T) {
	all := []Role{RolePlayer, RoleManager, RoleAdmin, RoleCommissioner}
	for i, role := range all {
		for j, required := range all {
			t.Run(role.String()+"_needs_"+required.String(), func(t *testing.T) {
				assert.Equal(t, i >= j, HasPermission(role, required))
			})
		}
	}

	assert.False(t, HasPermission(RoleUnknown, RolePlayer))
	assert.False(t, HasPermission(RoleCommissioner, RoleUnknown))
	assert.False(t, HasPermission(Role(42), RolePlayer))
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "player", want: RolePlayer},
		{in: "manager", want: RoleManager},
		{in: "admin", want: RoleAdmin},
		{in: "commissioner", want: RoleCommissioner},
		{in: "Admin", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_TextRoundTrip(t *testing.T) {
	b, err := RoleManager.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "manager", string(b))

	var r Role
	require.NoError(t, r.UnmarshalText([]byte("commissioner")))
	assert.Equal(t, RoleCommissioner, r)

	_, err = RoleUnknown.MarshalText()
	assert.Error(t, err)
}

func TestSession_CanManageTeam(t *testing.T) {
	home, away, other := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name string
		sess *Session
		want bool
	}{
		{name: "manager of home", sess: &Session{Role: RoleManager, TeamID: &home}, want: true},
		{name: "manager of other team", sess: &Session{Role: RoleManager, TeamID: &other}, want: false},
		{name: "player of home", sess: &Session{Role: RolePlayer, TeamID: &home}, want: false},
		{name: "admin without team", sess: &Session{Role: RoleAdmin}, want: true},
		{name: "commissioner", sess: &Session{Role: RoleCommissioner, TeamID: &other}, want: true},
		{name: "manager without team", sess: &Session{Role: RoleManager}, want: false},
		{name: "nil session", sess: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sess.CanManageTeam(home, away))
		})
	}
}

func TestSession_IsExpired(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s := &Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.IsExpired(now))
	assert.True(t, s.IsExpired(now.Add(2*time.Minute)))
}
