package messagedomain

import (
	"strings"
	"testing"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	teamID  = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	otherID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func session(role authdomain.Role, team *uuid.UUID) *authdomain.Session {
	return &authdomain.Session{UserID: uuid.New(), Role: role, TeamID: team}
}

func TestCanPost(t *testing.T) {
	tests := []struct {
		name string
		sess *authdomain.Session
		ch   Channel
		want bool
	}{
		{"player general", session(authdomain.RolePlayer, &teamID), ChannelGeneral, true},
		{"player substitutes", session(authdomain.RolePlayer, &teamID), ChannelSubstitutes, true},
		{"player important", session(authdomain.RolePlayer, &teamID), ChannelImportant, false},
		{"manager important", session(authdomain.RoleManager, &teamID), ChannelImportant, true},
		{"manager of another team", session(authdomain.RoleManager, &otherID), ChannelGeneral, false},
		{"admin without a team", session(authdomain.RoleAdmin, nil), ChannelImportant, true},
		{"no session", nil, ChannelGeneral, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPost(tt.sess, teamID, tt.ch))
		})
	}
}

func TestCanDeleteAndPin(t *testing.T) {
	author := session(authdomain.RolePlayer, &teamID)
	teammate := session(authdomain.RolePlayer, &teamID)
	manager := session(authdomain.RoleManager, &teamID)

	assert.True(t, CanDelete(author, teamID, author.UserID))
	assert.False(t, CanDelete(teammate, teamID, author.UserID))
	assert.True(t, CanDelete(manager, teamID, author.UserID))

	assert.True(t, CanEdit(author, author.UserID))
	assert.False(t, CanEdit(manager, author.UserID))

	assert.False(t, CanPin(author, teamID))
	assert.True(t, CanPin(manager, teamID))
}

func TestNormalizeContent(t *testing.T) {
	got, f := NormalizeContent("  game moved to 7pm  ")
	require.Nil(t, f)
	assert.Equal(t, "game moved to 7pm", got)

	_, f = NormalizeContent("   ")
	require.NotNil(t, f)
	assert.Equal(t, apperr.KindValidation, f.Kind)

	// Length counts characters, not bytes.
	_, f = NormalizeContent(strings.Repeat("⚾", MaxContentLength))
	assert.Nil(t, f)
	_, f = NormalizeContent(strings.Repeat("a", MaxContentLength+1))
	assert.NotNil(t, f)
}

func TestParseChannel(t *testing.T) {
	c, f := ParseChannel("")
	require.Nil(t, f)
	assert.Equal(t, ChannelGeneral, c)

	c, f = ParseChannel("Important")
	require.Nil(t, f)
	assert.Equal(t, ChannelImportant, c)

	_, f = ParseChannel("random")
	assert.NotNil(t, f)
}
