package announcementdomain

import (
	"strings"
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_Validate(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name      string
		in        Input
		wantField string
	}{
		{"valid", Input{Title: "Rainout", Body: "Field 2 is closed"}, ""},
		{"expiry in future", Input{Title: "t", Body: "b", ExpiresAt: &future}, ""},
		{"missing title", Input{Title: "  ", Body: "b"}, "title"},
		{"long body", Input{Title: "t", Body: strings.Repeat("b", MaxBodyLength+1)}, "body"},
		{"bad priority", Input{Title: "t", Body: "b", Priority: "critical"}, "priority"},
		{"expired", Input{Title: "t", Body: "b", ExpiresAt: &past}, "expiresAt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			in.Normalize()
			f := in.Validate(now)
			if tt.wantField == "" {
				assert.Nil(t, f)
				assert.Equal(t, PriorityNormal, in.Priority)
				return
			}
			require.NotNil(t, f)
			assert.Equal(t, tt.wantField, f.Details["field"])
		})
	}
}

func TestCanPublish(t *testing.T) {
	team := uuid.New()
	other := uuid.New()
	manager := &authdomain.Session{UserID: uuid.New(), Role: authdomain.RoleManager, TeamID: &team}
	admin := &authdomain.Session{UserID: uuid.New(), Role: authdomain.RoleAdmin}
	player := &authdomain.Session{UserID: uuid.New(), Role: authdomain.RolePlayer, TeamID: &team}

	assert.True(t, CanPublish(admin, nil))
	assert.True(t, CanPublish(admin, &other))
	assert.True(t, CanPublish(manager, &team))
	assert.False(t, CanPublish(manager, &other))
	assert.False(t, CanPublish(manager, nil))
	assert.False(t, CanPublish(player, &team))

	assert.True(t, CanView(player, nil))
	assert.True(t, CanView(player, &team))
	assert.False(t, CanView(player, &other))
}
