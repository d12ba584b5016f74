package livefeedintegrationtests

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	gameservice "github.com/Black-And-White-Club/dugout/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	livefeedservice "github.com/Black-And-White-Club/dugout/app/modules/livefeed/application"
	"github.com/Black-And-White-Club/dugout/integration_tests/testutils"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayPublishesEveryTransition(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, testutils.CleanupDatabase(ctx, testEnv.DB))

	league, err := testutils.SeedLeague(ctx, testEnv.DB, 7, time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	game := league.Games[0]

	a := testEnv.StartApp(t, testEnv.Config())
	require.True(t, a.Modules.LiveFeed.Enabled())

	nc, err := nats.Connect(testEnv.NatsURL)
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	frames := make(chan *nats.Msg, 8)
	sub, err := nc.ChanSubscribe(livefeedservice.Subject(game.ID), frames)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Unsubscribe() })
	require.NoError(t, nc.Flush())

	manager := league.Managers[game.HomeTeamID]
	sess := &authdomain.Session{UserID: manager.ID, Role: authdomain.RoleManager, TeamID: manager.TeamID}
	svc := a.Modules.Game.Service()

	_, err = svc.StartGame(ctx, sess, game.ID, gameservice.StartRequest{})
	require.NoError(t, err)
	_, err = svc.RecordScore(ctx, sess, game.ID, gameservice.ScoreRequest{Runs: 3})
	require.NoError(t, err)

	// Each action travels on its own topic, so frames may arrive in either order.
	got := map[gamedomain.Action]livefeedservice.Frame{}
	for len(got) < 2 {
		select {
		case msg := <-frames:
			var frame livefeedservice.Frame
			require.NoError(t, json.Unmarshal(msg.Data, &frame))
			assert.Equal(t, game.ID, frame.GameID)
			got[frame.Action] = frame
		case <-time.After(10 * time.Second):
			t.Fatalf("received %d of 2 frames", len(got))
		}
	}

	assert.Equal(t, gamedomain.StatusInProgress, got[gamedomain.ActionStart].State.Status)
	assert.Equal(t, 0, got[gamedomain.ActionStart].State.AwayScore)
	assert.Equal(t, 3, got[gamedomain.ActionScore].State.AwayScore)
}
