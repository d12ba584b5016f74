package gameevents

import (
	"context"
	"testing"
	"time"

	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBus struct {
	topics   []string
	payloads []any
}

func (b *recordingBus) Publish(_ context.Context, topic string, payload any) error {
	b.topics = append(b.topics, topic)
	b.payloads = append(b.payloads, payload)
	return nil
}

func TestPublisher_PublishTransition(t *testing.T) {
	bus := &recordingBus{}
	now := time.Date(2026, 6, 20, 23, 0, 0, 0, time.UTC)
	p := NewPublisher(bus, clockwork.NewFakeClockAt(now))

	gameID, actor := uuid.New(), uuid.New()
	tr := gamedomain.Transition{
		Action:        gamedomain.ActionScore,
		PreviousState: gamedomain.Game{ID: gameID},
		NewState:      gamedomain.Game{ID: gameID, AwayScore: 2},
	}
	require.NoError(t, p.PublishTransition(context.Background(), actor, tr))

	require.Equal(t, []string{"game.score"}, bus.topics)
	evt, ok := bus.payloads[0].(GameStateChangedV1)
	require.True(t, ok)
	assert.Equal(t, gameID, evt.GameID)
	assert.Equal(t, actor, evt.ActorID)
	assert.Equal(t, 2, evt.NewState.AwayScore)
	assert.Equal(t, now, evt.OccurredAt)
}

func TestStateTopics(t *testing.T) {
	assert.Equal(t, []string{"game.start", "game.score", "game.out", "game.advance", "game.end"}, StateTopics())
}
