// Package gameevents defines the game topics and publishes scoring transitions.
package gameevents

import (
	"context"
	"time"

	"github.com/Black-And-White-Club/dugout/app/eventbus"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const (
	TopicPrefix = "game."
	// TopicScheduled carries GameScheduledV1 for newly created games.
	TopicScheduled = "game.scheduled"
)

// Topic returns the topic for a scoring action, e.g. "game.score".
func Topic(action gamedomain.Action) string {
	return TopicPrefix + string(action)
}

// StateTopics lists every topic that carries GameStateChangedV1.
func StateTopics() []string {
	actions := []gamedomain.Action{
		gamedomain.ActionStart,
		gamedomain.ActionScore,
		gamedomain.ActionOut,
		gamedomain.ActionAdvance,
		gamedomain.ActionEnd,
	}
	topics := make([]string, len(actions))
	for i, a := range actions {
		topics[i] = Topic(a)
	}
	return topics
}

// GameStateChangedV1 is published after every committed scoring transition.
type GameStateChangedV1 struct {
	GameID        uuid.UUID         `json:"gameId"`
	Action        gamedomain.Action `json:"action"`
	PreviousState gamedomain.Game   `json:"previousState"`
	NewState      gamedomain.Game   `json:"newState"`
	ActorID       uuid.UUID         `json:"actorId"`
	OccurredAt    time.Time         `json:"occurredAt"`
}

// GameScheduledV1 is published when games are added to the schedule.
type GameScheduledV1 struct {
	Games      []gamedomain.Game `json:"games"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// Publisher emits game events on the bus.
type Publisher struct {
	bus   eventbus.Publisher
	clock clockwork.Clock
}

func NewPublisher(bus eventbus.Publisher, clock clockwork.Clock) *Publisher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Publisher{bus: bus, clock: clock}
}

func (p *Publisher) PublishTransition(ctx context.Context, actorID uuid.UUID, t gamedomain.Transition) error {
	return p.bus.Publish(ctx, Topic(t.Action), GameStateChangedV1{
		GameID:        t.NewState.ID,
		Action:        t.Action,
		PreviousState: t.PreviousState,
		NewState:      t.NewState,
		ActorID:       actorID,
		OccurredAt:    p.clock.Now().UTC(),
	})
}

func (p *Publisher) PublishScheduled(ctx context.Context, games []gamedomain.Game) error {
	return p.bus.Publish(ctx, TopicScheduled, GameScheduledV1{Games: games, OccurredAt: p.clock.Now().UTC()})
}
