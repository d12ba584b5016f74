// Package livefeedservice forwards committed game state to NATS so
// scoreboards can follow a game without polling.
package livefeedservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/dugout/app/eventbus"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/events"
	"github.com/Black-And-White-Club/dugout/app/shared/metrics"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// SubjectPrefix is followed by the game ID and ".state".
	SubjectPrefix = "league.games."
	// ScheduleSubject carries ScheduleFrame for new and rescheduled games.
	ScheduleSubject = "league.schedule"
)

// Subject returns the NATS subject carrying a game's state frames.
func Subject(gameID uuid.UUID) string {
	return SubjectPrefix + gameID.String() + ".state"
}

// Publisher is the part of *nats.Conn the relay uses.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Frame is the payload subscribers receive.
type Frame struct {
	GameID     uuid.UUID         `json:"gameId"`
	Action     gamedomain.Action `json:"action"`
	State      gamedomain.Game   `json:"state"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// ScheduleFrame lists games added to or moved on the schedule.
type ScheduleFrame struct {
	Games      []gamedomain.Game `json:"games"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// Relay turns state-change events into frames.
type Relay struct {
	pub     Publisher
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics metrics.RelayMetrics
}

func NewRelay(pub Publisher, logger *slog.Logger, tracer trace.Tracer, m metrics.RelayMetrics) *Relay {
	if m == nil {
		m = metrics.NewNoop()
	}
	return &Relay{pub: pub, logger: logger, tracer: tracer, metrics: m}
}

// Register subscribes the relay to every state-change topic and to the
// schedule topic.
func (r *Relay) Register(bus *eventbus.Bus) {
	for _, topic := range gameevents.StateTopics() {
		bus.Handle("livefeed."+topic, topic, r.HandleStateChanged)
	}
	bus.Handle("livefeed."+gameevents.TopicScheduled, gameevents.TopicScheduled, r.HandleScheduled)
}

// HandleStateChanged publishes the new state. The feed is best effort:
// clients reconcile by polling, so a failed publish is logged and dropped
// rather than redelivered.
func (r *Relay) HandleStateChanged(ctx context.Context, msg *message.Message) error {
	ctx, span := r.tracer.Start(ctx, "Relay.HandleStateChanged")
	defer span.End()

	var evt gameevents.GameStateChangedV1
	if err := eventbus.Decode(msg, &evt); err != nil {
		r.logger.ErrorContext(ctx, "Dropping malformed state event", attr.Error(err))
		r.metrics.RecordRelayed(ctx, "malformed")
		return nil
	}
	span.SetAttributes(attribute.String("game_id", evt.GameID.String()), attribute.String("action", string(evt.Action)))

	frame := Frame{GameID: evt.GameID, Action: evt.Action, State: evt.NewState, OccurredAt: evt.OccurredAt}
	return r.publish(ctx, span, Subject(evt.GameID), frame)
}

// HandleScheduled publishes the games that were added or moved.
func (r *Relay) HandleScheduled(ctx context.Context, msg *message.Message) error {
	ctx, span := r.tracer.Start(ctx, "Relay.HandleScheduled")
	defer span.End()

	var evt gameevents.GameScheduledV1
	if err := eventbus.Decode(msg, &evt); err != nil {
		r.logger.ErrorContext(ctx, "Dropping malformed schedule event", attr.Error(err))
		r.metrics.RecordRelayed(ctx, "malformed")
		return nil
	}
	span.SetAttributes(attribute.Int("games", len(evt.Games)))

	return r.publish(ctx, span, ScheduleSubject, ScheduleFrame{Games: evt.Games, OccurredAt: evt.OccurredAt})
}

func (r *Relay) publish(ctx context.Context, span trace.Span, subject string, frame any) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("failed to marshal frame: %w", err)
	}

	if err := r.pub.Publish(subject, data); err != nil {
		span.RecordError(err)
		r.logger.WarnContext(ctx, "Failed to relay frame",
			attr.String("subject", subject),
			attr.Error(err),
		)
		r.metrics.RecordRelayed(ctx, "error")
		return nil
	}
	r.metrics.RecordRelayed(ctx, "ok")
	r.logger.DebugContext(ctx, "Frame relayed", attr.String("subject", subject))
	return nil
}
