package scoreclient

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// DefaultPollInterval is how often Run asks the server for the game.
const DefaultPollInterval = 5 * time.Second

// API is the server surface a Panel talks to.
type API interface {
	Game(ctx context.Context, gameID uuid.UUID) (gamedomain.Game, error)
	Send(ctx context.Context, gameID uuid.UUID, cmd gamedomain.Command) (gamedomain.Transition, error)
}

// Config tunes a Panel.
type Config struct {
	Rules        gamedomain.Rules
	PollInterval time.Duration
	// OnChange is called with every state the panel shows, optimistic or
	// confirmed. It runs without the panel lock held.
	OnChange func(gamedomain.Game)
}

// Panel holds one game's state on the scorer's device.
type Panel struct {
	api    API
	config Config
	clock  clockwork.Clock
	logger *slog.Logger

	// send serializes scoring calls so a rollback never discards another
	// call's optimistic change.
	send sync.Mutex

	mu    sync.Mutex
	state gamedomain.Game
}

// NewPanel starts from an already fetched game.
func NewPanel(api API, initial gamedomain.Game, config Config, clock clockwork.Clock, logger *slog.Logger) *Panel {
	if config.Rules == (gamedomain.Rules{}) {
		config.Rules = gamedomain.DefaultRules
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Panel{api: api, config: config, clock: clock, logger: logger, state: initial.Clone()}
}

// State returns a copy of the state currently shown.
func (p *Panel) State() gamedomain.Game {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Clone()
}

func (p *Panel) Start(ctx context.Context, target gamedomain.Status) error {
	return p.Do(ctx, gamedomain.Command{Action: gamedomain.ActionStart, StartStatus: target})
}

func (p *Panel) Score(ctx context.Context, runs int) error {
	return p.Do(ctx, gamedomain.Command{Action: gamedomain.ActionScore, Runs: runs})
}

func (p *Panel) Out(ctx context.Context, count int) error {
	return p.Do(ctx, gamedomain.Command{Action: gamedomain.ActionOut, Outs: count})
}

func (p *Panel) Advance(ctx context.Context, opts gamedomain.AdvanceOptions) error {
	return p.Do(ctx, gamedomain.Command{Action: gamedomain.ActionAdvance, Advance: opts})
}

func (p *Panel) End(ctx context.Context, opts gamedomain.EndOptions) error {
	return p.Do(ctx, gamedomain.Command{Action: gamedomain.ActionEnd, End: opts})
}

// Do applies cmd locally, sends it, and then either adopts the server's new
// state or restores the state from before the call. A command the local
// rules refuse is never sent.
func (p *Panel) Do(ctx context.Context, cmd gamedomain.Command) error {
	p.send.Lock()
	defer p.send.Unlock()

	p.mu.Lock()
	before := p.state.Clone()
	tr, f := gamedomain.Apply(before, cmd, p.config.Rules, p.clock.Now().UTC())
	if f != nil {
		p.mu.Unlock()
		return f
	}
	p.state = tr.NewState
	p.mu.Unlock()
	p.notify(tr.NewState)

	version := before.Version
	cmd.ExpectedVersion = &version
	confirmed, err := p.api.Send(ctx, before.ID, cmd)

	p.mu.Lock()
	if err != nil {
		p.state = before
	} else {
		p.state = confirmed.NewState.Clone()
	}
	shown := p.state.Clone()
	p.mu.Unlock()
	p.notify(shown)

	if err != nil {
		p.logger.WarnContext(ctx, "Scoring call rolled back",
			attr.String("game_id", before.ID.String()),
			attr.String("action", string(cmd.Action)),
			attr.Error(err),
		)
		// A stale version means someone else scored; pick up their state.
		if apperr.IsKind(err, apperr.KindConflict) {
			p.refresh(ctx)
		}
		return err
	}
	return nil
}

// Run polls the server until ctx is cancelled or the game reaches a
// terminal status. Polls are skipped while a scoring call is in flight.
func (p *Panel) Run(ctx context.Context) error {
	ticker := p.clock.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		if p.State().Status.IsTerminal() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			if !p.send.TryLock() {
				continue
			}
			p.refresh(ctx)
			p.send.Unlock()
		}
	}
}

// refresh adopts the server state when it is newer than the local one.
func (p *Panel) refresh(ctx context.Context) {
	p.mu.Lock()
	id := p.state.ID
	p.mu.Unlock()

	server, err := p.api.Game(ctx, id)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			p.logger.WarnContext(ctx, "Failed to refresh game", attr.String("game_id", id.String()), attr.Error(err))
		}
		return
	}

	p.mu.Lock()
	adopt := server.Version > p.state.Version
	if adopt {
		p.state = server.Clone()
	}
	p.mu.Unlock()
	if adopt {
		p.notify(server)
	}
}

func (p *Panel) notify(g gamedomain.Game) {
	if p.config.OnChange != nil {
		p.config.OnChange(g.Clone())
	}
}
