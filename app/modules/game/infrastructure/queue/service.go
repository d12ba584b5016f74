package gamequeue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/dugout/app/shared/metrics"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"
)

const (
	queueName   = "games"
	serviceName = "river"
	// minLead skips reminders that would fire almost immediately.
	minLead = 5 * time.Second
)

// QueueService schedules and cancels game jobs.
type QueueService interface {
	// ScheduleReminder enqueues a reminder at remindAt. Times already in the
	// past are skipped without error.
	ScheduleReminder(ctx context.Context, gameID uuid.UUID, remindAt time.Time) error
	// CancelGameJobs cancels pending jobs for a game.
	CancelGameJobs(ctx context.Context, gameID uuid.UUID) error
	// GetScheduledJobs lists every reminder job for a game, in any state.
	GetScheduledJobs(ctx context.Context, gameID uuid.UUID) ([]JobInfo, error)
	// HealthCheck verifies the River pool and job table are reachable.
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service runs game jobs on River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      *bun.DB
	metrics metrics.OperationMetrics
	clock   clockwork.Clock
}

// NewService connects a pgx pool for River and registers the game workers.
func NewService(ctx context.Context, bunDB *bun.DB, logger *slog.Logger, dsn string, m metrics.OperationMetrics, clock clockwork.Clock, worker *GameReminderWorker) (*Service, error) {
	logger = logger.With(attr.String("component", "river_queue"))
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	m.RecordOperationAttempt(ctx, "initialize_service", serviceName)

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		m.RecordOperationFailure(ctx, "initialize_service", serviceName)
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		m.RecordOperationFailure(ctx, "initialize_service", serviceName)
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		m.RecordOperationFailure(ctx, "initialize_service", serviceName)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, worker)

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			queueName:          {MaxWorkers: 10},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		m.RecordOperationFailure(ctx, "initialize_service", serviceName)
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	m.RecordOperationSuccess(ctx, "initialize_service", serviceName)
	logger.Info("Game queue service initialized")
	return &Service{client: client, pool: pool, logger: logger, db: bunDB, metrics: m, clock: clock}, nil
}

func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.Info("Game queue service started")
	return nil
}

func (s *Service) Stop(ctx context.Context) error {
	defer s.pool.Close()
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.logger.Info("Game queue service stopped")
	return nil
}

func (s *Service) ScheduleReminder(ctx context.Context, gameID uuid.UUID, remindAt time.Time) error {
	start := s.clock.Now()
	s.metrics.RecordOperationAttempt(ctx, "schedule_game_reminder", serviceName)
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "schedule_game_reminder", serviceName, s.clock.Since(start))
	}()

	logger := s.logger.With(attr.String("game_id", gameID.String()), attr.Time("remind_at", remindAt))
	if remindAt.Before(start.Add(minLead)) {
		logger.Info("Reminder time has passed, skipping")
		s.metrics.RecordOperationSuccess(ctx, "schedule_game_reminder", serviceName)
		return nil
	}

	res, err := s.client.Insert(ctx, reminderArgs(gameID, remindAt), &river.InsertOpts{
		Queue:       queueName,
		ScheduledAt: remindAt,
		UniqueOpts:  river.UniqueOpts{ByArgs: true},
	})
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "schedule_game_reminder", serviceName)
		return fmt.Errorf("failed to schedule game reminder: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "schedule_game_reminder", serviceName)
	logger.Info("Game reminder scheduled", attr.Int64("job_id", res.Job.ID))
	return nil
}

func reminderArgs(gameID uuid.UUID, remindAt time.Time) GameReminderJob {
	return GameReminderJob{GameID: gameID.String(), RemindAt: remindAt.UTC().Truncate(time.Second)}
}

type riverJobRow struct {
	ID          int64          `bun:"id"`
	Kind        string         `bun:"kind"`
	State       string         `bun:"state"`
	Args        map[string]any `bun:"args,type:jsonb"`
	ScheduledAt *time.Time     `bun:"scheduled_at"`
	Attempt     int16          `bun:"attempt"`
	MaxAttempts int16          `bun:"max_attempts"`
}

func (s *Service) pendingJobs(ctx context.Context, gameID uuid.UUID, pendingOnly bool) ([]riverJobRow, error) {
	var jobs []riverJobRow
	q := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "args", "scheduled_at", "attempt", "max_attempts").
		Where("kind = ?", GameReminderJob{}.Kind()).
		Where("args->>'game_id' = ?", gameID.String())
	if pendingOnly {
		q = q.Where("state IN (?, ?)", "available", "scheduled")
	}
	if err := q.Order("scheduled_at ASC").Scan(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to query game jobs: %w", err)
	}
	return jobs, nil
}

func (s *Service) CancelGameJobs(ctx context.Context, gameID uuid.UUID) error {
	s.metrics.RecordOperationAttempt(ctx, "cancel_game_jobs", serviceName)

	jobs, err := s.pendingJobs(ctx, gameID, true)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "cancel_game_jobs", serviceName)
		return err
	}

	cancelled := 0
	for _, job := range jobs {
		if _, err := s.client.JobCancel(ctx, job.ID); err != nil {
			s.logger.Warn("Failed to cancel job", attr.Int64("job_id", job.ID), attr.Error(err))
			continue
		}
		cancelled++
	}
	if cancelled != len(jobs) {
		s.metrics.RecordOperationFailure(ctx, "cancel_game_jobs", serviceName)
		return fmt.Errorf("cancelled %d of %d jobs for game %s", cancelled, len(jobs), gameID)
	}
	s.metrics.RecordOperationSuccess(ctx, "cancel_game_jobs", serviceName)
	return nil
}

func (s *Service) GetScheduledJobs(ctx context.Context, gameID uuid.UUID) ([]JobInfo, error) {
	jobs, err := s.pendingJobs(ctx, gameID, false)
	if err != nil {
		return nil, err
	}
	out := make([]JobInfo, len(jobs))
	for i, job := range jobs {
		scheduledAt := ""
		if job.ScheduledAt != nil {
			scheduledAt = job.ScheduledAt.Format(time.RFC3339)
		}
		out[i] = JobInfo{
			ID:          job.ID,
			Kind:        job.Kind,
			GameID:      gameID.String(),
			State:       job.State,
			ScheduledAt: scheduledAt,
			Attempt:     int(job.Attempt),
			MaxAttempts: int(job.MaxAttempts),
		}
	}
	return out, nil
}

func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("queue pool ping failed: %w", err)
	}
	if _, err := s.db.NewSelect().Table("river_job").Limit(1).Exists(ctx); err != nil {
		return fmt.Errorf("queue job table check failed: %w", err)
	}
	return nil
}
