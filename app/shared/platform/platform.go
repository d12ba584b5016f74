// Package platform bundles the process-wide dependencies handed to every module.
package platform

import (
	"log/slog"

	"github.com/Black-And-White-Club/dugout/app/eventbus"
	"github.com/Black-And-White-Club/dugout/app/shared/metrics"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/Black-And-White-Club/dugout/config"
	"github.com/jonboulle/clockwork"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Deps is constructed once in app and passed to each module constructor.
type Deps struct {
	Config  *config.Config
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics *metrics.Registry
	DB      *bun.DB
	Bus     *eventbus.Bus
	Clock   clockwork.Clock
}

// Runner builds an operation.Runner tagged with service.
func (d Deps) Runner(service string) operation.Runner {
	var m metrics.OperationMetrics
	if d.Metrics != nil {
		m = d.Metrics
	}
	return operation.NewRunner(service, d.Logger, d.Tracer, m, d.DB)
}
