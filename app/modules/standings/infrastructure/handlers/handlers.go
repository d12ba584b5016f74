package standingshandlers

import (
	"log/slog"
	"net/http"
	"strconv"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/dugout/app/modules/auth/infrastructure/handlers"
	standingsservice "github.com/Black-And-White-Club/dugout/app/modules/standings/application"
	"github.com/Black-And-White-Club/dugout/app/shared/httpapi"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

type StandingsHandlers struct {
	service standingsservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewStandingsHandlers(service standingsservice.Service, logger *slog.Logger, tracer trace.Tracer) *StandingsHandlers {
	return &StandingsHandlers{service: service, logger: logger, tracer: tracer}
}

func (h *StandingsHandlers) Routes(r chi.Router) {
	r.Get("/api/seasons/{seasonID}/standings", authhandlers.Authenticated(h.HandleStandings))
	r.Get("/api/seasons/{seasonID}/standings/chart.png", authhandlers.Authenticated(h.HandleChart))
}

func (h *StandingsHandlers) HandleStandings(w http.ResponseWriter, r *http.Request, _ *authdomain.Session) {
	seasonID, f := httpapi.UUIDParam(r, "seasonID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	rows, err := h.service.Standings(r.Context(), seasonID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, rows)
}

// HandleChart writes raw PNG bytes rather than the JSON envelope.
func (h *StandingsHandlers) HandleChart(w http.ResponseWriter, r *http.Request, _ *authdomain.Session) {
	ctx, span := h.tracer.Start(r.Context(), "StandingsHandlers.HandleChart")
	defer span.End()

	seasonID, f := httpapi.UUIDParam(r, "seasonID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	png, err := h.service.Chart(ctx, seasonID)
	if err != nil {
		span.RecordError(err)
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
