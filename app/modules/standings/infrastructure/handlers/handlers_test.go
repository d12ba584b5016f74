package standingshandlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	standingsservice "github.com/Black-And-White-Club/dugout/app/modules/standings/application"
	standingsdomain "github.com/Black-And-White-Club/dugout/app/modules/standings/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type FakeService struct {
	trace []string

	StandingsFunc func(ctx context.Context, seasonID uuid.UUID) ([]standingsdomain.Row, error)
}

func (f *FakeService) Standings(ctx context.Context, seasonID uuid.UUID) ([]standingsdomain.Row, error) {
	f.trace = append(f.trace, "Standings")
	if f.StandingsFunc != nil {
		return f.StandingsFunc(ctx, seasonID)
	}
	return []standingsdomain.Row{}, nil
}

func (f *FakeService) Chart(ctx context.Context, seasonID uuid.UUID) ([]byte, error) {
	f.trace = append(f.trace, "Chart")
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

var _ standingsservice.Service = (*FakeService)(nil)

func serve(svc *FakeService, role authdomain.Role, path string) *httptest.ResponseRecorder {
	h := NewStandingsHandlers(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), noop.NewTracerProvider().Tracer("test"))
	r := chi.NewRouter()
	h.Routes(r)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if role != authdomain.RoleUnknown {
		req = req.WithContext(authdomain.WithSession(req.Context(), &authdomain.Session{UserID: uuid.New(), Role: role}))
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestStandingsHandlers(t *testing.T) {
	season := uuid.New().String()

	t.Run("table", func(t *testing.T) {
		svc := &FakeService{StandingsFunc: func(ctx context.Context, _ uuid.UUID) ([]standingsdomain.Row, error) {
			return []standingsdomain.Row{{Rank: 1, Name: "Bats", Record: standingsdomain.Record{Wins: 3}, Pct: 1}}, nil
		}}
		rr := serve(svc, authdomain.RolePlayer, "/api/seasons/"+season+"/standings")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"w":3`)
		assert.Contains(t, rr.Body.String(), `"success":true`)
	})

	t.Run("chart is raw png", func(t *testing.T) {
		svc := &FakeService{}
		rr := serve(svc, authdomain.RolePlayer, "/api/seasons/"+season+"/standings/chart.png")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
		assert.Equal(t, []string{"Chart"}, svc.trace)
	})

	t.Run("anonymous", func(t *testing.T) {
		svc := &FakeService{}
		rr := serve(svc, authdomain.RoleUnknown, "/api/seasons/"+season+"/standings")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, svc.trace)
	})

	t.Run("bad season id", func(t *testing.T) {
		svc := &FakeService{}
		rr := serve(svc, authdomain.RolePlayer, "/api/seasons/nope/standings")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
