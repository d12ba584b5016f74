package leaguehandlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	leagueservice "github.com/Black-And-White-Club/dugout/app/modules/league/application"
	leaguedomain "github.com/Black-And-White-Club/dugout/app/modules/league/domain"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func serve(svc *FakeService, role authdomain.Role, method, path, body string) *httptest.ResponseRecorder {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewLeagueHandlers(svc, logger, noop.NewTracerProvider().Tracer("test"))
	r := chi.NewRouter()
	h.Routes(r)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if role != authdomain.RoleUnknown {
		req = req.WithContext(authdomain.WithSession(req.Context(), &authdomain.Session{UserID: uuid.New(), Role: role}))
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestLeagueHandlers_CreateSeason(t *testing.T) {
	tests := []struct {
		name       string
		role       authdomain.Role
		body       string
		wantStatus int
		wantCalls  []string
	}{
		{
			name:       "date-only fields are accepted",
			role:       authdomain.RoleAdmin,
			body:       `{"name":"Summer","year":2026,"startDate":"2026-05-01","endDate":"2026-08-31","active":true}`,
			wantStatus: http.StatusCreated,
			wantCalls:  []string{"CreateSeason"},
		},
		{
			name:       "bad date",
			role:       authdomain.RoleAdmin,
			body:       `{"name":"Summer","year":2026,"startDate":"May 1st"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCalls:  []string{},
		},
		{
			name:       "manager is forbidden",
			role:       authdomain.RoleManager,
			body:       `{}`,
			wantStatus: http.StatusForbidden,
			wantCalls:  []string{},
		},
		{
			name:       "anonymous",
			body:       `{}`,
			wantStatus: http.StatusUnauthorized,
			wantCalls:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFakeService()
			svc.CreateSeasonFunc = func(_ context.Context, _ *authdomain.Session, in leaguedomain.SeasonInput) (*leaguedb.Season, error) {
				assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), in.StartDate)
				return &leaguedb.Season{ID: uuid.New(), Name: in.Name, Active: in.Active}, nil
			}
			rr := serve(svc, tt.role, http.MethodPost, "/api/seasons", tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalls, svc.Trace())
		})
	}
}

func TestLeagueHandlers_Teams(t *testing.T) {
	seasonID := uuid.New()
	teamID := uuid.New()

	svc := NewFakeService()
	svc.CreateTeamFunc = func(_ context.Context, _ *authdomain.Session, id uuid.UUID, in leaguedomain.TeamInput) (*leaguedb.Team, error) {
		assert.Equal(t, seasonID, id)
		return &leaguedb.Team{ID: teamID, SeasonID: id, Name: in.Name, Abbreviation: in.Abbreviation}, nil
	}
	svc.RosterFunc = func(_ context.Context, id uuid.UUID) ([]leaguedb.Player, error) {
		return []leaguedb.Player{{TeamID: id, FirstName: "Casey", LastName: "Stengel"}}, nil
	}
	svc.CreatePlayerFunc = func(_ context.Context, _ *authdomain.Session, _ uuid.UUID, _ leaguedomain.PlayerInput) (*leaguedb.Player, error) {
		return nil, leagueservice.ErrNotTeamManager
	}

	rr := serve(svc, authdomain.RoleAdmin, http.MethodPost, "/api/seasons/"+seasonID.String()+"/teams", `{"name":"Mud Hens","abbreviation":"MH"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = serve(svc, authdomain.RolePlayer, http.MethodGet, "/api/teams/"+teamID.String()+"/players", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Data []leaguedb.Player `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Casey Stengel", env.Data[0].FullName())

	rr = serve(svc, authdomain.RoleManager, http.MethodPost, "/api/teams/"+teamID.String()+"/players", `{"firstName":"A","lastName":"B"}`)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	assert.Equal(t, []string{"CreateTeam", "Roster", "CreatePlayer"}, svc.Trace())
}
