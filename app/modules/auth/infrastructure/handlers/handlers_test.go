package authhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authservice "github.com/Black-And-White-Club/dugout/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	userdb "github.com/Black-And-White-Club/dugout/app/modules/user/infrastructure/repositories"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

func newTestRouter(svc *FakeService) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	h := NewAuthHandlers(svc, logger, tracer, true)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(svc, logger))
	h.Routes(r, NewIPRateLimiter(100, 100))
	return r
}

func TestAuthHandlers_HandleLogin(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		setupService func(*FakeService)
		verify       func(t *testing.T, rr *httptest.ResponseRecorder)
	}{
		{
			name: "success sets a secure session cookie",
			body: `{"email":"ump@example.com","password":"correct-horse"}`,
			setupService: func(s *FakeService) {
				s.LoginFunc = func(ctx context.Context, email, password string) (*authservice.LoginResult, error) {
					return &authservice.LoginResult{Token: "tok", ExpiresAt: time.Now().Add(time.Hour), User: &userdb.User{Email: email}}, nil
				}
			},
			verify: func(t *testing.T, rr *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rr.Code)
				var found *http.Cookie
				for _, c := range rr.Result().Cookies() {
					if c.Name == SessionCookie {
						found = c
					}
				}
				require.NotNil(t, found)
				assert.Equal(t, "tok", found.Value)
				assert.True(t, found.Secure)
				assert.True(t, found.HttpOnly)
			},
		},
		{
			name: "wrong password",
			body: `{"email":"ump@example.com","password":"nope"}`,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusUnauthorized, rr.Code)
				assert.Equal(t, "UNAUTHENTICATED", decode(t, rr).Error.Code)
			},
		},
		{
			name: "malformed body",
			body: `{"email":`,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rr.Code)
				assert.Equal(t, "BAD_REQUEST", decode(t, rr).Error.Code)
			},
		},
		{
			name: "missing password",
			body: `{"email":"ump@example.com"}`,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFakeService()
			if tt.setupService != nil {
				tt.setupService(svc)
			}
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(rr, req)
			tt.verify(t, rr)
		})
	}
}

func TestAuthMiddleware_SessionResolution(t *testing.T) {
	userID := uuid.New()
	validToken := "valid-token"

	tests := []struct {
		name       string
		path       string
		setupReq   func(*http.Request)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "no credentials on protected route",
			path:       "/api/auth/me",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHENTICATED",
		},
		{
			name:       "bearer token",
			path:       "/api/auth/me",
			setupReq:   func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+validToken) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "session cookie",
			path:       "/api/auth/me",
			setupReq:   func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: validToken}) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid token",
			path:       "/api/auth/me",
			setupReq:   func(r *http.Request) { r.Header.Set("Authorization", "Bearer forged") },
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHENTICATED",
		},
		{
			name:       "non-bearer authorization header",
			path:       "/api/auth/me",
			setupReq:   func(r *http.Request) { r.Header.Set("Authorization", "Basic Zm9vOmJhcg==") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "player cannot list users",
			path:       "/api/users",
			setupReq:   func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+validToken) },
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFakeService()
			svc.ValidateTokenFunc = func(ctx context.Context, token string) (*authdomain.Session, error) {
				if token != validToken {
					return nil, authservice.ErrInvalidSession
				}
				return &authdomain.Session{UserID: userID, Role: authdomain.RolePlayer}, nil
			}

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.setupReq != nil {
				tt.setupReq(req)
			}
			rr := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decode(t, rr).Error.Code)
			}
		})
	}
}

func TestAuthMiddleware_LookupErrorIsInternal(t *testing.T) {
	svc := NewFakeService()
	svc.ValidateTokenFunc = func(ctx context.Context, token string) (*authdomain.Session, error) {
		return nil, errors.New("connection reset")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer token")
	rr := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "INTERNAL_ERROR", decode(t, rr).Error.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(0, 2)
	handler := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	other.RemoteAddr = "10.0.0.2:5555"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, other)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
