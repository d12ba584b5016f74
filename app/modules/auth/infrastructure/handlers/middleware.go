package authhandlers

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/httpapi"
	"golang.org/x/time/rate"
)

const (
	// SessionCookie carries the session token for browser clients.
	SessionCookie = "session"

	// cleanupThreshold is the minimum map size before a cleanup pass runs.
	cleanupThreshold = 500
	// maxIdleAge is the duration after which an idle IP entry is eligible for cleanup.
	maxIdleAge = 10 * time.Minute
)

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter is an IP-based rate limiter that prunes stale entries inline.
type IPRateLimiter struct {
	ips map[string]*ipEntry
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

// NewIPRateLimiter creates a new IPRateLimiter.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*ipEntry),
		r:   r,
		b:   b,
	}
}

// GetLimiter returns a rate.Limiter for the given IP, pruning stale entries when the
// map exceeds cleanupThreshold.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	if len(i.ips) > cleanupThreshold {
		cutoff := time.Now().Add(-maxIdleAge)
		for k, e := range i.ips {
			if e.lastSeen.Before(cutoff) {
				delete(i.ips, k)
			}
		}
	}

	e, exists := i.ips[ip]
	if !exists {
		e = &ipEntry{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[ip] = e
	}
	e.lastSeen = time.Now()

	return e.limiter
}

// RateLimitMiddleware rejects requests over the per-IP budget with 429.
func RateLimitMiddleware(limiter *IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.GetLimiter(ip).Allow() {
				w.Header().Set("Retry-After", "1")
				httpapi.WriteFailure(w, &apperr.Failure{Kind: apperr.KindRateLimited, Message: "too many requests"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// TokenValidator decodes session tokens.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*authdomain.Session, error)
}

// tokenFromRequest reads a bearer token, falling back to the session cookie.
func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// AuthMiddleware attaches the caller's session to the request context. Requests
// without credentials pass through anonymously; a present but invalid token is
// rejected with 401, and a failed user lookup with 500.
func AuthMiddleware(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			hasCredentials := token != "" || r.Header.Get("Authorization") != ""
			if !hasCredentials {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				if _, ok := apperr.As(err); ok {
					httpapi.WriteFailure(w, apperr.Unauthenticated("invalid or expired session"))
					return
				}
				httpapi.WriteError(w, r, logger, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(authdomain.WithSession(r.Context(), sess)))
		})
	}
}

// SessionHandlerFunc is an HTTP handler that receives the caller's session explicitly.
type SessionHandlerFunc func(w http.ResponseWriter, r *http.Request, sess *authdomain.Session)

// Require adapts h into an http.HandlerFunc that answers 401 without a session
// and 403 when the caller's role is below required.
func Require(required authdomain.Role, h SessionHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := authdomain.SessionFrom(r.Context())
		if !ok {
			httpapi.WriteFailure(w, apperr.Unauthenticated("authentication required"))
			return
		}
		if !authdomain.HasPermission(sess.Role, required) {
			httpapi.WriteFailure(w, apperr.Forbidden("requires "+required.String()+" role"))
			return
		}
		h(w, r, sess)
	}
}

// Authenticated is Require for any signed-in caller.
func Authenticated(h SessionHandlerFunc) http.HandlerFunc {
	return Require(authdomain.RolePlayer, h)
}
