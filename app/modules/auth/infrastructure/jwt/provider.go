package authjwt

import (
	"errors"
	"fmt"
	"time"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// sessionClaims represents the JWT claims structure.
type sessionClaims struct {
	jwt.RegisteredClaims
	Role   string `json:"role"`
	TeamID string `json:"team_id,omitempty"`
}

// provider implements the Provider interface.
type provider struct {
	secret []byte
	issuer string
	clock  clockwork.Clock
}

// NewProvider creates a new JWT provider.
func NewProvider(secret, issuer string, clock clockwork.Clock) Provider {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &provider{
		secret: []byte(secret),
		issuer: issuer,
		clock:  clock,
	}
}

// GenerateToken creates a signed JWT token from the given session.
func (p *provider) GenerateToken(sess *authdomain.Session, ttl time.Duration) (string, error) {
	now := p.clock.Now()
	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    p.issuer,
			Subject:   sess.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: sess.Role.String(),
	}
	if sess.TeamID != nil {
		claims.TeamID = sess.TeamID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken validates a JWT token and returns the session if valid.
func (p *provider) ValidateToken(tokenString string) (*authdomain.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(p.clock.Now), jwt.WithIssuer(p.issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	role, err := authdomain.ParseRole(claims.Role)
	if err != nil {
		return nil, ErrInvalidToken
	}

	sess := &authdomain.Session{
		UserID: userID,
		Role:   role,
	}
	if claims.TeamID != "" {
		teamID, err := uuid.Parse(claims.TeamID)
		if err != nil {
			return nil, ErrInvalidToken
		}
		sess.TeamID = &teamID
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	}

	return sess, nil
}
