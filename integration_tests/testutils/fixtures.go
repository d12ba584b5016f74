package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/dugout/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/internal/fakeleague"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

// Password is shared by every seeded account.
const Password = "integration-pass"

var passwordHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

// SeedLeague populates a four team league whose first games start at first.
func SeedLeague(ctx context.Context, db *bun.DB, seed int64, first time.Time) (*fakeleague.League, error) {
	stores := fakeleague.Stores{
		Users:  userdb.NewRepository(db),
		League: leaguedb.NewRepository(db),
		Games:  gamedb.NewRepository(db),
	}
	return fakeleague.New(seed).Populate(ctx, db, stores, fakeleague.Options{
		Year:         first.Year(),
		Teams:        4,
		Roster:       10,
		PasswordHash: passwordHash,
		Rules:        gamedomain.DefaultRules,
		FirstGame:    first,
	})
}

// Login exchanges credentials for a bearer token against a running API.
func Login(ctx context.Context, baseURL, email string) (string, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": Password})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login %s: status %d", email, resp.StatusCode)
	}

	var env struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", err
	}
	return env.Data.Token, nil
}
