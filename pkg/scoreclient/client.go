// Package scoreclient drives live scoring from a client device. A Panel
// applies each action locally before the server confirms it and reconciles
// with the server on a fixed interval.
package scoreclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

// Client calls the game API with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *retryablehttp.Client
}

// NewClient creates a client for baseURL. Reads are retried with backoff;
// scoring calls are sent once.
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil
	if logger != nil {
		rc.Logger = logger
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), token: token, http: rc}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apperr.Failure `json:"error"`
}

// Game fetches the current state of a game.
func (c *Client) Game(ctx context.Context, gameID uuid.UUID) (gamedomain.Game, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.gameURL(gameID, ""), nil)
	if err != nil {
		return gamedomain.Game{}, err
	}
	c.authorize(req.Header)
	resp, err := c.http.Do(req)
	if err != nil {
		return gamedomain.Game{}, fmt.Errorf("failed to fetch game: %w", err)
	}
	var g gamedomain.Game
	if err := decode(resp, &g); err != nil {
		return gamedomain.Game{}, err
	}
	return g, nil
}

// Send posts one scoring command and returns the server's transition.
func (c *Client) Send(ctx context.Context, gameID uuid.UUID, cmd gamedomain.Command) (gamedomain.Transition, error) {
	body, err := json.Marshal(requestBody(cmd))
	if err != nil {
		return gamedomain.Transition{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gameURL(gameID, string(cmd.Action)), bytes.NewReader(body))
	if err != nil {
		return gamedomain.Transition{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req.Header)

	resp, err := c.http.HTTPClient.Do(req)
	if err != nil {
		return gamedomain.Transition{}, fmt.Errorf("failed to send %s: %w", cmd.Action, err)
	}
	var tr gamedomain.Transition
	if err := decode(resp, &tr); err != nil {
		return gamedomain.Transition{}, err
	}
	return tr, nil
}

func (c *Client) gameURL(gameID uuid.UUID, action string) string {
	u := c.baseURL + "/api/games/" + gameID.String()
	if action != "" {
		u += "/" + action
	}
	return u
}

func (c *Client) authorize(h http.Header) {
	if c.token != "" {
		h.Set("Authorization", "Bearer "+c.token)
	}
}

// requestBody maps a command onto the endpoint's request shape.
func requestBody(cmd gamedomain.Command) map[string]any {
	body := map[string]any{}
	if cmd.ExpectedVersion != nil {
		body["expectedVersion"] = *cmd.ExpectedVersion
	}
	switch cmd.Action {
	case gamedomain.ActionStart:
		if cmd.StartStatus != "" {
			body["status"] = cmd.StartStatus
		}
	case gamedomain.ActionScore:
		body["runs"] = cmd.Runs
	case gamedomain.ActionOut:
		body["count"] = cmd.Outs
	case gamedomain.ActionAdvance:
		if cmd.Advance.ForceInning != nil {
			body["forceInning"] = *cmd.Advance.ForceInning
		}
		if cmd.Advance.ForceHalf != nil {
			body["forceHalf"] = *cmd.Advance.ForceHalf
		}
	case gamedomain.ActionEnd:
		if cmd.End.Status != "" {
			body["status"] = cmd.End.Status
		}
		if cmd.End.Notes != "" {
			body["notes"] = cmd.End.Notes
		}
	}
	return body
}

// decode unwraps the response envelope. A refusal comes back as *apperr.Failure.
func decode(resp *http.Response, dst any) error {
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, err)
	}
	if !env.Success {
		if env.Error != nil {
			return env.Error
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
