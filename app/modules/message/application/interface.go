package messageservice

import (
	"context"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	messagedomain "github.com/Black-And-White-Club/dugout/app/modules/message/domain"
	messagedb "github.com/Black-And-White-Club/dugout/app/modules/message/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service defines team chat operations.
type Service interface {
	List(ctx context.Context, sess *authdomain.Session, teamID uuid.UUID, q ListQuery) (*Page, error)
	Pinned(ctx context.Context, sess *authdomain.Session, teamID uuid.UUID) ([]messagedb.Message, error)
	Post(ctx context.Context, sess *authdomain.Session, teamID uuid.UUID, in PostInput) (*messagedb.Message, error)
	Edit(ctx context.Context, sess *authdomain.Session, id uuid.UUID, content string) (*messagedb.Message, error)
	Delete(ctx context.Context, sess *authdomain.Session, id uuid.UUID) error
	SetPinned(ctx context.Context, sess *authdomain.Session, id uuid.UUID, pinned bool) (*messagedb.Message, error)
}

// ListQuery is one page request. Before and After are message ids and are
// mutually exclusive.
type ListQuery struct {
	Channel messagedomain.Channel
	Before  *uuid.UUID
	After   *uuid.UUID
	Limit   int
}

// Page is newest first for a Before (or initial) read and oldest first for an
// After read, which is what a polling client appends.
type Page struct {
	Messages []messagedb.Message `json:"messages"`
	HasMore  bool                `json:"hasMore"`
}

type PostInput struct {
	Channel   messagedomain.Channel `json:"channel"`
	Content   string                `json:"content"`
	ReplyToID *uuid.UUID            `json:"replyToId"`
}

// TeamReader confirms the team exists before a post.
type TeamReader interface {
	GetTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (*leaguedb.Team, error)
}
