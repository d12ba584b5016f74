package messagedb

import (
	"time"

	messagedomain "github.com/Black-And-White-Club/dugout/app/modules/message/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Message is one chat entry. Deleted rows stay in the table.
type Message struct {
	bun.BaseModel `bun:"table:messages,alias:m"`
	ID            uuid.UUID             `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	TeamID        uuid.UUID             `bun:"team_id,type:uuid,notnull" json:"teamId"`
	AuthorID      uuid.UUID             `bun:"author_id,type:uuid,notnull" json:"authorId"`
	AuthorName    string                `bun:"author_name,scanonly" json:"authorName"`
	Channel       messagedomain.Channel `bun:"channel,notnull" json:"channel"`
	Content       string                `bun:"content,notnull" json:"content"`
	ReplyToID     *uuid.UUID            `bun:"reply_to_id,type:uuid" json:"replyToId,omitempty"`
	Pinned        bool                  `bun:"pinned,notnull" json:"pinned"`
	PinnedAt      *time.Time            `bun:"pinned_at" json:"pinnedAt,omitempty"`
	PinnedBy      *uuid.UUID            `bun:"pinned_by,type:uuid" json:"pinnedBy,omitempty"`
	Edited        bool                  `bun:"edited,notnull" json:"edited"`
	EditedAt      *time.Time            `bun:"edited_at" json:"editedAt,omitempty"`
	Deleted       bool                  `bun:"deleted,notnull" json:"deleted"`
	DeletedAt     *time.Time            `bun:"deleted_at" json:"deletedAt,omitempty"`
	CreatedAt     time.Time             `bun:"created_at,notnull" json:"createdAt"`
}

// Redacted hides the content of a deleted message.
func (m Message) Redacted() Message {
	if m.Deleted {
		m.Content = ""
	}
	return m
}

// ListFilter selects one page of a channel. Before pages backwards from a
// message, After reads forward from one.
type ListFilter struct {
	TeamID  uuid.UUID
	Channel messagedomain.Channel
	Before  *uuid.UUID
	After   *uuid.UUID
	Limit   int
}
