package userdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is a league account. Role is stored by name.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Email         string     `bun:"email,notnull" json:"email"`
	DisplayName   string     `bun:"display_name,notnull" json:"displayName"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Role          string     `bun:"role,notnull" json:"role"`
	TeamID        *uuid.UUID `bun:"team_id,type:uuid" json:"teamId,omitempty"`
	CreatedAt     time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// ListFilter narrows List results.
type ListFilter struct {
	TeamID *uuid.UUID
	Role   string
}
