package messageservice

import (
	"context"
	"sort"

	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	messagedb "github.com/Black-And-White-Club/dugout/app/modules/message/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Message Repo
// ------------------------

// FakeMessageRepo keeps messages in insertion order, which matches
// created_at order in these tests.
type FakeMessageRepo struct {
	trace    []string
	messages []*messagedb.Message
	updated  []string
}

func (f *FakeMessageRepo) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeMessageRepo) Trace() []string { return f.trace }

func (f *FakeMessageRepo) Get(ctx context.Context, db bun.IDB, id uuid.UUID) (*messagedb.Message, error) {
	f.record("Get")
	for _, m := range f.messages {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, messagedb.ErrNotFound
}

func (f *FakeMessageRepo) List(ctx context.Context, db bun.IDB, filter messagedb.ListFilter) ([]messagedb.Message, error) {
	f.record("List")
	var channel []messagedb.Message
	for _, m := range f.messages {
		if m.TeamID == filter.TeamID && m.Channel == filter.Channel {
			channel = append(channel, *m)
		}
	}
	index := func(id uuid.UUID) int {
		for i := range channel {
			if channel[i].ID == id {
				return i
			}
		}
		return -1
	}

	var out []messagedb.Message
	switch {
	case filter.After != nil:
		i := index(*filter.After)
		if i < 0 {
			return nil, messagedb.ErrCursorNotFound
		}
		out = channel[i+1:]
	case filter.Before != nil:
		i := index(*filter.Before)
		if i < 0 {
			return nil, messagedb.ErrCursorNotFound
		}
		out = reversed(channel[:i])
	default:
		out = reversed(channel)
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func reversed(in []messagedb.Message) []messagedb.Message {
	out := make([]messagedb.Message, len(in))
	for i := range in {
		out[len(in)-1-i] = in[i]
	}
	return out
}

func (f *FakeMessageRepo) ListPinned(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]messagedb.Message, error) {
	f.record("ListPinned")
	var out []messagedb.Message
	for _, m := range f.messages {
		if m.TeamID == teamID && m.Pinned && !m.Deleted {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PinnedAt.After(*out[j].PinnedAt) })
	return out, nil
}

func (f *FakeMessageRepo) Create(ctx context.Context, db bun.IDB, m *messagedb.Message) error {
	f.record("Create")
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	cp := *m
	f.messages = append(f.messages, &cp)
	return nil
}

func (f *FakeMessageRepo) Update(ctx context.Context, db bun.IDB, m *messagedb.Message, columns ...string) error {
	f.record("Update")
	f.updated = columns
	for i, existing := range f.messages {
		if existing.ID == m.ID {
			cp := *m
			f.messages[i] = &cp
			return nil
		}
	}
	return messagedb.ErrNotFound
}

// ------------------------
// Fake Team Reader
// ------------------------

type FakeTeams struct {
	known map[uuid.UUID]bool
}

func (f *FakeTeams) GetTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (*leaguedb.Team, error) {
	if !f.known[id] {
		return nil, leaguedb.ErrNotFound
	}
	return &leaguedb.Team{ID: id}, nil
}

var (
	_ messagedb.Repository = (*FakeMessageRepo)(nil)
	_ TeamReader           = (*FakeTeams)(nil)
)
