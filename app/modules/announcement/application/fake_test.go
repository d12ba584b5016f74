package announcementservice

import (
	"context"
	"sort"

	announcementdb "github.com/Black-And-White-Club/dugout/app/modules/announcement/infrastructure/repositories"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Announcement Repo
// ------------------------

type FakeAnnouncementRepo struct {
	trace   []string
	rows    []*announcementdb.Announcement
	filters []announcementdb.ListFilter
}

func (f *FakeAnnouncementRepo) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeAnnouncementRepo) Trace() []string { return f.trace }

func (f *FakeAnnouncementRepo) Get(ctx context.Context, db bun.IDB, id uuid.UUID) (*announcementdb.Announcement, error) {
	f.record("Get")
	for _, a := range f.rows {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, announcementdb.ErrNotFound
}

func (f *FakeAnnouncementRepo) List(ctx context.Context, db bun.IDB, filter announcementdb.ListFilter) ([]announcementdb.Announcement, error) {
	f.record("List")
	f.filters = append(f.filters, filter)
	var out []announcementdb.Announcement
	for _, a := range f.rows {
		inScope := filter.AllTeams || a.TeamID == nil
		for _, id := range filter.TeamIDs {
			if a.TeamID != nil && *a.TeamID == id {
				inScope = true
			}
		}
		if !inScope {
			continue
		}
		if filter.ActiveAt != nil && a.ExpiresAt != nil && !a.ExpiresAt.After(*filter.ActiveAt) {
			continue
		}
		out = append(out, *a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *FakeAnnouncementRepo) Create(ctx context.Context, db bun.IDB, a *announcementdb.Announcement) error {
	f.record("Create")
	a.ID = uuid.New()
	cp := *a
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *FakeAnnouncementRepo) CreateForGame(ctx context.Context, db bun.IDB, a *announcementdb.Announcement) (bool, error) {
	f.record("CreateForGame")
	for _, existing := range f.rows {
		if existing.GameID != nil && *existing.GameID == *a.GameID && *existing.TeamID == *a.TeamID {
			return false, nil
		}
	}
	a.ID = uuid.New()
	cp := *a
	f.rows = append(f.rows, &cp)
	return true, nil
}

func (f *FakeAnnouncementRepo) Update(ctx context.Context, db bun.IDB, a *announcementdb.Announcement) error {
	f.record("Update")
	for i, existing := range f.rows {
		if existing.ID == a.ID {
			cp := *a
			f.rows[i] = &cp
			return nil
		}
	}
	return announcementdb.ErrNotFound
}

func (f *FakeAnnouncementRepo) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("Delete")
	for i, existing := range f.rows {
		if existing.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return announcementdb.ErrNotFound
}

// ------------------------
// Fake Team Reader
// ------------------------

type FakeTeams struct {
	teams map[uuid.UUID]leaguedb.Team
}

func (f *FakeTeams) GetTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (*leaguedb.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, leaguedb.ErrNotFound
	}
	return &t, nil
}

var (
	_ announcementdb.Repository = (*FakeAnnouncementRepo)(nil)
	_ TeamReader                = (*FakeTeams)(nil)
)
