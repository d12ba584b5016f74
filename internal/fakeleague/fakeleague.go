// Package fakeleague generates plausible seasons, rosters, users and
// schedules for seeding and integration tests.
package fakeleague

import (
	"fmt"
	"strings"
	"time"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	leaguedomain "github.com/Black-And-White-Club/dugout/app/modules/league/domain"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/dugout/app/modules/user/infrastructure/repositories"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// Generator is deterministic for a given seed.
type Generator struct {
	faker *gofakeit.Faker
	seed  int64
}

// New creates a generator. Without a seed the current time is used.
func New(seed ...int64) *Generator {
	s := time.Now().UnixNano()
	if len(seed) > 0 {
		s = seed[0]
	}
	return &Generator{faker: gofakeit.New(uint64(s)), seed: s}
}

func (g *Generator) Seed() int64 { return g.seed }

// Season returns an active season running from April to August of year.
func (g *Generator) Season(year int) leaguedb.Season {
	return leaguedb.Season{
		ID:        uuid.New(),
		Name:      fmt.Sprintf("%d Summer League", year),
		Year:      year,
		StartDate: time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(year, time.August, 31, 0, 0, 0, 0, time.UTC),
		Active:    true,
	}
}

// Teams returns n teams with distinct names and abbreviations.
func (g *Generator) Teams(seasonID uuid.UUID, n int) []leaguedb.Team {
	teams := make([]leaguedb.Team, 0, n)
	usedName := map[string]bool{}
	usedAbbr := map[string]bool{}
	for len(teams) < n {
		animal := g.faker.Animal()
		name := g.faker.City() + " " + strings.ToUpper(animal[:1]) + animal[1:] + "s"
		if usedName[name] {
			continue
		}
		abbr := abbreviate(name)
		for i := 2; usedAbbr[abbr]; i++ {
			abbr = abbreviate(name)[:2] + fmt.Sprint(i)
		}
		usedName[name], usedAbbr[abbr] = true, true
		color := g.faker.HexColor()
		teams = append(teams, leaguedb.Team{
			ID:           uuid.New(),
			SeasonID:     seasonID,
			Name:         name,
			Abbreviation: abbr,
			Color:        &color,
		})
	}
	return teams
}

// abbreviate takes the first three letters of the name, uppercased.
func abbreviate(name string) string {
	letters := make([]rune, 0, 3)
	for _, r := range strings.ToUpper(name) {
		if r >= 'A' && r <= 'Z' {
			letters = append(letters, r)
		}
		if len(letters) == 3 {
			break
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	return string(letters)
}

var fieldPositions = []leaguedomain.Position{
	leaguedomain.PositionPitcher, leaguedomain.PositionCatcher, leaguedomain.PositionFirstBase,
	leaguedomain.PositionSecondBase, leaguedomain.PositionThirdBase, leaguedomain.PositionShortstop,
	leaguedomain.PositionLeftField, leaguedomain.PositionCenterField, leaguedomain.PositionRightField,
}

// Roster returns n players with unique jersey numbers. The first nine cover
// every fielding position; the rest are utility players.
func (g *Generator) Roster(team leaguedb.Team, n int) []leaguedb.Player {
	numbers := make([]int, 99)
	for i := range numbers {
		numbers[i] = i
	}
	g.faker.ShuffleInts(numbers)
	players := make([]leaguedb.Player, n)
	for i := range players {
		position := leaguedomain.PositionUtility
		if i < len(fieldPositions) {
			position = fieldPositions[i]
		}
		jersey := numbers[i%len(numbers)] + 1
		players[i] = leaguedb.Player{
			ID:           uuid.New(),
			TeamID:       team.ID,
			SeasonID:     team.SeasonID,
			FirstName:    g.faker.FirstName(),
			LastName:     g.faker.LastName(),
			JerseyNumber: &jersey,
			Position:     string(position),
			Bats:         string(g.hand(true)),
			Throws:       string(g.hand(false)),
			Status:       string(leaguedomain.PlayerActive),
		}
	}
	return players
}

func (g *Generator) hand(batting bool) leaguedomain.Hand {
	switch n := g.faker.Number(1, 10); {
	case batting && n == 10:
		return leaguedomain.HandSwitch
	case n <= 3:
		return leaguedomain.HandLeft
	default:
		return leaguedomain.HandRight
	}
}

// User returns an account for a person. PasswordHash is left to the caller.
func (g *Generator) User(first, last string, role authdomain.Role, teamID *uuid.UUID) userdb.User {
	email := strings.ToLower(fmt.Sprintf("%s.%s.%s@example.com", first, last, g.faker.LetterN(4)))
	return userdb.User{
		ID:          uuid.New(),
		Email:       strings.ReplaceAll(email, " ", ""),
		DisplayName: first + " " + last,
		Role:        role.String(),
		TeamID:      teamID,
	}
}

// Schedule returns a double round robin: every pair of teams meets twice,
// once at each park. Game days are a week apart starting at first, with
// each day's games staggered by two hours.
func (g *Generator) Schedule(seasonID uuid.UUID, teams []leaguedb.Team, first time.Time, rules gamedomain.Rules) ([]gamedomain.Game, error) {
	ids := make([]uuid.UUID, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	// Circle method; odd counts get a bye slot.
	if len(ids)%2 == 1 {
		ids = append(ids, uuid.Nil)
	}
	n := len(ids)
	rounds := n - 1

	var games []gamedomain.Game
	for leg := 0; leg < 2; leg++ {
		rotation := append([]uuid.UUID(nil), ids...)
		for round := 0; round < rounds; round++ {
			day := first.AddDate(0, 0, 7*(leg*rounds+round))
			slot := 0
			for i := 0; i < n/2; i++ {
				home, away := rotation[i], rotation[n-1-i]
				if home == uuid.Nil || away == uuid.Nil {
					continue
				}
				if (round+leg)%2 == 1 {
					home, away = away, home
				}
				game, f := gamedomain.NewScheduledGame(gamedomain.NewGameInput{
					SeasonID:    seasonID,
					HomeTeamID:  home,
					AwayTeamID:  away,
					ScheduledAt: day.Add(time.Duration(slot) * 2 * time.Hour),
					Location:    g.faker.Street() + " Field",
				}, rules)
				if f != nil {
					return nil, f
				}
				games = append(games, game)
				slot++
			}
			// Keep the first entry fixed and rotate the rest clockwise.
			last := rotation[n-1]
			copy(rotation[2:], rotation[1:n-1])
			rotation[1] = last
		}
	}
	return games, nil
}
