package leagueservice

import "github.com/Black-And-White-Club/dugout/app/shared/apperr"

var (
	ErrSeasonNotFound  = apperr.NotFound("season not found")
	ErrTeamNotFound    = apperr.NotFound("team not found")
	ErrPlayerNotFound  = apperr.NotFound("player not found")
	ErrNotAdmin        = apperr.Forbidden("only admins and commissioners may change seasons and teams")
	ErrNotTeamManager  = apperr.Forbidden("only the team's manager, an admin or a commissioner may edit this roster")
	ErrDuplicateTeam   = apperr.Conflict("a team with that abbreviation already exists this season")
	ErrDuplicateJersey = apperr.Conflict("that jersey number is already taken on this team")
	ErrTeamHasGames    = apperr.Blocked("team has games or players; remove them first")
)
