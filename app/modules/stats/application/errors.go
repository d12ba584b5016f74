package statsservice

import "github.com/Black-And-White-Club/dugout/app/shared/apperr"

var (
	ErrGameNotFound    = apperr.NotFound("game not found")
	ErrPlayerNotFound  = apperr.NotFound("player not found")
	ErrLineNotFound    = apperr.NotFound("no stat line for that player in this game")
	ErrNotStatKeeper   = apperr.Forbidden("only the player's team manager, an admin or a commissioner may enter stats")
	ErrPlayerNotInGame = apperr.Blocked("player's team is not playing in this game")
	ErrGameNotPlayed   = apperr.Blocked("stats can only be entered once a game has started")
)
