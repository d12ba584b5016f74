package availabilityservice

import "github.com/Black-And-White-Club/dugout/app/shared/apperr"

var (
	ErrGameNotFound     = apperr.NotFound("game not found")
	ErrPlayerNotFound   = apperr.NotFound("player not found")
	ErrNoResponse       = apperr.NotFound("player has not answered for this game")
	ErrCannotAnswer     = apperr.Forbidden("only the player or their team manager may answer")
	ErrCannotView       = apperr.Forbidden("you are not on either team in this game")
	ErrPlayerNotInGame  = apperr.Blocked("player's team is not playing in this game")
	ErrAttendanceClosed = apperr.Blocked("attendance closes once a game starts")
)
