package gameservice

import "github.com/Black-And-White-Club/dugout/app/shared/apperr"

var (
	ErrGameNotFound   = apperr.NotFound("game not found")
	ErrSeasonNotFound = apperr.NotFound("season not found")
	ErrStaleVersion   = apperr.Conflict("game was changed by someone else; reload and try again")
	ErrNotScorer      = apperr.Forbidden("only a manager of one of the two teams, an admin or a commissioner may score this game")
	ErrNotScheduler   = apperr.Forbidden("only admins and commissioners may change the schedule")

	ErrPostponedNeedsTime = apperr.Validation("a postponed game needs a new scheduledAt")
)
