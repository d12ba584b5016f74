package leagueservice

import (
	"errors"
	"fmt"

	leaguedomain "github.com/Black-And-White-Club/dugout/app/modules/league/domain"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
)

// LeagueService implements the Service interface.
type LeagueService struct {
	run  operation.Runner
	repo leaguedb.Repository
}

// NewService creates a new league service.
func NewService(run operation.Runner, repo leaguedb.Repository) *LeagueService {
	return &LeagueService{run: run, repo: repo}
}

type result[S any] = results.OperationResult[S, *apperr.Failure]

func success[S any](v S) (result[S], error) {
	return results.SuccessResult[S, *apperr.Failure](v), nil
}

func failure[S any](f *apperr.Failure) (result[S], error) {
	return results.FailureResult[S, *apperr.Failure](f), nil
}

// validationFailure converts a domain validation error into a 422 with
// per-field details.
func validationFailure(err error) *apperr.Failure {
	var verr *leaguedomain.ValidationError
	if errors.As(err, &verr) {
		return apperr.Validation(verr.Error()).WithDetail("fields", verr.Fields)
	}
	return apperr.Validation(err.Error())
}

// lookup maps leaguedb.ErrNotFound to notFound and wraps anything else.
func lookup[S any](err error, notFound *apperr.Failure, what string) (result[S], error) {
	if errors.Is(err, leaguedb.ErrNotFound) {
		return failure[S](notFound)
	}
	return result[S]{}, fmt.Errorf("failed to load %s: %w", what, err)
}
