package statshandlers

import (
	"net/http"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	statsservice "github.com/Black-And-White-Club/dugout/app/modules/stats/application"
	statsdomain "github.com/Black-And-White-Club/dugout/app/modules/stats/domain"
	statsdb "github.com/Black-And-White-Club/dugout/app/modules/stats/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/httpapi"
	"github.com/go-chi/chi/v5"
)

func seasonFilter(r *http.Request) (statsdb.SeasonFilter, *apperr.Failure) {
	seasonID, f := httpapi.UUIDParam(r, "seasonID")
	if f != nil {
		return statsdb.SeasonFilter{}, f
	}
	team, f := httpapi.OptionalUUIDQuery(r, "team")
	if f != nil {
		return statsdb.SeasonFilter{}, f
	}
	return statsdb.SeasonFilter{SeasonID: seasonID, TeamID: team}, nil
}

func (h *StatsHandlers) HandleSeasonBatting(w http.ResponseWriter, r *http.Request, _ *authdomain.Session) {
	filter, f := seasonFilter(r)
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	rows, err := h.service.SeasonBatting(r.Context(), filter)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, rows)
}

func (h *StatsHandlers) HandleSeasonPitching(w http.ResponseWriter, r *http.Request, _ *authdomain.Session) {
	filter, f := seasonFilter(r)
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	rows, err := h.service.SeasonPitching(r.Context(), filter)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, rows)
}

// HandleLeaders serves /leaders/{category}?limit&minPa&minOuts.
func (h *StatsHandlers) HandleLeaders(w http.ResponseWriter, r *http.Request, _ *authdomain.Session) {
	seasonID, f := httpapi.UUIDParam(r, "seasonID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	category, f := statsdomain.ParseCategory(chi.URLParam(r, "category"))
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}

	var opts statsdomain.LeaderOptions
	for _, q := range []struct {
		name string
		def  int
		dst  *int
	}{
		{"limit", 0, &opts.Limit},
		{"minPa", statsservice.DefaultMinPA, &opts.MinPA},
		{"minOuts", statsservice.DefaultMinOuts, &opts.MinOuts},
	} {
		v, f := httpapi.IntQuery(r, q.name, q.def)
		if f != nil {
			httpapi.WriteFailure(w, f)
			return
		}
		*q.dst = v
	}

	leaders, err := h.service.Leaders(r.Context(), seasonID, category, opts)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, leaders)
}
