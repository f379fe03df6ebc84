package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/immermex/dashboard-api/internal/backend"
	"github.com/immermex/dashboard-api/internal/dashboard"
	"github.com/immermex/dashboard-api/internal/metrics"
	"github.com/immermex/dashboard-api/pkg/types"
	"github.com/immermex/dashboard-api/pkg/utils"
)

func (app *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	body := utils.Body{
		"state": "healthy",
	}
	if app.Supervisor != nil {
		st := app.Supervisor.Status()
		body["backend_ready"] = st.Ready
		body["has_data"] = st.HasData
	}
	utils.ReplyJSON(w, http.StatusOK, body)
}

// replyBackendError maps a compute backend failure to a gateway status.
func replyBackendError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, backend.ErrTimeout) {
		status = http.StatusGatewayTimeout
	}
	utils.ReplyJSON(w, status, utils.Body{
		"error": err.Error(),
		"class": backend.ErrorClass(err),
	})
}

func (app *App) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		metrics.HttpRequestLatencySeconds.WithLabelValues("GET").Observe(time.Since(start).Seconds())
	}()

	if r.Method != http.MethodGet {
		utils.ReplyMethodNotAllowed(w)
		return
	}

	f, err := parseFilters(r)
	if err != nil {
		utils.ReplyBadRequest(w, err.Error())
		return
	}

	snap := app.Loader.Load(r.Context(), f)
	if snap.Stale {
		// a newer load won the race; hand back whatever it published
		snap = app.Loader.Current()
	}
	if snap.Err != "" {
		utils.ReplyJSON(w, http.StatusBadGateway, utils.Body{
			"error": snap.Err,
		})
		return
	}

	utils.ReplyJSON(w, http.StatusOK, utils.Body{
		"data": snap,
	})
}

func (app *App) currentHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.ReplyMethodNotAllowed(w)
		return
	}

	snap := app.Loader.Current()
	if snap.Generation == 0 {
		utils.ReplyNotFound(w, "no dashboard loaded yet")
		return
	}

	utils.ReplyJSON(w, http.StatusOK, utils.Body{
		"data": snap,
	})
}

func (app *App) kpisHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.ReplyMethodNotAllowed(w)
		return
	}

	f, err := parseFilters(r)
	if err != nil {
		utils.ReplyBadRequest(w, err.Error())
		return
	}

	kpis, err := app.KPIs(r.Context(), f)
	if err != nil {
		replyBackendError(w, err)
		return
	}

	utils.ReplyJSON(w, http.StatusOK, utils.Body{
		"data": kpis,
	})
}

func (app *App) chartHandler(spec dashboard.ChartSpec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			metrics.HttpRequestLatencySeconds.WithLabelValues("GET").Observe(time.Since(start).Seconds())
		}()

		if r.Method != http.MethodGet {
			utils.ReplyMethodNotAllowed(w)
			return
		}

		f, err := parseFilters(r)
		if err != nil {
			utils.ReplyBadRequest(w, err.Error())
			return
		}

		data, err := spec.Load(r.Context(), f)
		if err != nil {
			app.logger.Error().Err(err).Str("grafica", spec.Name).Msg("chart fetch failed")
			replyBackendError(w, err)
			return
		}

		utils.ReplyJSON(w, http.StatusOK, utils.Body{
			"data": data,
		})
	}
}

func (app *App) catalogHandler(name string, fn func(context.Context, types.FilterSet) ([]string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			utils.ReplyMethodNotAllowed(w)
			return
		}

		f, err := parseFilters(r)
		if err != nil {
			utils.ReplyBadRequest(w, err.Error())
			return
		}

		values, err := fn(r.Context(), f)
		if err != nil {
			app.logger.Error().Err(err).Str("catalogo", name).Msg("catalog fetch failed")
			replyBackendError(w, err)
			return
		}

		utils.ReplyJSON(w, http.StatusOK, utils.Body{
			"data": values,
		})
	}
}

func (app *App) mesesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.ReplyMethodNotAllowed(w)
		return
	}

	meses, err := app.Client.MesesDisponibles(r.Context())
	if err != nil {
		replyBackendError(w, err)
		return
	}

	utils.ReplyJSON(w, http.StatusOK, utils.Body{
		"data": meses,
	})
}

func (app *App) savedFiltersHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		f, found := app.Session.Filters(r.Context())
		if !found {
			utils.ReplyNotFound(w, "no saved filters")
			return
		}
		utils.ReplyJSON(w, http.StatusOK, utils.Body{
			"data": f,
		})
	case http.MethodPut:
		var f types.FilterSet
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			utils.ReplyBadRequest(w, "invalid filter payload")
			return
		}
		if err := app.Session.SetFilters(r.Context(), f); err != nil {
			utils.ReplyInternalServerError(w, err.Error())
			return
		}
		utils.ReplyJSON(w, http.StatusOK, utils.Body{
			"data": f,
		})
	default:
		utils.ReplyMethodNotAllowed(w)
	}
}

func (app *App) summaryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.ReplyMethodNotAllowed(w)
		return
	}

	summary, err := app.Client.DataSummary(r.Context())
	if err != nil {
		replyBackendError(w, err)
		return
	}

	utils.ReplyJSON(w, http.StatusOK, utils.Body{
		"data": summary,
	})
}
