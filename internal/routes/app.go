package routes

import (
	"github.com/rs/zerolog"

	"github.com/immermex/dashboard-api/internal/backend"
	"github.com/immermex/dashboard-api/internal/dashboard"
	"github.com/immermex/dashboard-api/internal/fetch"
	"github.com/immermex/dashboard-api/internal/state"
	"github.com/immermex/dashboard-api/internal/worker"
)

type App struct {
	Client     *backend.Client
	Fetcher    *fetch.Fetcher
	Loader     *dashboard.Loader
	Session    *state.Session
	KPIs       dashboard.KPIFunc
	Charts     []dashboard.ChartSpec
	Supervisor *worker.Supervisor
	logger     zerolog.Logger
}

func New(client *backend.Client, fetcher *fetch.Fetcher, loader *dashboard.Loader, session *state.Session, kpis dashboard.KPIFunc, charts []dashboard.ChartSpec, sv *worker.Supervisor, logger zerolog.Logger) *App {
	return &App{
		Client:     client,
		Fetcher:    fetcher,
		Loader:     loader,
		Session:    session,
		KPIs:       kpis,
		Charts:     charts,
		Supervisor: sv,
		logger:     logger,
	}
}
