// Package routes
package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/immermex/dashboard-api/pkg/utils"
)

func NewMux(app *App) http.Handler {
	mux := http.NewServeMux()

	// health check
	mux.HandleFunc("/healthz", app.healthHandler)

	// metrics
	mux.Handle("/metrics", promhttp.Handler())

	// full dashboard load for a filter set
	mux.HandleFunc("/api/dashboard", app.dashboardHandler)
	mux.HandleFunc("/api/dashboard/current", app.currentHandler)

	// headline figures
	mux.HandleFunc("/api/kpis", app.kpisHandler)

	// one route per registered chart
	for _, spec := range app.Charts {
		mux.HandleFunc("/api/graficas/"+spec.Name, app.chartHandler(spec))
	}

	// filter catalogs
	mux.HandleFunc("/api/filtros/clientes", app.catalogHandler("clientes", app.Client.Clientes))
	mux.HandleFunc("/api/filtros/agentes", app.catalogHandler("agentes", app.Client.Agentes))
	mux.HandleFunc("/api/filtros/materiales", app.catalogHandler("materiales", app.Client.Materiales))
	mux.HandleFunc("/api/filtros/pedidos", app.catalogHandler("pedidos", app.Client.Pedidos))
	mux.HandleFunc("/api/filtros/meses", app.mesesHandler)

	// persisted filter selection
	mux.HandleFunc("/api/filtros/actuales", app.savedFiltersHandler)

	// data management
	mux.HandleFunc("/api/upload", app.uploadHandler)
	mux.HandleFunc("/api/plantilla", app.templateHandler)
	mux.HandleFunc("/api/datos/resumen", app.summaryHandler)

	return utils.WithCORS(mux)
}
