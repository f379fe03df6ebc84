package dashboard

import (
	"context"

	"github.com/immermex/dashboard-api/internal/backend"
	"github.com/immermex/dashboard-api/internal/fetch"
	"github.com/immermex/dashboard-api/internal/normalize"
	"github.com/immermex/dashboard-api/pkg/types"
)

// CobranzaMetrics are the per-week fields of the collections chart.
var CobranzaMetrics = []string{"esperado", "real"}

// KPILoader wraps the backend KPI call with the shared cache policy.
func KPILoader(client *backend.Client, f *fetch.Fetcher) KPIFunc {
	return func(ctx context.Context, flt types.FilterSet) (*types.KPISet, error) {
		return fetch.Do(ctx, f, ckey("kpis", "all", flt), CacheOptions(),
			func(ctx context.Context) (*types.KPISet, error) {
				return client.KPIs(ctx, flt)
			})
	}
}

// DefaultCharts is the one chart contract per data shape, parameterized
// by endpoint rather than duplicated per dashboard variant.
func DefaultCharts(client *backend.Client, f *fetch.Fetcher) []ChartSpec {
	return []ChartSpec{
		{
			Name: "aging",
			Load: func(ctx context.Context, flt types.FilterSet) (any, error) {
				return fetch.Do(ctx, f, ckey("graficas", "aging", flt), CacheOptions(),
					func(ctx context.Context) ([]types.CategoryPoint, error) {
						payload, err := client.AgingCartera(ctx, flt)
						if err != nil {
							return nil, err
						}
						return normalize.Categories(payload), nil
					})
			},
		},
		{
			Name: "top_clientes",
			Load: func(ctx context.Context, flt types.FilterSet) (any, error) {
				return fetch.Do(ctx, f, ckey("graficas", "top_clientes", flt), CacheOptions(),
					func(ctx context.Context) ([]types.CategoryPoint, error) {
						payload, err := client.TopClientes(ctx, flt)
						if err != nil {
							return nil, err
						}
						return normalize.Categories(payload), nil
					})
			},
		},
		{
			Name: "consumo_material",
			Load: func(ctx context.Context, flt types.FilterSet) (any, error) {
				return fetch.Do(ctx, f, ckey("graficas", "consumo_material", flt), CacheOptions(),
					func(ctx context.Context) ([]types.CategoryPoint, error) {
						payload, err := client.ConsumoMaterial(ctx, flt)
						if err != nil {
							return nil, err
						}
						return normalize.KeyedCategories(payload), nil
					})
			},
		},
		{
			Name: "cobranza_semanal",
			Load: func(ctx context.Context, flt types.FilterSet) (any, error) {
				return fetch.Do(ctx, f, ckey("graficas", "cobranza_semanal", flt), CacheOptions(),
					func(ctx context.Context) ([]types.SeriesPoint, error) {
						payload, err := client.CobranzaSemanal(ctx, flt)
						if err != nil {
							return nil, err
						}
						return normalize.KeyedSeries(payload, CobranzaMetrics), nil
					})
			},
		},
		{
			Name: "tendencia_mensual",
			Load: func(ctx context.Context, flt types.FilterSet) (any, error) {
				return fetch.Do(ctx, f, ckey("graficas", "tendencia_mensual", flt), CacheOptions(),
					func(ctx context.Context) ([]types.SeriesPoint, error) {
						payload, err := client.TendenciaMensual(ctx, flt)
						if err != nil {
							return nil, err
						}
						return normalize.StackedSeries(payload), nil
					})
			},
		},
	}
}
