package routes

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/immermex/dashboard-api/pkg/types"
)

// parseFilters reads a filter set from the query string. Unset params
// stay at their zero value and are treated as "no filter".
func parseFilters(r *http.Request) (types.FilterSet, error) {
	q := r.URL.Query()

	f := types.FilterSet{
		FechaInicio: q.Get("fecha_inicio"),
		FechaFin:    q.Get("fecha_fin"),
		Cliente:     q.Get("cliente"),
		Agente:      q.Get("agente"),
		Material:    q.Get("material"),
		Pedidos:     q["pedido"],
	}

	if v := q.Get("mes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			return types.FilterSet{}, fmt.Errorf("invalid mes: %q", v)
		}
		f.Mes = &n
	}

	year := q.Get("año")
	if year == "" {
		year = q.Get("anio")
	}
	if year != "" {
		n, err := strconv.Atoi(year)
		if err != nil || n < 2000 || n > 2100 {
			return types.FilterSet{}, fmt.Errorf("invalid año: %q", year)
		}
		f.Anio = &n
	}

	return f, nil
}
