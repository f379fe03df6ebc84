package backend

import (
	"net/url"
	"strconv"

	"github.com/immermex/dashboard-api/pkg/types"
)

// queryValues serializes a filter set into URL query parameters. Unset
// values are omitted entirely; list values repeat the parameter name.
func queryValues(f types.FilterSet) url.Values {
	q := url.Values{}

	setStr := func(name, val string) {
		if val != "" {
			q.Set(name, val)
		}
	}

	setStr("fecha_inicio", f.FechaInicio)
	setStr("fecha_fin", f.FechaFin)
	setStr("cliente", f.Cliente)
	setStr("agente", f.Agente)
	setStr("material", f.Material)

	for _, p := range f.Pedidos {
		if p != "" {
			q.Add("pedido", p)
		}
	}

	if f.Mes != nil {
		q.Set("mes", strconv.Itoa(*f.Mes))
	}
	if f.Anio != nil {
		q.Set("año", strconv.Itoa(*f.Anio))
	}

	return q
}
