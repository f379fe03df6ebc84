package backend

import (
	"testing"

	"github.com/immermex/dashboard-api/pkg/types"
)

func intPtr(n int) *int { return &n }

func TestQueryValuesSkipsUnset(t *testing.T) {
	f := types.FilterSet{
		Mes:     intPtr(3),
		Cliente: "",
	}

	q := queryValues(f)
	if got := q.Encode(); got != "mes=3" {
		t.Fatalf("query = %q, want mes=3", got)
	}
}

func TestQueryValuesFullSet(t *testing.T) {
	f := types.FilterSet{
		FechaInicio: "2024-01-01",
		FechaFin:    "2024-03-31",
		Cliente:     "ACME",
		Agente:      "MX-01",
		Material:    "PET",
		Pedidos:     []string{"P-100", "P-200"},
		Mes:         intPtr(3),
		Anio:        intPtr(2024),
	}

	q := queryValues(f)

	for name, want := range map[string]string{
		"fecha_inicio": "2024-01-01",
		"fecha_fin":    "2024-03-31",
		"cliente":      "ACME",
		"agente":       "MX-01",
		"material":     "PET",
		"mes":          "3",
		"año":          "2024",
	} {
		if got := q.Get(name); got != want {
			t.Fatalf("%s = %q, want %q", name, got, want)
		}
	}

	pedidos := q["pedido"]
	if len(pedidos) != 2 || pedidos[0] != "P-100" || pedidos[1] != "P-200" {
		t.Fatalf("pedido = %v, want [P-100 P-200]", pedidos)
	}
}

func TestQueryValuesEmptyFilter(t *testing.T) {
	q := queryValues(types.FilterSet{})
	if len(q) != 0 {
		t.Fatalf("empty filter produced params: %v", q)
	}
}
