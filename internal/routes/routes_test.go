package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/immermex/dashboard-api/internal/dashboard"
	"github.com/immermex/dashboard-api/internal/state"
	"github.com/immermex/dashboard-api/pkg/types"
)

func testApp(t *testing.T) *App {
	t.Helper()
	session := state.NewSession(state.NewMemory(), zerolog.Nop())
	kpis := func(ctx context.Context, f types.FilterSet) (*types.KPISet, error) {
		return &types.KPISet{FacturacionTotal: 50000}, nil
	}
	charts := []dashboard.ChartSpec{
		{Name: "aging", Load: func(ctx context.Context, f types.FilterSet) (any, error) {
			return []types.CategoryPoint{{Name: "0-30 días", Value: 1000}}, nil
		}},
	}
	loader := dashboard.NewLoader(session, kpis, charts, zerolog.Nop())
	return New(nil, nil, loader, session, kpis, charts, nil, zerolog.Nop())
}

func TestParseFilters(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/kpis?cliente=ACME&mes=3&"+url.QueryEscape("año")+"=2024&pedido=P-1&pedido=P-2", nil)

	f, err := parseFilters(req)
	if err != nil {
		t.Fatalf("parseFilters() error = %v", err)
	}
	if f.Cliente != "ACME" {
		t.Errorf("Cliente = %q", f.Cliente)
	}
	if f.Mes == nil || *f.Mes != 3 {
		t.Errorf("Mes = %v", f.Mes)
	}
	if f.Anio == nil || *f.Anio != 2024 {
		t.Errorf("Anio = %v", f.Anio)
	}
	if len(f.Pedidos) != 2 || f.Pedidos[1] != "P-2" {
		t.Errorf("Pedidos = %v", f.Pedidos)
	}
}

func TestParseFiltersRejectsBadMonth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/kpis?mes=13", nil)
	if _, err := parseFilters(req); err == nil {
		t.Fatal("mes=13 accepted")
	}
}

func TestSavedFiltersRoundTrip(t *testing.T) {
	mux := NewMux(testApp(t))

	put := httptest.NewRequest(http.MethodPut, "/api/filtros/actuales", strings.NewReader(`{"cliente":"ACME","mes":7}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, put)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/filtros/actuales", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}

	var body struct {
		Data types.FilterSet `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Cliente != "ACME" || body.Data.Mes == nil || *body.Data.Mes != 7 {
		t.Fatalf("saved filters = %+v", body.Data)
	}
}

func TestSavedFiltersMissing(t *testing.T) {
	mux := NewMux(testApp(t))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/filtros/actuales", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestChartRoute(t *testing.T) {
	mux := NewMux(testApp(t))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/graficas/aging?cliente=ACME", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "0-30 días") {
		t.Fatalf("body = %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/graficas/aging?mes=99", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad filter status = %d", rec.Code)
	}
}

func TestDashboardRoute(t *testing.T) {
	mux := NewMux(testApp(t))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard?cliente=ACME", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "facturacion_total") {
		t.Fatalf("body = %s", rec.Body.String())
	}

	// the load above was published
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/current", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("current status = %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := NewMux(testApp(t))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/kpis", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
