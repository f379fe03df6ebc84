package normalize

import (
	"encoding/json"
	"testing"

	"github.com/immermex/dashboard-api/pkg/types"
)

func TestCategoriesAging(t *testing.T) {
	p := &types.LabelValuePayload{
		Labels: []string{"0-30 días", "31-60 días"},
		Data:   []float64{1000, 2000},
		Titulo: "Aging de Cartera",
	}

	got := Categories(p)
	want := []types.CategoryPoint{
		{Name: "0-30 días", Value: 1000},
		{Name: "31-60 días", Value: 2000},
	}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCategoriesLengthMatchesLabels(t *testing.T) {
	cases := []struct {
		name   string
		labels []string
		data   []float64
	}{
		{"equal", []string{"a", "b", "c"}, []float64{1, 2, 3}},
		{"short data", []string{"a", "b", "c"}, []float64{1}},
		{"no data", []string{"a", "b"}, nil},
	}

	for _, tc := range cases {
		got := Categories(&types.LabelValuePayload{Labels: tc.labels, Data: tc.data})
		if len(got) != len(tc.labels) {
			t.Fatalf("%s: len = %d, want %d", tc.name, len(got), len(tc.labels))
		}
		for i, pt := range got {
			if pt.Name != tc.labels[i] {
				t.Fatalf("%s: name %d = %q, want %q", tc.name, i, pt.Name, tc.labels[i])
			}
			if i >= len(tc.data) && pt.Value != 0 {
				t.Fatalf("%s: missing value %d = %v, want 0", tc.name, i, pt.Value)
			}
		}
	}
}

func TestCategoriesEmptyInputs(t *testing.T) {
	if got := Categories(nil); len(got) != 0 {
		t.Fatalf("nil payload produced %d points", len(got))
	}
	if got := Categories(&types.LabelValuePayload{}); len(got) != 0 {
		t.Fatalf("empty payload produced %d points", len(got))
	}
}

func TestKeyedCategoriesPreservesOrder(t *testing.T) {
	var p types.KeyedPayload
	if err := json.Unmarshal([]byte(`{"PET":120.5,"Aluminio":80,"Vidrio":42.2}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := KeyedCategories(&p)
	want := []types.CategoryPoint{
		{Name: "PET", Value: 120.5},
		{Name: "Aluminio", Value: 80},
		{Name: "Vidrio", Value: 42.2},
	}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestKeyedSeriesDefaultsMissingMetrics(t *testing.T) {
	var p types.KeyedPayload
	raw := `{
		"Semana 1": {"esperado": 5000, "real": 4200},
		"Semana 2": {"esperado": 6100}
	}`
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := KeyedSeries(&p, []string{"esperado", "real"})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	if got[0].Label != "Semana 1" || got[0].Fields["real"] != 4200 {
		t.Fatalf("week 1 = %+v", got[0])
	}
	if got[1].Label != "Semana 2" || got[1].Fields["esperado"] != 6100 {
		t.Fatalf("week 2 = %+v", got[1])
	}

	// absent metric must be 0, and present as a field
	val, ok := got[1].Fields["real"]
	if !ok {
		t.Fatalf("missing metric dropped instead of defaulted")
	}
	if val != 0 {
		t.Fatalf("missing metric = %v, want 0", val)
	}
}

func TestStackedSeries(t *testing.T) {
	p := &types.DatasetPayload{
		Labels: []string{"Ene", "Feb", "Mar"},
		Datasets: []types.Dataset{
			{Label: "facturacion", Data: []float64{100, 200, 300}},
			{Label: "cobranza", Data: []float64{90, 180}},
		},
	}

	got := StackedSeries(p)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	if got[1].Fields["facturacion"] != 200 || got[1].Fields["cobranza"] != 180 {
		t.Fatalf("feb = %+v", got[1].Fields)
	}
	if got[2].Fields["cobranza"] != 0 {
		t.Fatalf("short dataset index = %v, want 0", got[2].Fields["cobranza"])
	}
}

func TestSeriesPointMarshalFlattens(t *testing.T) {
	pt := types.SeriesPoint{
		Label:  "Semana 1",
		Fields: map[string]float64{"esperado": 5000, "real": 4200},
	}

	b, err := json.Marshal(pt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"label":"Semana 1","esperado":5000,"real":4200}` {
		t.Fatalf("marshal = %s", b)
	}
}

func TestEmptyKeyedPayloads(t *testing.T) {
	if got := KeyedCategories(nil); len(got) != 0 {
		t.Fatalf("nil keyed payload produced %d points", len(got))
	}

	var p types.KeyedPayload
	if err := json.Unmarshal([]byte(`null`), &p); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if got := KeyedSeries(&p, []string{"x"}); len(got) != 0 {
		t.Fatalf("null keyed payload produced %d points", len(got))
	}
}
