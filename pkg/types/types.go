// Package types
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// CategoryPoint is the flat record a single-series categorical chart consumes.
type CategoryPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// SeriesPoint is one period of a multi-series chart: a label plus one
// numeric field per metric. Fields marshals inline next to the label,
// in sorted field order.
type SeriesPoint struct {
	Label  string
	Fields map[string]float64
}

func (p SeriesPoint) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	lbl, err := json.Marshal(p.Label)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`"label":`)
	buf.Write(lbl)

	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(p.Fields[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *SeriesPoint) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Fields = make(map[string]float64, len(raw))
	for k, v := range raw {
		if k == "label" {
			if err := json.Unmarshal(v, &p.Label); err != nil {
				return fmt.Errorf("invalid label: %w", err)
			}
			continue
		}
		var f float64
		if err := json.Unmarshal(v, &f); err != nil {
			return fmt.Errorf("field %q is not numeric: %w", k, err)
		}
		p.Fields[k] = f
	}
	return nil
}

// KPISet holds the headline figures shown above the charts.
type KPISet struct {
	FacturacionTotal    float64 `json:"facturacion_total"`
	CobranzaTotal       float64 `json:"cobranza_total"`
	AnticiposTotal      float64 `json:"anticipos_total"`
	PorcentajeCobrado   float64 `json:"porcentaje_cobrado"`
	TotalFacturas       int     `json:"total_facturas"`
	ClientesUnicos      int     `json:"clientes_unicos"`
	PedidosUnicos       int     `json:"pedidos_unicos"`
	ToneladasTotal      float64 `json:"toneladas_total"`
	RotacionInventario  float64 `json:"rotacion_inventario"`
}

// UploadResult reports how the backend processed an uploaded spreadsheet.
type UploadResult struct {
	UploadID            string `json:"upload_id"`
	Archivo             string `json:"archivo"`
	RegistrosProcesados int    `json:"registros_procesados"`
	RegistrosOmitidos   int    `json:"registros_omitidos"`
}

// DataSummary says whether the backend currently holds any processed data.
type DataSummary struct {
	HasData        bool       `json:"has_data"`
	TotalRegistros int        `json:"total_registros"`
	UltimaCarga    *time.Time `json:"ultima_carga,omitempty"`
}

// FilterSet carries the user-selected query constraints. Zero values mean
// "no filter applied" and are omitted from the query string.
type FilterSet struct {
	FechaInicio string   `json:"fecha_inicio,omitempty"`
	FechaFin    string   `json:"fecha_fin,omitempty"`
	Cliente     string   `json:"cliente,omitempty"`
	Agente      string   `json:"agente,omitempty"`
	Material    string   `json:"material,omitempty"`
	Pedidos     []string `json:"pedidos,omitempty"`
	Mes         *int     `json:"mes,omitempty"`
	Anio        *int     `json:"año,omitempty"`
}

// IsZero reports whether no filter is applied at all.
func (f FilterSet) IsZero() bool {
	return f.FechaInicio == "" && f.FechaFin == "" && f.Cliente == "" &&
		f.Agente == "" && f.Material == "" && len(f.Pedidos) == 0 &&
		f.Mes == nil && f.Anio == nil
}
