package backend

import (
	"context"

	"github.com/immermex/dashboard-api/pkg/types"
)

// Chart series endpoints. Each returns the backend's raw payload shape;
// normalization into chart-ready records happens one layer up.

// AgingCartera fetches receivables bucketed by days outstanding.
func (c *Client) AgingCartera(ctx context.Context, f types.FilterSet) (*types.LabelValuePayload, error) {
	var out types.LabelValuePayload
	if err := c.getJSON(ctx, "/graficas/aging", queryValues(f), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TopClientes fetches invoiced amount per client, largest first.
func (c *Client) TopClientes(ctx context.Context, f types.FilterSet) (*types.LabelValuePayload, error) {
	var out types.LabelValuePayload
	if err := c.getJSON(ctx, "/graficas/top-clientes", queryValues(f), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConsumoMaterial fetches consumed tonnage per material.
func (c *Client) ConsumoMaterial(ctx context.Context, f types.FilterSet) (*types.KeyedPayload, error) {
	var out types.KeyedPayload
	if err := c.getJSON(ctx, "/graficas/consumo-material", queryValues(f), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CobranzaSemanal fetches expected vs. actual collections per week. Each
// key is a week label; each value holds the per-metric amounts.
func (c *Client) CobranzaSemanal(ctx context.Context, f types.FilterSet) (*types.KeyedPayload, error) {
	var out types.KeyedPayload
	if err := c.getJSON(ctx, "/graficas/cobranza-semanal", queryValues(f), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TendenciaMensual fetches the month-by-month invoicing and collection
// series that feed the stacked trend chart.
func (c *Client) TendenciaMensual(ctx context.Context, f types.FilterSet) (*types.DatasetPayload, error) {
	var out types.DatasetPayload
	if err := c.getJSON(ctx, "/graficas/tendencia-mensual", queryValues(f), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
