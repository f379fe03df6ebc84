package backend

import (
	"context"

	"github.com/immermex/dashboard-api/pkg/types"
)

// KPIs fetches the headline figures for the current filter set.
func (c *Client) KPIs(ctx context.Context, f types.FilterSet) (*types.KPISet, error) {
	var out types.KPISet
	if err := c.getJSON(ctx, "/kpis", queryValues(f), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health checks whether the backend is reachable and responsive.
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Estado string `json:"estado"`
	}
	return c.getJSON(ctx, "/health", nil, &out)
}

// DataSummary reports whether the backend currently holds processed data.
// Polled at startup to decide the initial navigation state.
func (c *Client) DataSummary(ctx context.Context) (*types.DataSummary, error) {
	var out types.DataSummary
	if err := c.getJSON(ctx, "/datos/resumen", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
