package backend

import (
	"context"
	"fmt"

	"github.com/immermex/dashboard-api/pkg/types"
)

// Filter option catalogs. The dropdowns in the dashboard are populated
// from these lists; all accept the current filter set so the options can
// narrow each other down.

func (c *Client) catalog(ctx context.Context, name string, f types.FilterSet) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, fmt.Sprintf("/filtros/%s", name), queryValues(f), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Clientes(ctx context.Context, f types.FilterSet) ([]string, error) {
	return c.catalog(ctx, "clientes", f)
}

func (c *Client) Agentes(ctx context.Context, f types.FilterSet) ([]string, error) {
	return c.catalog(ctx, "agentes", f)
}

func (c *Client) Materiales(ctx context.Context, f types.FilterSet) ([]string, error) {
	return c.catalog(ctx, "materiales", f)
}

func (c *Client) Pedidos(ctx context.Context, f types.FilterSet) ([]string, error) {
	return c.catalog(ctx, "pedidos", f)
}

// MesesDisponibles lists the year-month periods covered by loaded data.
func (c *Client) MesesDisponibles(ctx context.Context) ([]string, error) {
	return c.catalog(ctx, "meses", types.FilterSet{})
}
