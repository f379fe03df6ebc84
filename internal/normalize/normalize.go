// Package normalize converts raw backend payload shapes into the flat
// records chart components consume. Every function is pure: no I/O, no
// mutation of its input, and a nil or empty payload yields an empty slice
// rather than an error. Output length always equals the number of labels
// or keys in the source; missing numeric values become 0.
package normalize

import (
	"github.com/immermex/dashboard-api/pkg/types"
)

// Categories flattens a parallel label/value payload into one point per
// label. Indices past the end of the data array default to 0.
func Categories(p *types.LabelValuePayload) []types.CategoryPoint {
	if p == nil || len(p.Labels) == 0 {
		return []types.CategoryPoint{}
	}

	out := make([]types.CategoryPoint, len(p.Labels))
	for i, label := range p.Labels {
		var val float64
		if i < len(p.Data) {
			val = p.Data[i]
		}
		out[i] = types.CategoryPoint{Name: label, Value: val}
	}
	return out
}

// KeyedCategories flattens a keyed record of numbers into one point per
// key, in the order the backend sent the keys.
func KeyedCategories(p *types.KeyedPayload) []types.CategoryPoint {
	if p == nil || len(p.Keys) == 0 {
		return []types.CategoryPoint{}
	}

	out := make([]types.CategoryPoint, len(p.Keys))
	for i, key := range p.Keys {
		out[i] = types.CategoryPoint{Name: key, Value: p.Number(key)}
	}
	return out
}

// KeyedSeries flattens a keyed record of sub-objects into one point per
// key, keeping only the requested metrics. A metric absent from a
// sub-object appears as 0, never as a missing field.
func KeyedSeries(p *types.KeyedPayload, metricNames []string) []types.SeriesPoint {
	if p == nil || len(p.Keys) == 0 {
		return []types.SeriesPoint{}
	}

	out := make([]types.SeriesPoint, len(p.Keys))
	for i, key := range p.Keys {
		obj := p.Object(key)
		fields := make(map[string]float64, len(metricNames))
		for _, name := range metricNames {
			fields[name] = obj[name]
		}
		out[i] = types.SeriesPoint{Label: key, Fields: fields}
	}
	return out
}

// StackedSeries merges parallel dataset arrays into one point per label,
// with one field per dataset named by that dataset's label. Datasets
// shorter than the label axis contribute 0 for the missing indices.
func StackedSeries(p *types.DatasetPayload) []types.SeriesPoint {
	if p == nil || len(p.Labels) == 0 {
		return []types.SeriesPoint{}
	}

	out := make([]types.SeriesPoint, len(p.Labels))
	for i, label := range p.Labels {
		fields := make(map[string]float64, len(p.Datasets))
		for _, ds := range p.Datasets {
			var val float64
			if i < len(ds.Data) {
				val = ds.Data[i]
			}
			fields[ds.Label] = val
		}
		out[i] = types.SeriesPoint{Label: label, Fields: fields}
	}
	return out
}
