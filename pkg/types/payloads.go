package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LabelValuePayload is the backend's parallel label/value shape.
type LabelValuePayload struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
	Titulo string    `json:"titulo,omitempty"`
}

// Dataset is one named series inside a DatasetPayload.
type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// DatasetPayload is the backend's multi-series shape: shared labels with
// one parallel data array per series.
type DatasetPayload struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
	Titulo   string    `json:"titulo,omitempty"`
}

// KeyedPayload is a JSON object mapping category or period names to values.
// Decoding preserves the key order the backend sent, which Go maps lose.
type KeyedPayload struct {
	Keys   []string
	Values map[string]json.RawMessage
}

func (p *KeyedPayload) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		p.Keys = nil
		p.Values = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("keyed payload: expected object, got %v", tok)
	}

	p.Keys = nil
	p.Values = make(map[string]json.RawMessage)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("keyed payload: non-string key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("keyed payload: value for %q: %w", key, err)
		}

		if _, dup := p.Values[key]; !dup {
			p.Keys = append(p.Keys, key)
		}
		p.Values[key] = raw
	}

	// consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func (p KeyedPayload) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(p.Values))
	for k, v := range p.Values {
		out[k] = v
	}
	return json.Marshal(out)
}

// Number returns the numeric value stored under key, or 0 when the key is
// absent or not numeric.
func (p KeyedPayload) Number(key string) float64 {
	raw, ok := p.Values[key]
	if !ok {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	return f
}

// Object returns the sub-object stored under key as metric name to value,
// or nil when the key is absent or not an object.
func (p KeyedPayload) Object(key string) map[string]float64 {
	raw, ok := p.Values[key]
	if !ok {
		return nil
	}
	var m map[string]float64
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}
