// Package state persists the small pieces of session continuity the
// dashboard keeps between restarts: the discovered backend path prefix
// and the last-applied filter set.
package state

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/immermex/dashboard-api/pkg/types"
	"github.com/rs/zerolog"
)

const (
	KeyAPIPrefix = "api_prefix"
	KeyFilters   = "filters"
)

// Store is a tiny string KV. Get distinguishes "absent" from "stored
// empty value" via the found flag.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Session wraps a Store with the two typed accessors the rest of the
// service uses. Read failures degrade to "not found": losing session
// continuity is preferable to failing a request over it.
type Session struct {
	kv     Store
	logger zerolog.Logger
}

func NewSession(kv Store, logger zerolog.Logger) *Session {
	return &Session{kv: kv, logger: logger}
}

func (s *Session) APIPrefix(ctx context.Context) (string, bool) {
	val, found, err := s.kv.Get(ctx, KeyAPIPrefix)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read persisted api prefix")
		return "", false
	}
	return val, found
}

func (s *Session) SetAPIPrefix(ctx context.Context, prefix string) error {
	return s.kv.Set(ctx, KeyAPIPrefix, prefix)
}

func (s *Session) Filters(ctx context.Context) (types.FilterSet, bool) {
	val, found, err := s.kv.Get(ctx, KeyFilters)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read persisted filters")
		return types.FilterSet{}, false
	}
	if !found {
		return types.FilterSet{}, false
	}

	var f types.FilterSet
	if err := json.Unmarshal([]byte(val), &f); err != nil {
		s.logger.Warn().Err(err).Msg("persisted filters are malformed, discarding")
		return types.FilterSet{}, false
	}
	return f, true
}

func (s *Session) SetFilters(ctx context.Context, f types.FilterSet) error {
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode filters: %w", err)
	}
	return s.kv.Set(ctx, KeyFilters, string(b))
}

func (s *Session) Close() error {
	return s.kv.Close()
}
