package refresh

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
)

// Invalidator is the slice of the fetch layer the watcher needs.
type Invalidator interface {
	InvalidateScope(ctx context.Context, scope string) error
	Clear(ctx context.Context) error
}

// Event announces that the compute backend reprocessed data. A full
// reload drops every cached response; a partial one drops a single scope.
type Event struct {
	Tipo    string `json:"tipo"`
	Scope   string `json:"scope,omitempty"`
	Archivo string `json:"archivo,omitempty"`
}

const (
	EventReload = "reload"
	EventScope  = "scope"
)

type Watcher struct {
	brokers []string
	topic   string
	caches  Invalidator
	logger  zerolog.Logger
}

func NewWatcher(brokers []string, topic string, caches Invalidator, logger zerolog.Logger) *Watcher {
	return &Watcher{
		brokers: brokers,
		topic:   topic,
		caches:  caches,
		logger:  logger,
	}
}

// Run consumes invalidation events until ctx is cancelled. Connection
// failures are retried with a flat delay; the watcher never takes the
// service down.
func (w *Watcher) Run(ctx context.Context) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_8_0_0
	cfg.Consumer.Offsets.Initial = sarama.OffsetNewest

	for {
		if err := w.consume(ctx, cfg); err != nil {
			w.logger.Error().Err(err).Str("topic", w.topic).Msg("refresh consumer failed, reconnecting")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(10 * time.Second):
		}
	}
}

func (w *Watcher) consume(ctx context.Context, cfg *sarama.Config) error {
	consumer, err := sarama.NewConsumer(w.brokers, cfg)
	if err != nil {
		return err
	}
	defer consumer.Close()

	pc, err := consumer.ConsumePartition(w.topic, 0, sarama.OffsetNewest)
	if err != nil {
		return err
	}
	defer pc.Close()

	w.logger.Info().Str("topic", w.topic).Msg("watching for data reloads")

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-pc.Messages():
			if !ok {
				return nil
			}
			w.handle(ctx, msg.Value)
		case err, ok := <-pc.Errors():
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("refresh consumer error")
		}
	}
}

func (w *Watcher) handle(ctx context.Context, raw []byte) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		w.logger.Warn().Err(err).Msg("dropping malformed refresh event")
		return
	}

	switch ev.Tipo {
	case EventScope:
		if ev.Scope == "" {
			w.logger.Warn().Msg("scope event without a scope")
			return
		}
		if err := w.caches.InvalidateScope(ctx, ev.Scope); err != nil {
			w.logger.Error().Err(err).Str("scope", ev.Scope).Msg("scope invalidation failed")
			return
		}
		w.logger.Info().Str("scope", ev.Scope).Msg("cache scope invalidated")
	case EventReload:
		if err := w.caches.Clear(ctx); err != nil {
			w.logger.Error().Err(err).Msg("cache clear failed")
			return
		}
		w.logger.Info().Str("archivo", ev.Archivo).Msg("caches cleared after data reload")
	default:
		w.logger.Warn().Str("tipo", ev.Tipo).Msg("unknown refresh event type")
	}
}
