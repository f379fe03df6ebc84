package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/immermex/dashboard-api/pkg/types"
)

// Backend is the slice of the compute client the supervisor polls.
type Backend interface {
	Health(ctx context.Context) error
	DataSummary(ctx context.Context) (*types.DataSummary, error)
}

// Status is the last observed state of the compute backend.
type Status struct {
	Ready     bool               `json:"ready"`
	HasData   bool               `json:"has_data"`
	Summary   *types.DataSummary `json:"summary,omitempty"`
	CheckedAt time.Time          `json:"checked_at"`
}

// Supervisor polls the compute backend periodically and keeps the last
// known health and data-availability state for the readiness endpoint.
type Supervisor struct {
	backend   Backend
	interval  time.Duration
	logger    zerolog.Logger
	cancelCtx context.CancelFunc

	mu     sync.RWMutex
	status Status
}

func NewSupervisor(backend Backend, interval time.Duration, logger zerolog.Logger) *Supervisor {
	return &Supervisor{
		backend:  backend,
		interval: interval,
		logger:   logger,
	}
}

func (s *Supervisor) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancelCtx = cancel

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Info().Dur("interval", s.interval).Msg("backend supervisor started")
		s.poll(ctx)

		for {
			select {
			case <-ctx.Done():
				s.logger.Info().Msg("backend supervisor stopped")
				return
			case <-ticker.C:
				s.poll(ctx)
			}
		}
	}()
}

// Stop gracefully stops the background worker.
func (s *Supervisor) Stop() {
	if s.cancelCtx != nil {
		s.cancelCtx()
	}
}

// Status returns the last poll result. Before the first poll completes
// the zero Status reports not-ready.
func (s *Supervisor) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Supervisor) poll(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	st := Status{CheckedAt: time.Now()}

	if err := s.backend.Health(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("compute backend unhealthy")
		s.set(st)
		return
	}
	st.Ready = true

	summary, err := s.backend.DataSummary(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("data summary unavailable")
		s.set(st)
		return
	}
	st.HasData = summary.HasData
	st.Summary = summary

	s.set(st)
}

func (s *Supervisor) set(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}
