package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/immermex/dashboard-api/pkg/types"
)

type fakeBackend struct {
	healthErr  error
	summary    *types.DataSummary
	summaryErr error
}

func (f *fakeBackend) Health(ctx context.Context) error {
	return f.healthErr
}

func (f *fakeBackend) DataSummary(ctx context.Context) (*types.DataSummary, error) {
	return f.summary, f.summaryErr
}

func TestPollHealthy(t *testing.T) {
	b := &fakeBackend{summary: &types.DataSummary{HasData: true, TotalRegistros: 1500}}
	s := NewSupervisor(b, time.Minute, zerolog.Nop())

	s.poll(context.Background())

	st := s.Status()
	if !st.Ready || !st.HasData {
		t.Fatalf("status = %+v", st)
	}
	if st.Summary == nil || st.Summary.TotalRegistros != 1500 {
		t.Fatalf("summary = %+v", st.Summary)
	}
}

func TestPollUnhealthyBackend(t *testing.T) {
	b := &fakeBackend{healthErr: errors.New("connection refused")}
	s := NewSupervisor(b, time.Minute, zerolog.Nop())

	s.poll(context.Background())

	st := s.Status()
	if st.Ready || st.HasData {
		t.Fatalf("status = %+v", st)
	}
	if st.CheckedAt.IsZero() {
		t.Fatal("poll did not record a timestamp")
	}
}

func TestPollSummaryFailureStillReady(t *testing.T) {
	b := &fakeBackend{summaryErr: errors.New("resumen unavailable")}
	s := NewSupervisor(b, time.Minute, zerolog.Nop())

	s.poll(context.Background())

	st := s.Status()
	if !st.Ready {
		t.Fatal("healthy backend reported not ready")
	}
	if st.HasData {
		t.Fatal("has_data set without a summary")
	}
}

func TestStatusBeforeFirstPoll(t *testing.T) {
	s := NewSupervisor(&fakeBackend{}, time.Minute, zerolog.Nop())
	if st := s.Status(); st.Ready {
		t.Fatalf("zero status reports ready: %+v", st)
	}
}
