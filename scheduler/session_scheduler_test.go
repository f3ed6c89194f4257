package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) PurgeExpired(context.Context) (int64, error) {
	p.calls.Add(1)
	return 2, p.err
}

func TestPurgeOnceCallsStore(t *testing.T) {
	p := &countingPurger{}
	s := NewSessionScheduler(p, "")
	s.PurgeOnce()

	if got := p.calls.Load(); got != 1 {
		t.Errorf("Expected one purge, got %d", got)
	}

	p.err = errors.New("database is locked")
	s.PurgeOnce()
	if got := p.calls.Load(); got != 2 {
		t.Errorf("Expected purge errors to be tolerated, got %d calls", got)
	}
}

func TestStartRejectsBadSpec(t *testing.T) {
	s := NewSessionScheduler(&countingPurger{}, "not a schedule")
	if err := s.Start(); err == nil {
		t.Error("Expected invalid cron spec to be rejected")
	}
}

func TestStartAndStop(t *testing.T) {
	s := NewSessionScheduler(&countingPurger{}, "@every 1h")
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if len(s.cron.Entries()) != 1 {
		t.Errorf("Expected one scheduled entry, got %d", len(s.cron.Entries()))
	}
	s.Stop()
}
