// SPDX-License-Identifier: GPL-3.0-only

package scheduler

import (
	"context"
	"time"
	"topup-server/commons"

	"github.com/robfig/cron/v3"
)

const DefaultPurgeSpec = "@every 1h"

type ExpiredSessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// SessionScheduler periodically removes expired sessions.
type SessionScheduler struct {
	cron    *cron.Cron
	spec    string
	store   ExpiredSessionPurger
	timeout time.Duration
}

func NewSessionScheduler(store ExpiredSessionPurger, spec string) *SessionScheduler {
	if spec == "" {
		spec = DefaultPurgeSpec
	}
	return &SessionScheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		spec:    spec,
		store:   store,
		timeout: time.Minute,
	}
}

func (s *SessionScheduler) Start() error {
	entryID, err := s.cron.AddFunc(s.spec, s.PurgeOnce)
	if err != nil {
		commons.Logger.Errorf("Error scheduling session purge: %v", err)
		return err
	}
	s.cron.Start()

	for _, entry := range s.cron.Entries() {
		if entry.ID == entryID {
			commons.Logger.Infof("Session purge scheduled (%s), next run %s", s.spec, entry.Next.Format(time.RFC3339))
		}
	}
	return nil
}

// Stop halts the scheduler and waits for a running purge to finish.
func (s *SessionScheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *SessionScheduler) PurgeOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	purged, err := s.store.PurgeExpired(ctx)
	if err != nil {
		commons.Logger.Errorf("Failed to purge expired sessions: %v", err)
		return
	}
	if purged > 0 {
		commons.Logger.Infof("Purged %d expired sessions", purged)
	}
}
