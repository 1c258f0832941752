package service

import (
	"context"
	"time"

	"school_cms/internal/logger"
	"school_cms/internal/repository"
)

// ReaperService periodically purges expired session rows so they do not
// accumulate forever. Lookups already treat expired rows as absent, so a
// missed tick costs storage, never correctness.
type ReaperService struct {
	sessions repository.Sessions
	log      *logger.Logger
}

func NewReaperService(sessions repository.Sessions, log *logger.Logger) *ReaperService {
	return &ReaperService{sessions: sessions, log: log}
}

// Run ticks at the given interval until ctx is canceled.
func (s *ReaperService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := s.sessions.DeleteExpired(ctx, now.UTC())
			if err != nil {
				if s.log != nil {
					s.log.Errorw("session_reap_failed", "err", err)
				}
				continue
			}
			if n > 0 && s.log != nil {
				s.log.Infow("sessions_reaped", "count", n)
			}
		}
	}
}
