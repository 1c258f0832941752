package service

import (
	"context"
	"testing"
	"time"

	"school_cms/internal/models"
)

func TestReaper_PurgesExpiredRowsAndStopsOnCancel(t *testing.T) {
	sessions := newMockSessionsRepo()
	now := time.Now().UTC()
	sessions.store["live"] = models.Session{ID: "live", UserID: 1, ExpiresAt: now.Add(time.Hour)}
	sessions.store["dead1"] = models.Session{ID: "dead1", UserID: 1, ExpiresAt: now.Add(-time.Minute)}
	sessions.store["dead2"] = models.Session{ID: "dead2", UserID: 2, ExpiresAt: now.Add(-time.Hour)}

	svc := NewReaperService(sessions, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for len(sessions.store) > 1 {
		select {
		case <-deadline:
			t.Fatalf("expired sessions not reaped, %d rows left", len(sessions.store))
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}

	if _, ok := sessions.store["live"]; !ok {
		t.Fatal("live session was reaped")
	}
}
