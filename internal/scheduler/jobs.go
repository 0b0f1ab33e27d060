package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const jobTimeout = time.Minute

// BookingCompleter marks finished confirmed bookings as completed.
type BookingCompleter interface {
	CompleteFinishedBookings(ctx context.Context) (int64, error)
}

// SessionCleaner removes sessions that expired long ago.
type SessionCleaner interface {
	CleanExpiredSessions(ctx context.Context, retention time.Duration) (int64, error)
}

// RegisterCompletionSweep adds the job that completes confirmed bookings
// once their end time has passed.
func RegisterCompletionSweep(s *Scheduler, cronExpr string, completer BookingCompleter) error {
	_, err := s.AddJob("booking_completion_sweep", cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		n, err := completer.CompleteFinishedBookings(ctx)
		if err != nil {
			s.log.Error("Completion sweep failed", zap.Error(err))
			return
		}
		if n > 0 {
			s.log.Info("Completion sweep finished", zap.Int64("completed", n))
		}
	})
	return err
}

// RegisterSessionCleanup adds the job that deletes sessions expired for
// longer than retention.
func RegisterSessionCleanup(s *Scheduler, cronExpr string, retention time.Duration, cleaner SessionCleaner) error {
	_, err := s.AddJob("session_cleanup", cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		n, err := cleaner.CleanExpiredSessions(ctx, retention)
		if err != nil {
			s.log.Error("Session cleanup failed", zap.Error(err))
			return
		}
		s.log.Info("Session cleanup finished", zap.Int64("deleted", n))
	})
	return err
}
