package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingCompleter struct{ calls atomic.Int32 }

func (c *countingCompleter) CompleteFinishedBookings(context.Context) (int64, error) {
	c.calls.Add(1)
	return 2, nil
}

type recordingCleaner struct {
	retention atomic.Int64
}

func (c *recordingCleaner) CleanExpiredSessions(_ context.Context, retention time.Duration) (int64, error) {
	c.retention.Store(int64(retention))
	return 1, nil
}

func TestAddJob_Validation(t *testing.T) {
	s, err := New(zap.NewNop())
	require.NoError(t, err)
	defer s.Stop()

	_, err = s.AddJob("", "* * * * *", func() {})
	assert.ErrorIs(t, err, ErrEmptyJobName)

	_, err = s.AddJob("sweep", " ", func() {})
	assert.ErrorIs(t, err, ErrEmptyCronExpr)

	_, err = s.AddJob("sweep", "not a cron", func() {})
	assert.Error(t, err)
}

func TestRegisteredJobsRun(t *testing.T) {
	s, err := New(zap.NewNop())
	require.NoError(t, err)

	completer := &countingCompleter{}
	cleaner := &recordingCleaner{}
	require.NoError(t, RegisterCompletionSweep(s, "0 3 * * *", completer))
	require.NoError(t, RegisterSessionCleanup(s, "0 4 * * *", 48*time.Hour, cleaner))

	s.Start()
	for _, job := range s.scheduler.Jobs() {
		require.NoError(t, job.RunNow())
	}

	assert.Eventually(t, func() bool {
		return completer.calls.Load() == 1 && cleaner.retention.Load() == int64(48*time.Hour)
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, s.Stop())
	assert.NoError(t, s.Stop())
}
