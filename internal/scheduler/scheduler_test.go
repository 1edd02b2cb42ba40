package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestScheduleRegistersJob(t *testing.T) {
	s := NewScheduler(quietLogger())

	id, err := s.Schedule("refresh", "0 */6 * * *", JobFunc(func(context.Context) error { return nil }))
	require.NoError(t, err)
	require.Len(t, s.Entries(), 1)
	assert.Equal(t, id, s.Entries()[0].ID)
	assert.True(t, s.GetNextRun().IsZero())

	require.NoError(t, s.Start())
	defer s.Stop()
	assert.True(t, s.IsRunning())
	assert.False(t, s.GetNextRun().IsZero())
	assert.Equal(t, 0, s.GetNextRun().Minute())

	_, err = s.Schedule("late", "@hourly", JobFunc(func(context.Context) error { return nil }))
	assert.Error(t, err)
	assert.Error(t, s.Start())
	assert.Error(t, s.RemoveJob(id))
}

func TestScheduleRejectsBadExpression(t *testing.T) {
	s := NewScheduler(quietLogger())
	_, err := s.Schedule("refresh", "every tuesday", JobFunc(func(context.Context) error { return nil }))
	assert.Error(t, err)
	assert.Error(t, s.Start())
}

func TestScheduledJobRuns(t *testing.T) {
	s := NewScheduler(quietLogger())
	s.SetJobTimeout(time.Second)

	var runs int32
	done := make(chan struct{}, 1)
	_, err := s.Schedule("refresh", "@every 1s", JobFunc(func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		if atomic.AddInt32(&runs, 1) == 1 {
			done <- struct{}{}
		}
		return errors.New("failures are logged, not fatal")
	}))
	require.NoError(t, err)
	require.NoError(t, s.Start())

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}
	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.GreaterOrEqual(t, atomic.LoadInt32(&runs), int32(1))
}

func TestRemoveJob(t *testing.T) {
	s := NewScheduler(quietLogger())
	id, err := s.Schedule("refresh", "@daily", JobFunc(func(context.Context) error { return nil }))
	require.NoError(t, err)

	require.NoError(t, s.RemoveJob(id))
	assert.Empty(t, s.Entries())
	assert.Error(t, s.Start())
}
