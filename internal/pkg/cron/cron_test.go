package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testScheduler(t *testing.T) *Scheduler {
	t.Helper()
	return New(zap.NewNop())
}

func TestTriggerRecordsOutcome(t *testing.T) {
	s := testScheduler(t)
	s.Register(Job{
		Name:  "noop",
		Every: time.Hour,
		Run:   func(ctx context.Context) error { return nil },
	})

	out, err := s.Outcome("noop")
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, out.Status)

	require.NoError(t, s.Trigger(context.Background(), "noop"))
	assert.Eventually(t, func() bool {
		out, err := s.Outcome("noop")
		return err == nil && out.Status == StatusOK
	}, time.Second, 10*time.Millisecond)
}

func TestTriggerFailureKeepsMessage(t *testing.T) {
	s := testScheduler(t)
	s.Register(Job{
		Name:  "broken",
		Every: time.Hour,
		Run:   func(ctx context.Context) error { return errors.New("disk full") },
	})

	require.NoError(t, s.Trigger(context.Background(), "broken"))
	assert.Eventually(t, func() bool {
		out, err := s.Outcome("broken")
		return err == nil && out.Status == StatusFailed && out.Message == "disk full"
	}, time.Second, 10*time.Millisecond)
}

func TestTriggerUnknownJob(t *testing.T) {
	s := testScheduler(t)
	assert.Error(t, s.Trigger(context.Background(), "nope"))
	_, err := s.Outcome("nope")
	assert.Error(t, err)
}

func TestListSortedByName(t *testing.T) {
	s := testScheduler(t)
	run := func(ctx context.Context) error { return nil }
	s.Register(Job{Name: "zebra", Every: time.Hour, Run: run})
	s.Register(Job{Name: "alpha", Description: "first", Every: time.Hour, Run: run})

	items := s.List()
	require.Len(t, items, 2)
	assert.Equal(t, "alpha", items[0].Name)
	assert.Equal(t, "first", items[0].Description)
	assert.Equal(t, "zebra", items[1].Name)
	assert.Equal(t, StatusIdle, items[0].Status)
}
