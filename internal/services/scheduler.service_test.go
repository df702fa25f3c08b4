package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jobStub struct {
	name     string
	schedule Schedule
	runs     int
	err      error
}

func (j *jobStub) Name() string      { return j.name }
func (j *jobStub) Schedule() Schedule { return j.schedule }

func (j *jobStub) Execute(context.Context) error {
	j.runs++
	return j.err
}

func TestSchedulerService_AddJob(t *testing.T) {
	scheduler := NewSchedulerService()

	require.NoError(t, scheduler.AddJob(&jobStub{name: "nightly", schedule: Nightly}))
	require.NoError(t, scheduler.AddJob(&jobStub{name: "hourly", schedule: Hourly}))
	assert.Error(t, scheduler.AddJob(&jobStub{name: "bogus", schedule: Schedule(42)}))

	assert.Equal(t, 2, scheduler.GetJobCount())
}

func TestSchedulerService_StartStop(t *testing.T) {
	scheduler := NewSchedulerService()

	require.NoError(t, scheduler.Start())
	assert.False(t, scheduler.IsRunning(), "no jobs registered")

	require.NoError(t, scheduler.AddJob(&jobStub{name: "nightly", schedule: Nightly}))
	require.NoError(t, scheduler.Start())
	assert.True(t, scheduler.IsRunning())

	require.NoError(t, scheduler.Stop())
	assert.False(t, scheduler.IsRunning())
	require.NoError(t, scheduler.Stop())
}

func TestSchedulerService_TriggerJobByName(t *testing.T) {
	scheduler := NewSchedulerService()
	job := &jobStub{name: "nightly", schedule: Nightly}
	failing := &jobStub{name: "broken", schedule: Hourly, err: errors.New("nope")}
	require.NoError(t, scheduler.AddJob(job))
	require.NoError(t, scheduler.AddJob(failing))

	require.NoError(t, scheduler.TriggerJobByName(context.Background(), "nightly"))
	assert.Equal(t, 1, job.runs)

	assert.Error(t, scheduler.TriggerJobByName(context.Background(), "broken"))
	assert.Error(t, scheduler.TriggerJobByName(context.Background(), "missing"))
}
