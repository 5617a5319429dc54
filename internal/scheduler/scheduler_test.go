package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingJob struct {
	name string
	runs atomic.Int32
	err  error
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Run(_ context.Context) error {
	j.runs.Add(1)
	return j.err
}

type fakeCounter struct {
	count int
	err   error
}

func (c fakeCounter) CountWords(_ context.Context) (int, error) { return c.count, c.err }

type fakeGauge struct {
	value int
	set   bool
}

func (g *fakeGauge) SetDictWords(count int) {
	g.value = count
	g.set = true
}

func TestScheduler_RunsJobsUntilCancelled(t *testing.T) {
	failing := &countingJob{name: "failing", err: errors.New("сбой")}
	ok := &countingJob{name: "ok"}

	s := NewScheduler(zap.NewNop())
	s.AddJob(failing)
	s.AddJob(ok)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx, 10*time.Millisecond)
		close(done)
	}()

	// Ошибка первой задачи не мешает второй
	require.Eventually(t, func() bool { return ok.runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, failing.runs.Load(), int32(2))

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("планировщик не остановился")
	}
}

type panickingJob struct{}

func (panickingJob) Name() string { return "panicking" }

func (panickingJob) Run(_ context.Context) error { panic("сломалось") }

func TestScheduler_RunOnce(t *testing.T) {
	after := &countingJob{name: "after"}

	s := NewScheduler(zap.NewNop())
	s.AddJob(panickingJob{})
	s.AddJob(after)

	// Паника задачи не останавливает проход
	assert.NotPanics(t, func() { s.RunOnce(context.Background()) })
	assert.Equal(t, int32(1), after.runs.Load())

	// Отмененный контекст задачи не запускает
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.RunOnce(ctx)
	assert.Equal(t, int32(1), after.runs.Load())
}

func TestDictStatsJob(t *testing.T) {
	gauge := &fakeGauge{}
	job := NewDictStatsJob(fakeCounter{count: 12}, gauge, zap.NewNop())

	require.NoError(t, job.Run(context.Background()))
	assert.True(t, gauge.set)
	assert.Equal(t, 12, gauge.value)
	assert.Equal(t, "dict_stats", job.Name())

	gauge = &fakeGauge{}
	job = NewDictStatsJob(fakeCounter{err: errors.New("нет соединения")}, gauge, zap.NewNop())
	assert.Error(t, job.Run(context.Background()))
	assert.False(t, gauge.set)
}
