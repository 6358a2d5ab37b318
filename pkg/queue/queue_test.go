package queue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	echoCount int64
	failCount int64
)

type echoJob struct {
	Message string `json:"message"`
}

func (j *echoJob) Handle() error {
	atomic.AddInt64(&echoCount, 1)
	return nil
}

type failJob struct{}

func (j *failJob) Handle() error {
	atomic.AddInt64(&failCount, 1)
	return errors.New("boom")
}

func init() {
	retryBackoff = time.Millisecond

	Register("*queue.echoJob", func() Job { return &echoJob{} })
	Register("*queue.failJob", func() Job { return &failJob{} })

	StartWorkers(context.Background(), 2)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestDispatchRunsJob(t *testing.T) {
	before := atomic.LoadInt64(&echoCount)

	require.NoError(t, Dispatch(&echoJob{Message: "hello"}))

	waitFor(t, func() bool { return atomic.LoadInt64(&echoCount) > before })
}

func TestFailingJobRetriesAndLands(t *testing.T) {
	before := atomic.LoadInt64(&failCount)
	failedBefore := len(FailedJobs())

	require.NoError(t, Dispatch(&failJob{}))

	// 3 attempts, then the job is recorded as failed.
	waitFor(t, func() bool { return atomic.LoadInt64(&failCount) >= before+3 })
	waitFor(t, func() bool { return len(FailedJobs()) > failedBefore })

	failed := FailedJobs()
	last := failed[len(failed)-1]
	assert.Equal(t, 3, last.Attempts)
	assert.EqualError(t, last.Err, "boom")
}

func TestDispatchAfterDelaysExecution(t *testing.T) {
	before := atomic.LoadInt64(&echoCount)

	require.NoError(t, DispatchAfter(&echoJob{Message: "later"}, 50*time.Millisecond))

	// Not yet.
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, before, atomic.LoadInt64(&echoCount))

	waitFor(t, func() bool { return atomic.LoadInt64(&echoCount) > before })
}

func TestUnregisteredTypeIsDropped(t *testing.T) {
	// Push a raw envelope for a type nobody registered; the worker must
	// not panic and the queue keeps draining afterwards.
	require.NoError(t, defaultManager.currentDriver().Push(
		[]byte(`{"type":"*queue.ghostJob","payload":{}}`)))

	before := atomic.LoadInt64(&echoCount)
	require.NoError(t, Dispatch(&echoJob{Message: "still alive"}))
	waitFor(t, func() bool { return atomic.LoadInt64(&echoCount) > before })
}

func TestMemoryDriverPopHonoursContext(t *testing.T) {
	d := NewMemoryDriver()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Pop(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
