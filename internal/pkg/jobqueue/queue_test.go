package jobqueue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesOutboxEmail(t *testing.T) {
	client := newIsolatedRedisClient(t)
	ctx := context.Background()
	q := NewQueue(client, 1)
	m := &recordingMailer{}
	outbox := NewOutbox(q, m)

	require.NoError(t, outbox.Send(ctx, "seller@example.com", "Return requested", "body"))
	size, err := q.GetQueueSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), size)

	job, err := q.dequeueJob(ctx, time.Second)
	require.NoError(t, err)
	q.processJob(ctx, job)

	require.Len(t, m.sent, 1)
	assert.Equal(t, "seller@example.com", m.sent[0].To)

	processing, err := q.GetProcessingSize(ctx)
	require.NoError(t, err)
	assert.Zero(t, processing)

	_, err = q.GetJob(ctx, job.ID)
	assert.Error(t, err, "completed jobs are removed")

	stats, err := q.GetJobStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats[JobStatusCompleted])
}

func TestQueueSchedulesRetry(t *testing.T) {
	client := newIsolatedRedisClient(t)
	ctx := context.Background()
	q := NewQueue(client, 1)
	q.Handle(JobTypeSendEmail, func(context.Context, *Job) error { return errors.New("smtp down") })

	enqueued, err := q.Enqueue(ctx, JobTypeSendEmail, EmailJobPayload{To: "s@example.com"})
	require.NoError(t, err)
	job, err := q.dequeueJob(ctx, time.Second)
	require.NoError(t, err)
	q.processJob(ctx, job)

	stored, err := q.GetJob(ctx, enqueued.ID)
	require.NoError(t, err)
	assert.Equal(t, JobStatusRetrying, stored.Status)
	assert.Equal(t, 1, stored.RetryCount)

	n, err := q.promoteDelayed(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n, "retry is not due yet")

	n, err = q.promoteDelayed(ctx, time.Now().Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	size, err := q.GetQueueSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), size)
}

func TestQueueFailsUnknownTypePermanently(t *testing.T) {
	client := newIsolatedRedisClient(t)
	ctx := context.Background()
	q := NewQueue(client, 1)

	enqueued, err := q.Enqueue(ctx, JobType("unknown"), map[string]string{})
	require.NoError(t, err)
	job, err := q.dequeueJob(ctx, time.Second)
	require.NoError(t, err)
	q.processJob(ctx, job)

	stored, err := q.GetJob(ctx, enqueued.ID)
	require.NoError(t, err)
	assert.Equal(t, JobStatusFailed, stored.Status)
	assert.False(t, stored.IsRetryable())

	delayed, err := client.ZCard(ctx, JobDelayedKey).Result()
	require.NoError(t, err)
	assert.Zero(t, delayed)
}

func TestRecoverStuck(t *testing.T) {
	client := newIsolatedRedisClient(t)
	ctx := context.Background()
	q := NewQueue(client, 1)

	enqueued, err := q.Enqueue(ctx, JobTypeSendEmail, EmailJobPayload{To: "s@example.com"})
	require.NoError(t, err)
	job, err := q.dequeueJob(ctx, time.Second)
	require.NoError(t, err)
	job.MarkAsProcessing()
	q.updateJob(ctx, job)

	n, err := q.recoverStuck(ctx, 10*time.Minute, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = q.recoverStuck(ctx, 10*time.Minute, time.Now().Add(11*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stored, err := q.GetJob(ctx, enqueued.ID)
	require.NoError(t, err)
	assert.Equal(t, JobStatusPending, stored.Status)
	size, err := q.GetQueueSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), size)
}

func TestRunStopsOnCancel(t *testing.T) {
	client := newIsolatedRedisClient(t)
	q := NewQueue(client, 2)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- q.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("queue did not stop")
	}
}
