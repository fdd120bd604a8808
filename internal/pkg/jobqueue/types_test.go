package jobqueue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobLifecycle(t *testing.T) {
	job := &Job{ID: "j1", Type: JobTypeSendEmail, Status: JobStatusPending, MaxRetries: 2}

	job.MarkAsProcessing()
	assert.Equal(t, JobStatusProcessing, job.Status)
	require.NotNil(t, job.ProcessedAt)

	job.MarkAsFailed("smtp down")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, 1, job.RetryCount)
	assert.True(t, job.IsRetryable())

	job.MarkAsRetrying()
	assert.Equal(t, JobStatusRetrying, job.Status)

	job.MarkAsFailed("smtp down")
	assert.False(t, job.IsRetryable())

	job.MarkAsCompleted()
	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.Empty(t, job.ErrorMsg)
	assert.NotNil(t, job.CompletedAt)
}

func TestMarkAsPermanentlyFailed(t *testing.T) {
	job := &Job{MaxRetries: DefaultMaxRetries}
	job.MarkAsPermanentlyFailed("bad recipient")

	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, DefaultMaxRetries, job.RetryCount)
	assert.False(t, job.IsRetryable())
}

func TestJobDecode(t *testing.T) {
	raw, err := json.Marshal(EmailJobPayload{To: "seller@example.com", Subject: "Hi", Body: "text"})
	require.NoError(t, err)

	job := &Job{Payload: raw}
	var p EmailJobPayload
	require.NoError(t, job.Decode(&p))
	assert.Equal(t, "seller@example.com", p.To)
	assert.Equal(t, "Hi", p.Subject)
}
