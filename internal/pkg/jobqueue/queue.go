package jobqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/treido/treido-go/internal/pkg/metrics"
)

const (
	// Redis key prefixes
	JobKeyPrefix     = "job:"
	JobQueueKey      = "job_queue"
	JobProcessingKey = "job_processing"
	JobDelayedKey    = "job_delayed"
	JobStatsKey      = "job_stats"

	// Job settings
	DefaultMaxRetries = 3
	DefaultWorkers    = 2
	JobTTL            = 24 * time.Hour // Jobs expire after 24 hours

	jobTimeout = 30 * time.Second
)

// ErrPermanent marks a job failure that must not be retried.
var ErrPermanent = errors.New("jobqueue: permanent failure")

// Permanent wraps err so the queue fails the job without retrying it.
func Permanent(err error) error {
	return fmt.Errorf("%w: %w", ErrPermanent, err)
}

// Handler processes one job of a registered type.
type Handler func(ctx context.Context, job *Job) error

// Queue manages background jobs using Redis
type Queue struct {
	client     *redis.Client
	workers    int
	retryDelay time.Duration

	mu       sync.RWMutex
	handlers map[JobType]Handler
}

// NewQueue creates a new job queue
func NewQueue(client *redis.Client, workers int) *Queue {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Queue{
		client:     client,
		workers:    workers,
		retryDelay: time.Minute,
		handlers:   make(map[JobType]Handler),
	}
}

// Handle registers the handler for a job type.
func (q *Queue) Handle(jobType JobType, h Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[jobType] = h
}

func (q *Queue) handler(jobType JobType) (Handler, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	h, ok := q.handlers[jobType]
	return h, ok
}

// Run starts the workers and the sweeper and blocks until ctx is cancelled.
func (q *Queue) Run(ctx context.Context) error {
	log.Info().Int("workers", q.workers).Msg("job queue starting")

	var wg sync.WaitGroup
	for i := 0; i < q.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			q.worker(ctx, id)
		}(i)
	}

	// recovers jobs stuck in processing and promotes due retries
	wg.Add(1)
	go func() {
		defer wg.Done()
		q.sweeper(ctx, 10*time.Minute, 15*time.Second)
	}()

	<-ctx.Done()
	wg.Wait()
	log.Info().Msg("job queue stopped")
	return nil
}

func (q *Queue) worker(ctx context.Context, id int) {
	for ctx.Err() == nil {
		job, err := q.dequeueJob(ctx, time.Second)
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			log.Error().Err(err).Int("worker", id).Msg("dequeue failed")
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		// a started job finishes even when shutdown begins
		jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), jobTimeout)
		q.processJob(jobCtx, job)
		cancel()
	}
}

func (q *Queue) sweeper(ctx context.Context, maxAge, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := q.promoteDelayed(ctx, time.Now()); err != nil {
				log.Error().Err(err).Msg("promoting delayed jobs failed")
			} else if n > 0 {
				log.Debug().Int("count", n).Msg("delayed jobs requeued")
			}
			if n, err := q.recoverStuck(ctx, maxAge, time.Now()); err != nil {
				log.Error().Err(err).Msg("recovering stuck jobs failed")
			} else if n > 0 {
				log.Warn().Int("count", n).Msg("stuck jobs requeued")
			}
		}
	}
}

// Enqueue adds a new job with a JSON payload to the queue.
func (q *Queue) Enqueue(ctx context.Context, jobType JobType, payload any) (*Job, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	now := time.Now()
	job := &Job{
		ID:         uuid.New().String(),
		Type:       jobType,
		Status:     JobStatusPending,
		Payload:    raw,
		CreatedAt:  now,
		UpdatedAt:  now,
		MaxRetries: DefaultMaxRetries,
	}
	jobData, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job: %w", err)
	}

	pipe := q.client.TxPipeline()
	pipe.Set(ctx, JobKeyPrefix+job.ID, jobData, JobTTL)
	pipe.LPush(ctx, JobQueueKey, job.ID)
	pipe.HIncrBy(ctx, JobStatsKey, string(JobStatusPending), 1)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to enqueue job: %w", err)
	}

	log.Debug().Str("job_id", job.ID).Str("type", string(job.Type)).Msg("job enqueued")
	return job, nil
}

// dequeueJob moves the next job into the processing list and loads it.
func (q *Queue) dequeueJob(ctx context.Context, timeout time.Duration) (*Job, error) {
	jobID, err := q.client.BLMove(ctx, JobQueueKey, JobProcessingKey, "RIGHT", "LEFT", timeout).Result()
	if err != nil {
		return nil, err
	}

	job, err := q.GetJob(ctx, jobID)
	if err != nil {
		q.removeFromProcessing(ctx, jobID)
		return nil, fmt.Errorf("job %s: %w", jobID, err)
	}
	return job, nil
}

func (q *Queue) processJob(ctx context.Context, job *Job) {
	job.MarkAsProcessing()
	q.updateJob(ctx, job)

	var err error
	if h, ok := q.handler(job.Type); ok {
		err = h(ctx, job)
	} else {
		err = Permanent(fmt.Errorf("unknown job type: %s", job.Type))
	}

	logger := log.With().Str("job_id", job.ID).Str("type", string(job.Type)).Logger()
	switch {
	case err == nil:
		job.MarkAsCompleted()
		q.finish(ctx, job, JobStatusCompleted)
		q.removeCompletedJob(ctx, job.ID)
		logger.Debug().Msg("job completed")
	case errors.Is(err, ErrPermanent):
		job.MarkAsPermanentlyFailed(err.Error())
		q.updateJob(ctx, job)
		q.finish(ctx, job, JobStatusFailed)
		logger.Error().Err(err).Msg("job failed permanently")
	default:
		job.MarkAsFailed(err.Error())
		if !job.IsRetryable() {
			q.updateJob(ctx, job)
			q.finish(ctx, job, JobStatusFailed)
			logger.Error().Err(err).Int("attempts", job.RetryCount).Msg("job failed after retries")
			break
		}
		job.MarkAsRetrying()
		q.updateJob(ctx, job)
		at := time.Now().Add(q.retryDelay * time.Duration(job.RetryCount))
		if zerr := q.client.ZAdd(ctx, JobDelayedKey, redis.Z{Score: float64(at.Unix()), Member: job.ID}).Err(); zerr != nil {
			logger.Error().Err(zerr).Msg("scheduling retry failed")
		}
		metrics.JobsTotal.WithLabelValues(string(job.Type), string(JobStatusRetrying)).Inc()
		logger.Warn().Err(err).Int("attempt", job.RetryCount).Int("max", job.MaxRetries).Msg("job failed, retry scheduled")
	}
	q.removeFromProcessing(ctx, job.ID)
}

func (q *Queue) finish(ctx context.Context, job *Job, status JobStatus) {
	metrics.JobsTotal.WithLabelValues(string(job.Type), string(status)).Inc()
	q.updateJobStats(ctx, status, 1)
}

// promoteDelayed moves retries that are due back to the pending list.
func (q *Queue) promoteDelayed(ctx context.Context, now time.Time) (int, error) {
	ids, err := q.client.ZRangeByScore(ctx, JobDelayedKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.Unix(), 10),
	}).Result()
	if err != nil {
		return 0, err
	}
	moved := 0
	for _, id := range ids {
		// only the caller that removes the member requeues it
		removed, err := q.client.ZRem(ctx, JobDelayedKey, id).Result()
		if err != nil {
			return moved, err
		}
		if removed == 0 {
			continue
		}
		if err := q.client.LPush(ctx, JobQueueKey, id).Err(); err != nil {
			return moved, err
		}
		moved++
	}
	return moved, nil
}

// recoverStuck requeues jobs that stayed in processing longer than maxAge.
func (q *Queue) recoverStuck(ctx context.Context, maxAge time.Duration, now time.Time) (int, error) {
	ids, err := q.client.LRange(ctx, JobProcessingKey, 0, -1).Result()
	if err != nil {
		return 0, err
	}
	recovered := 0
	for _, id := range ids {
		job, err := q.GetJob(ctx, id)
		if err != nil {
			// job data expired or unreadable
			q.removeFromProcessing(ctx, id)
			continue
		}
		if job.Status != JobStatusProcessing {
			q.removeFromProcessing(ctx, id)
			continue
		}
		started := job.UpdatedAt
		if job.ProcessedAt != nil {
			started = *job.ProcessedAt
		}
		if now.Sub(started) <= maxAge {
			continue
		}
		job.Status = JobStatusPending
		job.ErrorMsg = "recovered by sweeper"
		job.UpdatedAt = now
		q.updateJob(ctx, job)
		q.removeFromProcessing(ctx, id)
		if err := q.client.RPush(ctx, JobQueueKey, id).Err(); err != nil {
			return recovered, err
		}
		recovered++
	}
	return recovered, nil
}

func (q *Queue) updateJob(ctx context.Context, job *Job) {
	jobData, err := json.Marshal(job)
	if err != nil {
		log.Error().Err(err).Str("job_id", job.ID).Msg("failed to marshal job")
		return
	}
	if err := q.client.Set(ctx, JobKeyPrefix+job.ID, jobData, JobTTL).Err(); err != nil {
		log.Error().Err(err).Str("job_id", job.ID).Msg("failed to update job")
	}
}

func (q *Queue) removeFromProcessing(ctx context.Context, jobID string) {
	if err := q.client.LRem(ctx, JobProcessingKey, 1, jobID).Err(); err != nil {
		log.Error().Err(err).Str("job_id", jobID).Msg("failed to remove job from processing list")
	}
}

func (q *Queue) removeCompletedJob(ctx context.Context, jobID string) {
	if err := q.client.Del(ctx, JobKeyPrefix+jobID).Err(); err != nil {
		log.Error().Err(err).Str("job_id", jobID).Msg("failed to remove completed job")
	}
}

func (q *Queue) updateJobStats(ctx context.Context, status JobStatus, delta int64) {
	if err := q.client.HIncrBy(ctx, JobStatsKey, string(status), delta).Err(); err != nil {
		log.Error().Err(err).Msg("failed to update job stats")
	}
}

// GetJob retrieves a job by ID
func (q *Queue) GetJob(ctx context.Context, jobID string) (*Job, error) {
	jobData, err := q.client.Get(ctx, JobKeyPrefix+jobID).Bytes()
	if err != nil {
		return nil, err
	}
	var job Job
	if err := json.Unmarshal(jobData, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}

// GetJobStats returns statistics about job statuses
func (q *Queue) GetJobStats(ctx context.Context) (map[JobStatus]int64, error) {
	stats, err := q.client.HGetAll(ctx, JobStatsKey).Result()
	if err != nil {
		return nil, err
	}
	result := make(map[JobStatus]int64, len(stats))
	for status, count := range stats {
		if n, err := strconv.ParseInt(count, 10, 64); err == nil {
			result[JobStatus(status)] = n
		}
	}
	return result, nil
}

// GetQueueSize returns the number of pending jobs
func (q *Queue) GetQueueSize(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, JobQueueKey).Result()
}

// GetProcessingSize returns the number of jobs being processed
func (q *Queue) GetProcessingSize(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, JobProcessingKey).Result()
}
