package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/redis/go-redis/v9"
)

// JobType identifies the kind of work a queued job carries.
type JobType string

// JobTypeEmailNotification carries task assignment and comment events.
const JobTypeEmailNotification JobType = "email_notification"

const (
	retryQueue = "retry_queue"
	deadQueue  = "dead_queue"
)

// Job is the unit of work pushed through the Redis-backed queues.
type Job struct {
	ID        string                 `json:"id"`
	Type      JobType                `json:"type"`
	Payload   map[string]interface{} `json:"payload"`
	Attempts  int                    `json:"attempts"`
	MaxTries  int                    `json:"max_tries"`
	CreatedAt time.Time              `json:"created_at"`
	ProcessAt time.Time              `json:"process_at"`
}

// HandlerFunc processes a single job. A returned error schedules a retry.
type HandlerFunc func(ctx context.Context, job *Job) error

// WorkerConfig configures a Worker.
type WorkerConfig struct {
	RedisClient  *redis.Client
	Concurrency  int
	PollInterval time.Duration
	Queues       []string
}

// Worker polls the configured queues and dispatches jobs to registered
// handlers. Jobs whose handler fails are pushed to the retry queue until
// their attempt budget is spent, then parked on the dead queue.
type Worker struct {
	client       *redis.Client
	handlers     map[JobType]HandlerFunc
	queues       []string
	pollInterval time.Duration
	concurrency  int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.RWMutex
}

func NewWorker(config WorkerConfig) *Worker {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	if config.PollInterval <= 0 {
		config.PollInterval = time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		client:       config.RedisClient,
		handlers:     make(map[JobType]HandlerFunc),
		queues:       config.Queues,
		pollInterval: config.PollInterval,
		concurrency:  config.Concurrency,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// RegisterHandler binds a handler to a job type. Later registrations for the
// same type replace earlier ones.
func (w *Worker) RegisterHandler(jobType JobType, handler HandlerFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[jobType] = handler
}

// Start launches n polling goroutines.
func (w *Worker) Start(n int) {
	if n <= 0 {
		n = w.concurrency
	}
	log.Printf("🔄 Starting %d worker(s) for queues %v", n, w.queues)

	for i := 0; i < n; i++ {
		w.wg.Add(1)
		go w.run()
	}
}

// Stop cancels the worker context and waits for the polling goroutines.
func (w *Worker) Stop() {
	w.cancel()
	w.wg.Wait()
	log.Println("🛑 Workers stopped")
}

func (w *Worker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if err := w.processNextJob(); err != nil {
				log.Printf("⚠️ Job processing error: %v", err)
			}
		}
	}
}

// processNextJob pops at most one job from the configured queues and runs it.
// An empty queue is not an error. Jobs not yet due are pushed back to the
// queue they came from.
func (w *Worker) processNextJob() error {
	ctx := w.ctx

	for _, queue := range w.queues {
		data, err := w.client.LPop(ctx, queue).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return fmt.Errorf("pop from %s: %w", queue, err)
		}

		var job Job
		if err := json.Unmarshal([]byte(data), &job); err != nil {
			return fmt.Errorf("decode job from %s: %w", queue, err)
		}

		if job.ProcessAt.After(time.Now()) {
			return w.push(ctx, queue, &job)
		}

		w.mu.RLock()
		handler, ok := w.handlers[job.Type]
		w.mu.RUnlock()
		if !ok {
			return fmt.Errorf("no handler registered for job type %s", job.Type)
		}

		if err := handler(ctx, &job); err != nil {
			job.Attempts++
			if job.Attempts >= job.MaxTries {
				log.Printf("💀 Job %s exhausted %d attempts: %v", job.ID, job.Attempts, err)
				return w.push(ctx, deadQueue, &job)
			}
			return w.push(ctx, retryQueue, &job)
		}

		return nil
	}

	return nil
}

func (w *Worker) push(ctx context.Context, queue string, job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job %s: %w", job.ID, err)
	}
	return w.client.RPush(ctx, queue, data).Err()
}

// JobQueue is the producer side of the worker queues.
type JobQueue struct {
	client *redis.Client
}

func NewJobQueue(client *redis.Client) *JobQueue {
	return &JobQueue{client: client}
}

// Enqueue pushes a job for immediate processing.
func (q *JobQueue) Enqueue(queue string, jobType JobType, payload map[string]interface{}) error {
	return q.EnqueueAt(queue, jobType, payload, time.Now())
}

// EnqueueAt pushes a job that becomes due at processAt.
func (q *JobQueue) EnqueueAt(queue string, jobType JobType, payload map[string]interface{}, processAt time.Time) error {
	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("generate job id: %w", err)
	}

	job := Job{
		ID:        id.String(),
		Type:      jobType,
		Payload:   payload,
		Attempts:  0,
		MaxTries:  3,
		CreatedAt: time.Now(),
		ProcessAt: processAt,
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}

	return q.client.RPush(context.Background(), queue, data).Err()
}

// GetQueueSize reports how many jobs are waiting on a queue.
func (q *JobQueue) GetQueueSize(queue string) (int64, error) {
	return q.client.LLen(context.Background(), queue).Result()
}
