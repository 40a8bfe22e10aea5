package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pdv/internal/dto"
	"pdv/internal/infra"
	"pdv/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueReceipt    = "jobs:receipt"
	QueueStockAlert = "jobs:stock_alert"

	JobReceipt    = "receipt"
	JobStockAlert = "stock_alert"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Handler processes one job payload. A returned error triggers a retry and,
// once attempts are exhausted, the dead letter queue.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP. Pushes go through a circuit
// breaker so a Redis outage does not slow down every checkout.
type Dispatcher struct {
	rdb *redis.Client
	cb  *infra.CircuitBreaker
}

func NewDispatcher(rdb *redis.Client, cb *infra.CircuitBreaker) *Dispatcher {
	if cb == nil {
		cb = infra.NewCircuitBreaker(infra.DefaultCBConfig())
	}
	return &Dispatcher{rdb: rdb, cb: cb}
}

// SaleRecorded pushes a receipt job for a committed sale.
func (d *Dispatcher) SaleRecorded(ctx context.Context, sale model.Sale) error {
	return d.enqueue(ctx, QueueReceipt, JobReceipt, ReceiptJobPayload{Sale: sale})
}

// StockLow pushes a stock alert job.
func (d *Dispatcher) StockLow(ctx context.Context, alert dto.StockAlert) error {
	return d.enqueue(ctx, QueueStockAlert, JobStockAlert, alert)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.cb.Execute(func() error {
		return d.rdb.LPush(ctx, queue, encoded).Err()
	})
}

// Pool consumes the job queues and routes each job to its Handler by type.
type Pool struct {
	rdb         *redis.Client
	handlers    map[string]Handler
	dlq         DeadLetterSink
	maxAttempts int
	backoff     time.Duration
	errPause    time.Duration // wait after a failed BRPOP
}

func NewPool(rdb *redis.Client, handlers map[string]Handler) *Pool {
	return &Pool{
		rdb:         rdb,
		handlers:    handlers,
		dlq:         NewRedisDLQ(rdb),
		maxAttempts: 3,
		backoff:     time.Second,
		errPause:    2 * time.Second,
	}
}

// Start launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP, so idle workers cost no CPU.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go p.run(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func (p *Pool) run(ctx context.Context, id int) {
	queues := []string{QueueReceipt, QueueStockAlert}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop: waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue // timeout or context cancelled
			}
			if err != nil {
				// Redis is unreachable and BRPOP fails at once; pause instead of spinning.
				log.Warn().Err(err).Int("worker", id).Msg("dequeue failed")
				select {
				case <-ctx.Done():
				case <-time.After(p.errPause):
				}
				continue
			}
			if len(result) < 2 {
				continue
			}
			p.process(ctx, result[0], result[1])
		}
	}
}

func (p *Pool) process(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		quoted, _ := json.Marshal(raw)
		p.deadLetter(ctx, queue, "", quoted, "invalid envelope: "+err.Error(), 0)
		return
	}
	h, ok := p.handlers[job.Type]
	if !ok {
		p.deadLetter(ctx, queue, job.Type, job.Payload, "no handler for job type", 0)
		return
	}

	log.Debug().Str("type", job.Type).Str("queue", queue).Msg("processing job")
	attempts := 0
	err := withRetry(ctx, p.maxAttempts, p.backoff, func(attempt int) error {
		attempts = attempt + 1
		return h.Process(ctx, job.Payload)
	})
	if err != nil {
		p.deadLetter(ctx, queue, job.Type, job.Payload, err.Error(), attempts)
	}
}

func (p *Pool) deadLetter(ctx context.Context, queue, jobType string, payload json.RawMessage, reason string, attempts int) {
	entry := DLQEntry{
		OriginalQueue: queue,
		JobType:       jobType,
		Payload:       payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
		Attempts:      attempts,
	}
	if err := p.dlq.Send(ctx, entry); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to push to DLQ")
		return
	}
	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: job moved to dead letter queue")
}

// withRetry calls fn up to maxAttempts times with exponential backoff
// (base, 2*base, ...). Returns the last error if every attempt fails.
func withRetry(ctx context.Context, maxAttempts int, base time.Duration, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := base * time.Duration(1<<uint(i-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
