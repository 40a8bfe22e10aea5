package worker

// dlq.go: Dead Letter Queue
// Jobs that exhaust their retries are moved here for manual inspection.
// Uses a Redis list per source queue: dlq:{original_queue}

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const DLQPrefix = "dlq:"

// DLQEntry wraps a failed job with metadata for debugging.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"` // ISO 8601
	Attempts      int             `json:"attempts"`
}

// DeadLetterSink stores jobs that could not be processed.
type DeadLetterSink interface {
	Send(ctx context.Context, entry DLQEntry) error
}

type redisDLQ struct {
	rdb *redis.Client
}

func NewRedisDLQ(rdb *redis.Client) DeadLetterSink {
	return &redisDLQ{rdb: rdb}
}

func (q *redisDLQ) Send(ctx context.Context, entry DLQEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return q.rdb.LPush(ctx, DLQPrefix+entry.OriginalQueue, data).Err()
}

// DLQLength returns the number of entries in a DLQ for monitoring.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
