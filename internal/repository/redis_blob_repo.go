package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type redisBlobRepo struct{ rdb *redis.Client }

// NewRedisBlobRepository stores each key as a plain Redis string without TTL.
func NewRedisBlobRepository(rdb *redis.Client) StateBlobRepository {
	return &redisBlobRepo{rdb: rdb}
}

func (r *redisBlobRepo) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrBlobNotFound
	}
	return b, err
}

func (r *redisBlobRepo) Put(ctx context.Context, key string, data []byte) error {
	return r.rdb.Set(ctx, key, data, 0).Err()
}
