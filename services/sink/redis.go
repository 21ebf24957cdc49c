package sink

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"liontalk/seminarworker/internal/seminar"
	apperrors "liontalk/seminarworker/pkg/errors"
)

// RedisSink publishes each batch result to a Redis stream so downstream
// consumers (the site frontend's refresh job) can pick it up.
type RedisSink struct {
	client    *redis.Client
	stream    string
	maxLength int
}

// NewRedisSink creates a new Redis stream sink
func NewRedisSink(addr string, db int, stream string, maxLength int) *RedisSink {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisSink{
		client:    client,
		stream:    stream,
		maxLength: maxLength,
	}
}

// Write publishes the output collection to the stream. The payload is base64
// encoded so consumers do not have to care about field escaping.
func (s *RedisSink) Write(ctx context.Context, records []seminar.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return apperrors.NewSink("failed to marshal output collection", err)
	}

	encoded := base64.StdEncoding.EncodeToString(data)

	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: int64(s.maxLength),
		Approx: true,
		Values: map[string]interface{}{
			"payload": encoded,
		},
	}).Err()
	if err != nil {
		return apperrors.NewSink("failed to publish to redis stream", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisSink) Close() error {
	return s.client.Close()
}
