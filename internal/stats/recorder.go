package stats

import (
	"context"
	"fmt"
	"strconv"

	commonerrors "craft-assistant/internal/common/errors"

	"github.com/redis/go-redis/v9"
)

const (
	resolversKey = "resolvers"
	statusKey    = "status"
)

// Recorder counts which resolver answered and with what status.
type Recorder interface {
	Record(ctx context.Context, resolver, status string) error
	Counts(ctx context.Context) (*Snapshot, error)
}

// Snapshot is a point-in-time read of the counters.
type Snapshot struct {
	Resolvers map[string]int64 `json:"resolvers"`
	Statuses  map[string]int64 `json:"statuses"`
}

// RedisRecorder keeps one hash per dimension under a shared key prefix.
type RedisRecorder struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisRecorder(client redis.UniversalClient, prefix string) *RedisRecorder {
	return &RedisRecorder{client: client, prefix: prefix}
}

func (r *RedisRecorder) ResolversKey() string {
	return r.prefix + resolversKey
}

func (r *RedisRecorder) StatusKey() string {
	return r.prefix + statusKey
}

func (r *RedisRecorder) Record(ctx context.Context, resolver, status string) error {
	if err := r.client.HIncrBy(ctx, r.ResolversKey(), resolver, 1).Err(); err != nil {
		return commonerrors.NewStatsUnavailableError(err)
	}
	if err := r.client.HIncrBy(ctx, r.StatusKey(), status, 1).Err(); err != nil {
		return commonerrors.NewStatsUnavailableError(err)
	}
	return nil
}

func (r *RedisRecorder) Counts(ctx context.Context) (*Snapshot, error) {
	resolvers, err := r.readHash(ctx, r.ResolversKey())
	if err != nil {
		return nil, err
	}
	statuses, err := r.readHash(ctx, r.StatusKey())
	if err != nil {
		return nil, err
	}
	return &Snapshot{Resolvers: resolvers, Statuses: statuses}, nil
}

func (r *RedisRecorder) readHash(ctx context.Context, key string) (map[string]int64, error) {
	raw, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, commonerrors.NewStatsUnavailableError(err)
	}

	out := make(map[string]int64, len(raw))
	for field, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("stats field %s/%s is not a counter: %w", key, field, err)
		}
		out[field] = n
	}
	return out, nil
}
