package ratelimit

import (
	"context"
	"time"

	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// Memory is a fixed window limiter kept in process memory. It is used when no
// Redis is configured, so limits are per replica.
type Memory struct {
	l *limiter.Limiter
}

// NewMemory allows max events per window and key.
func NewMemory(window time.Duration, max int) *Memory {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	store := memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          "bouquet",
		CleanUpInterval: window,
	})
	return &Memory{l: limiter.New(store, limiter.Rate{Period: window, Limit: int64(max)})}
}

func (m *Memory) Allow(ctx context.Context, key string) (Decision, error) {
	res, err := m.l.Get(ctx, key)
	if err != nil {
		return Decision{}, err
	}
	return Decision{
		Allowed:   !res.Reached,
		Limit:     int(res.Limit),
		Remaining: int(res.Remaining),
		ResetAt:   time.Unix(res.Reset, 0),
	}, nil
}
