package locker

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/field-sales-api/internal/config"
)

const keyPrefix = "lock:"

type redisLocker struct {
	client  *redislock.Client
	ttl     time.Duration
	options *redislock.Options
}

// NewRedisLocker cria o locker distribuído usado quando há mais de uma instância da API
func NewRedisLocker(rdb redis.UniversalClient, cfg config.Lock) Locker {
	return &redisLocker{
		client: redislock.New(rdb),
		ttl:    cfg.TTL,
		options: &redislock.Options{
			RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(cfg.RetryInterval), cfg.RetryCount),
		},
	}
}

func (l *redisLocker) Obtain(ctx context.Context, key string) (Unlocker, error) {
	lock, err := l.client.Obtain(ctx, keyPrefix+key, l.ttl, l.options)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}
	if err != nil {
		return nil, err
	}
	return lock, nil
}
