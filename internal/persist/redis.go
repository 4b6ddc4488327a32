package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

func init() {
	Register("redis", func(opts Options) (Medium, error) {
		if opts.RedisAddr == "" {
			return nil, errors.New("persist: redis backend needs an address")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		return NewRedis(client, opts.key()), nil
	})
}

// Redis stores the record under one key. Writers to the same key are
// serialized with a redsync mutex so concurrent sessions cannot interleave a
// replace with a delete.
type Redis struct {
	client *redis.Client
	locker *redsync.Redsync
	key    string
}

// NewRedis wraps client. The medium owns the client and closes it.
func NewRedis(client *redis.Client, key string) *Redis {
	if key == "" {
		key = DefaultKey
	}
	pool := goredis.NewPool(client)
	return &Redis{
		client: client,
		locker: redsync.New(pool),
		key:    "labyrinth:" + key,
	}
}

// Name implements Medium.
func (r *Redis) Name() string { return "redis" }

// Read implements Medium.
func (r *Redis) Read(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("persist: redis get %s: %w", r.key, err)
	}
	return data, nil
}

// Write implements Medium.
func (r *Redis) Write(ctx context.Context, data []byte) error {
	return r.locked(ctx, func() error {
		if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
			return fmt.Errorf("persist: redis set %s: %w", r.key, err)
		}
		return nil
	})
}

// Delete implements Medium.
func (r *Redis) Delete(ctx context.Context) error {
	return r.locked(ctx, func() error {
		if err := r.client.Del(ctx, r.key).Err(); err != nil {
			return fmt.Errorf("persist: redis del %s: %w", r.key, err)
		}
		return nil
	})
}

// Close implements Medium.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) locked(ctx context.Context, fn func() error) error {
	mutex := r.locker.NewMutex(r.key + ":lock")
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("persist: lock %s: %w", r.key, err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()
	return fn()
}
