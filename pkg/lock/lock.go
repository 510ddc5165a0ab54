// Package lock serializes work on a single key, either inside one process or
// across replicas through redis.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrNotAcquired = errors.New("lock not acquired")

type Locker interface {
	// Lock blocks until key is held or ctx is done. The returned func releases it.
	Lock(ctx context.Context, key string) (func(), error)
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// MemoryLocker is a keyed mutex. Entries are dropped once nobody holds or waits on them.
type MemoryLocker struct {
	mu   sync.Mutex
	keys map[string]*entry
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{keys: make(map[string]*entry)}
}

func (l *MemoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.keys[key]
	if !ok {
		e = &entry{}
		l.keys[key] = e
	}
	e.refs++
	l.mu.Unlock()

	acquired := make(chan struct{})
	go func() {
		e.mu.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
		return func() { l.release(key, e) }, nil
	case <-ctx.Done():
		// hand the mutex back as soon as the goroutine gets it
		go func() {
			<-acquired
			l.release(key, e)
		}()
		return nil, ctx.Err()
	}
}

func (l *MemoryLocker) release(key string, e *entry) {
	e.mu.Unlock()
	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.keys, key)
	}
	l.mu.Unlock()
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

// RedisLocker holds a key with SET NX PX and releases it only if the token still matches.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
	prefix string
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		retry:  25 * time.Millisecond,
		prefix: "lock:",
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.New().String()
	fullKey := l.prefix + key

	for {
		ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				releaseScript.Run(context.Background(), l.client, []string{fullKey}, token)
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ErrNotAcquired
		case <-time.After(l.retry):
		}
	}
}
