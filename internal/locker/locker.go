package locker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes a lease only if the caller still holds it, so
// a handler that outlived its TTL cannot release someone else's lease.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

const retryInterval = 50 * time.Millisecond

// Locker hands out redis-backed lease locks. Check-then-commit
// sequences against the spreadsheet have no transaction to lean on, so
// the dispatcher takes a lease per user id and the reservation path
// takes a lease per project number before reading capacity.
type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a locker whose leases expire after ttl if never released.
func New(client *redis.Client, ttl time.Duration) *Locker {
	return &Locker{client: client, ttl: ttl}
}

// Acquire blocks until the lease for key is taken or ctx expires. The
// returned function releases the lease and is safe to defer.
func (l *Locker) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	lockKey := "lock:" + key

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", lockKey, err)
		}
		if ok {
			return func() { l.release(lockKey, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire %s: %w", lockKey, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *Locker) release(lockKey, token string) {
	// The holding event is already done; releasing gets its own
	// short deadline instead of the (possibly expired) event context.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := releaseScript.Run(ctx, l.client, []string{lockKey}, token).Err(); err != nil && err != redis.Nil {
		log.Printf("release %s: %v", lockKey, err)
	}
}
