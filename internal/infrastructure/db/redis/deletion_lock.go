package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultLockTTL = 30 * time.Second

// releaseScript deletes the key only while it still holds the caller's token,
// so a holder whose TTL expired cannot drop a lock taken over by someone else.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// DeletionLock keeps two replicas from deleting the same account at once.
// Key format: lock:user-delete:<account_id>, value: the holder's token.
type DeletionLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDeletionLock creates a DeletionLock wrapping the given Redis client.
// A non-positive ttl falls back to defaultLockTTL.
func NewDeletionLock(client *redis.Client, ttl time.Duration) *DeletionLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &DeletionLock{client: client, ttl: ttl}
}

// Acquire takes the lock for accountID when it is free. The returned token
// must be passed to Release.
func (l *DeletionLock) Acquire(ctx context.Context, accountID string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key(accountID), token, l.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("deletion lock: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release drops the lock for accountID if it is still held under token.
// Releasing a lock that expired or changed hands is a no-op.
func (l *DeletionLock) Release(ctx context.Context, accountID, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key(accountID)}, token).Err(); err != nil {
		return fmt.Errorf("deletion lock release: %w", err)
	}
	return nil
}

func (l *DeletionLock) key(accountID string) string {
	return fmt.Sprintf("lock:user-delete:%s", accountID)
}
