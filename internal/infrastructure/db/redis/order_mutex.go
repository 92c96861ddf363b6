package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	orderLockKey = "todolist:order:lock"
	orderLockTTL = 5 * time.Second
	retryDelay   = 20 * time.Millisecond
)

// OrderMutex serialises the rank read-then-write across service instances
// using SET NX with a TTL. The TTL bounds how long a crashed holder can
// block other writers.
type OrderMutex struct {
	client *redis.Client
}

func NewOrderMutex(client *redis.Client) *OrderMutex {
	return &OrderMutex{client: client}
}

// Acquire blocks until the lock is held or ctx is done. The returned
// release deletes the lock only if this caller still holds it.
func (m *OrderMutex) Acquire(ctx context.Context) (func(), error) {
	token := lockToken()
	for {
		ok, err := m.client.SetNX(ctx, orderLockKey, token, orderLockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("order lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	release := func() {
		// Best effort: the check-then-delete is not atomic, but the
		// TTL caps the damage of releasing a lock that expired and
		// was re-acquired in between.
		val, err := m.client.Get(context.Background(), orderLockKey).Result()
		if err == nil && val == token {
			_ = m.client.Del(context.Background(), orderLockKey).Err()
		}
	}
	return release, nil
}

func lockToken() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
