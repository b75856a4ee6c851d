// Package userlock serializes subscription mutations per user with a
// short-lived Redis lease.
package userlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrLocked is returned when another request holds the user's lease.
var ErrLocked = errors.New("user is locked by another operation")

const defaultTTL = 10 * time.Second

type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLocker(client *redis.Client) *Locker {
	return &Locker{client: client, ttl: defaultTTL}
}

// Acquire takes the lease for the user. The caller must Release it; the
// TTL bounds the damage if it never does.
func (l *Locker) Acquire(ctx context.Context, userID int64) error {
	ok, err := l.client.SetNX(ctx, l.key(userID), 1, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire user lock: %w", err)
	}
	if !ok {
		return ErrLocked
	}
	return nil
}

// Release drops the lease. Safe to call on an expired lease.
func (l *Locker) Release(ctx context.Context, userID int64) error {
	return l.client.Del(ctx, l.key(userID)).Err()
}

func (l *Locker) key(userID int64) string {
	return fmt.Sprintf("userlock:%d", userID)
}
