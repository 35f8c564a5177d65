package cache

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"
)

// UnreadCounter caches per-user unread totals. A nil *UnreadCounter is valid
// and never hits, so callers need no enabled check.
type UnreadCounter struct {
	cache Cache
	ttl   time.Duration
}

func NewUnreadCounter(c Cache, ttl time.Duration) *UnreadCounter {
	if c == nil {
		return nil
	}
	return &UnreadCounter{cache: c, ttl: ttl}
}

func unreadKey(userID uint64) string {
	return fmt.Sprintf("unread:%d", userID)
}

// Get returns the cached total and whether it was present.
func (u *UnreadCounter) Get(ctx context.Context, userID uint64) (int64, bool) {
	if u == nil {
		return 0, false
	}
	raw, err := u.cache.Get(ctx, unreadKey(userID))
	if err != nil {
		if err != ErrMiss {
			log.Printf("unread cache get failed for user %d: %v", userID, err)
		}
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("unread cache holds garbage for user %d: %q", userID, raw)
		return 0, false
	}
	return n, true
}

func (u *UnreadCounter) Put(ctx context.Context, userID uint64, total int64) {
	if u == nil {
		return
	}
	if err := u.cache.Set(ctx, unreadKey(userID), strconv.FormatInt(total, 10), u.ttl); err != nil {
		log.Printf("unread cache set failed for user %d: %v", userID, err)
	}
}

// Invalidate drops the cached totals of the given users.
func (u *UnreadCounter) Invalidate(ctx context.Context, userIDs ...uint64) {
	if u == nil || len(userIDs) == 0 {
		return
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = unreadKey(id)
	}
	if _, err := u.cache.Del(ctx, keys...); err != nil {
		log.Printf("unread cache invalidate failed for users %v: %v", userIDs, err)
	}
}
