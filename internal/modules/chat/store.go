// README: Session stores holding conversations in process memory or Redis.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"travelchat/internal/types"
)

// Store keeps one Conversation per session. Implementations are safe for
// concurrent use and hand out copies, never shared pointers.
type Store interface {
	Get(ctx context.Context, id types.ID) (*Conversation, error)
	Save(ctx context.Context, id types.ID, conv *Conversation) error
}

type memoryEntry struct {
	conv      *Conversation
	expiresAt time.Time
}

// maxSweepInterval caps how long expired entries may linger between sweeps.
const maxSweepInterval = time.Minute

// MemoryStore is the default Store. Entries idle for longer than ttl are
// dropped on access, and Save sweeps every expired entry at most once per
// sweep interval.
type MemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	entries   map[types.ID]memoryEntry
	nextSweep time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, entries: make(map[types.ID]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.ttl > 0 && s.now().After(e.expiresAt) {
		delete(s.entries, id)
		return nil, ErrNotFound
	}
	e.expiresAt = s.now().Add(s.ttl)
	s.entries[id] = e
	return e.conv.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, id types.ID, conv *Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	s.entries[id] = memoryEntry{conv: conv.Clone(), expiresAt: now.Add(s.ttl)}
	return nil
}

// sweep drops expired entries. Callers hold mu.
func (s *MemoryStore) sweep(now time.Time) {
	if s.ttl <= 0 || now.Before(s.nextSweep) {
		return
	}
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
	s.nextSweep = now.Add(min(s.ttl, maxSweepInterval))
}

const sessionKeyPrefix = "travelchat:session:%s"

// RedisStore keeps conversations as JSON strings with a sliding TTL.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisStore(redis *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: redis, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, id types.ID) (*Conversation, error) {
	raw, err := s.redis.GetEx(ctx, sessionKey(id), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var conv Conversation
	if err := json.Unmarshal(raw, &conv); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", string(id), err)
	}
	if conv.Locations == nil {
		conv.Locations = []string{}
	}
	return &conv, nil
}

func (s *RedisStore) Save(ctx context.Context, id types.ID, conv *Conversation) error {
	raw, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", string(id), err)
	}
	if err := s.redis.Set(ctx, sessionKey(id), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func sessionKey(id types.ID) string {
	return fmt.Sprintf(sessionKeyPrefix, string(id))
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
