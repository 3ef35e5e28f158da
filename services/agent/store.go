package agent

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"slotbot/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "chat:session:"

// SessionStore persists per-conversation session state between turns.
type SessionStore interface {
	Get(ctx context.Context, conversationID string) (*models.SessionState, error)
	Set(ctx context.Context, conversationID string, sess *models.SessionState) error
}

// RedisSessionStore keeps sessions in Redis with a sliding TTL, so idle
// conversations expire on their own.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, conversationID string) (*models.SessionState, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+conversationID).Result()
	if err == redis.Nil {
		return &models.SessionState{}, nil
	}
	if err != nil {
		return nil, err
	}
	var sess models.SessionState
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, conversationID string, sess *models.SessionState) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+conversationID, b, s.ttl).Err()
}

// MemorySessionStore is the in-process fallback used when Redis is not
// configured. Sessions live for the lifetime of the process.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.SessionState
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]models.SessionState)}
}

func (s *MemorySessionStore) Get(ctx context.Context, conversationID string) (*models.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := s.sessions[conversationID]
	return &sess, nil
}

func (s *MemorySessionStore) Set(ctx context.Context, conversationID string, sess *models.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[conversationID] = *sess
	return nil
}
