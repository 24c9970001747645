package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"slotbook/models"
)

const sessionKeyPrefix = "booking:session:"

// RedisSessionStore keeps booking sessions as JSON values with a TTL, so
// abandoned sessions evict themselves without a cleanup timer.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(clientID string) string {
	return sessionKeyPrefix + clientID
}

func (s *RedisSessionStore) Get(ctx context.Context, clientID string) (*models.BookingSession, error) {
	data, err := s.client.Get(ctx, sessionKey(clientID)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.ClientID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Clear(ctx context.Context, clientID string) error {
	if err := s.client.Del(ctx, sessionKey(clientID)).Err(); err != nil {
		return fmt.Errorf("failed to clear booking session: %w", err)
	}
	return nil
}

// MemorySessionStore is the in-process SessionStore, used in tests and
// single-node setups without redis.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memorySession
}

type memorySession struct {
	session   models.BookingSession
	expiresAt time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{ttl: ttl, sessions: make(map[string]memorySession)}
}

func (s *MemorySessionStore) Get(ctx context.Context, clientID string) (*models.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[clientID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.sessions, clientID)
		return nil, ErrSessionNotFound
	}
	session := entry.session
	return &session, nil
}

func (s *MemorySessionStore) Set(ctx context.Context, session *models.BookingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ClientID] = memorySession{
		session:   *session,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemorySessionStore) Clear(ctx context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, clientID)
	return nil
}
