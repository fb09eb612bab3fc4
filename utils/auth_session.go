package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrSessionNotCached is returned when a token has no live entry in the auth cache.
var ErrSessionNotCached = errors.New("session not found in auth cache")

// AuthSession is the cached record behind a bearer token.
type AuthSession struct {
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId,omitempty"` // empty for demo sessions
	Demo      bool      `json:"demo"`
	CreatedAt time.Time `json:"createdAt"`
}

func authSessionKey(token string) string {
	return AuthCachePrefix + HashToken(token)
}

// SaveAuthSession stores the session under the hashed token with the given TTL.
func SaveAuthSession(ctx context.Context, client *redis.Client, token string, session AuthSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal auth session: %w", err)
	}
	if err := client.Set(ctx, authSessionKey(token), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save auth session: %w", err)
	}
	return nil
}

// GetAuthSession looks up the session behind a token.
func GetAuthSession(ctx context.Context, client *redis.Client, token string) (*AuthSession, error) {
	data, err := client.Get(ctx, authSessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotCached
	}
	if err != nil {
		return nil, err
	}
	var session AuthSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth session: %w", err)
	}
	return &session, nil
}

// DeleteAuthSession revokes a token.
func DeleteAuthSession(ctx context.Context, client *redis.Client, token string) error {
	return client.Del(ctx, authSessionKey(token)).Err()
}

// TokenCache stores live session tokens.
type TokenCache interface {
	Save(ctx context.Context, token string, session AuthSession, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (*AuthSession, error)
	Delete(ctx context.Context, token string) error
}

// RedisTokenCache is the TokenCache backed by the auth redis database.
type RedisTokenCache struct {
	Client *redis.Client
}

func (r RedisTokenCache) Save(ctx context.Context, token string, session AuthSession, ttl time.Duration) error {
	return SaveAuthSession(ctx, r.Client, token, session, ttl)
}

func (r RedisTokenCache) Lookup(ctx context.Context, token string) (*AuthSession, error) {
	return GetAuthSession(ctx, r.Client, token)
}

func (r RedisTokenCache) Delete(ctx context.Context, token string) error {
	return DeleteAuthSession(ctx, r.Client, token)
}

// MemoryTokenCache keeps tokens in process. Entries never expire.
type MemoryTokenCache struct {
	mu       sync.Mutex
	sessions map[string]AuthSession
}

func NewMemoryTokenCache() *MemoryTokenCache {
	return &MemoryTokenCache{sessions: make(map[string]AuthSession)}
}

func (m *MemoryTokenCache) Save(_ context.Context, token string, session AuthSession, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[HashToken(token)] = session
	return nil
}

func (m *MemoryTokenCache) Lookup(_ context.Context, token string) (*AuthSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[HashToken(token)]
	if !ok {
		return nil, ErrSessionNotCached
	}
	return &s, nil
}

func (m *MemoryTokenCache) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, HashToken(token))
	return nil
}
