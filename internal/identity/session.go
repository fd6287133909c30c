package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoSession 会话表中没有该令牌
var ErrNoSession = errors.New("identity: session not found")

// SessionRecord 已登录令牌对应的会话
type SessionRecord struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (r *SessionRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// SessionStore 以令牌摘要为键保存会话，原始令牌不落盘
type SessionStore interface {
	Save(ctx context.Context, token string, rec SessionRecord) error
	Get(ctx context.Context, token string) (*SessionRecord, error)
	Delete(ctx context.Context, token string) error
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// MemorySessions 单进程使用，重启后会话全部失效
type MemorySessions struct {
	mu       sync.RWMutex
	sessions map[string]SessionRecord
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string]SessionRecord)}
}

func (m *MemorySessions) Save(_ context.Context, token string, rec SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[tokenKey(token)] = rec
	return nil
}

func (m *MemorySessions) Get(_ context.Context, token string) (*SessionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.sessions[tokenKey(token)]
	if !ok {
		return nil, ErrNoSession
	}
	return &rec, nil
}

func (m *MemorySessions) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, tokenKey(token))
	return nil
}

const redisSessionPrefix = "innovation-hub:session:"

// RedisSessions 多实例部署时共享会话，键随令牌过期自动删除
type RedisSessions struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{client: client, now: time.Now}
}

func (r *RedisSessions) Save(ctx context.Context, token string, rec SessionRecord) error {
	ttl := rec.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisSessionPrefix+tokenKey(token), b, ttl).Err()
}

func (r *RedisSessions) Get(ctx context.Context, token string) (*SessionRecord, error) {
	b, err := r.client.Get(ctx, redisSessionPrefix+tokenKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	var rec SessionRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RedisSessions) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, redisSessionPrefix+tokenKey(token)).Err()
}
