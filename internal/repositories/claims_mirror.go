package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"raillo/internal/models"
)

// ClaimsMirror caches decoded token claims keyed by a digest of the token,
// bounded by the token's own expiry. It is a convenience mirror: a miss or
// a Redis failure just means the token gets decoded again.
type ClaimsMirror interface {
	Get(ctx context.Context, token string) (*models.Session, bool)
	Put(ctx context.Context, token string, session *models.Session)
}

type redisClaimsMirror struct {
	client *redis.Client
}

// NewClaimsMirror creates a Redis-backed claims mirror.
func NewClaimsMirror(client *redis.Client) ClaimsMirror {
	if client == nil {
		panic("redis client is required")
	}
	return &redisClaimsMirror{client: client}
}

func claimsKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "session:claims:" + hex.EncodeToString(sum[:16])
}

func (m *redisClaimsMirror) Get(ctx context.Context, token string) (*models.Session, bool) {
	data, err := m.client.Get(ctx, claimsKey(token)).Bytes()
	if err != nil {
		return nil, false
	}
	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, false
	}
	return &session, true
}

func (m *redisClaimsMirror) Put(ctx context.Context, token string, session *models.Session) {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return
	}
	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	// Best effort; identity resolution never depends on the mirror.
	m.client.Set(ctx, claimsKey(token), data, ttl)
}
