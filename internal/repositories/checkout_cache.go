package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"raillo/internal/models"
)

// CheckoutCache is the short-lived store bridging the booking flow and the
// payment flow across page loads. It holds the in-progress reservation
// draft, the sealed guest identity, and nothing else; entries expire on
// their own and are cleared explicitly once a payment record is confirmed.
type CheckoutCache interface {
	SaveDraft(ctx context.Context, sessionID string, draft *models.ReservationDraft) error
	Draft(ctx context.Context, sessionID string) (*models.ReservationDraft, error)
	SaveGuestIdentity(ctx context.Context, sessionID string, guest *models.GuestIdentity) error
	GuestIdentity(ctx context.Context, sessionID string) (*models.GuestIdentity, error)
	Keys(ctx context.Context, sessionID string) ([]string, error)
	Clear(ctx context.Context, sessionID string) error
}

type redisCheckoutCache struct {
	client *redis.Client
	sealer *Sealer
	ttl    time.Duration
}

// NewCheckoutCache creates a Redis-backed checkout cache. The sealer is
// required: guest identities are never stored in the clear.
func NewCheckoutCache(client *redis.Client, sealer *Sealer, ttl time.Duration) CheckoutCache {
	if client == nil {
		panic("redis client is required")
	}
	if sealer == nil {
		panic("sealer is required")
	}
	if ttl == 0 {
		ttl = 30 * time.Minute
	}
	return &redisCheckoutCache{client: client, sealer: sealer, ttl: ttl}
}

func draftKey(sessionID string) string {
	return "checkout:draft:" + sessionID
}

func guestKey(sessionID string) string {
	return "checkout:guest:" + sessionID
}

func (c *redisCheckoutCache) SaveDraft(ctx context.Context, sessionID string, draft *models.ReservationDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, draftKey(sessionID), data, c.ttl).Err()
}

func (c *redisCheckoutCache) Draft(ctx context.Context, sessionID string) (*models.ReservationDraft, error) {
	data, err := c.client.Get(ctx, draftKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var draft models.ReservationDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (c *redisCheckoutCache) SaveGuestIdentity(ctx context.Context, sessionID string, guest *models.GuestIdentity) error {
	data, err := json.Marshal(guest)
	if err != nil {
		return err
	}
	sealed, err := c.sealer.Seal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, guestKey(sessionID), sealed, c.ttl).Err()
}

func (c *redisCheckoutCache) GuestIdentity(ctx context.Context, sessionID string) (*models.GuestIdentity, error) {
	sealed, err := c.client.Get(ctx, guestKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	data, err := c.sealer.Open(sealed)
	if err != nil {
		return nil, err
	}
	var guest models.GuestIdentity
	if err := json.Unmarshal(data, &guest); err != nil {
		return nil, err
	}
	return &guest, nil
}

// Keys lists the live checkout keys for a session. Diagnostics only.
func (c *redisCheckoutCache) Keys(ctx context.Context, sessionID string) ([]string, error) {
	var keys []string
	for _, key := range []string{draftKey(sessionID), guestKey(sessionID)} {
		n, err := c.client.Exists(ctx, key).Result()
		if err != nil {
			return nil, err
		}
		if n > 0 {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (c *redisCheckoutCache) Clear(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, draftKey(sessionID), guestKey(sessionID)).Err()
}
