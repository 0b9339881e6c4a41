package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/slicehaus/slicehaus-backend/pkg/logger"
	"github.com/slicehaus/slicehaus-backend/pkg/redis"
)

// DefaultTTL is how long an untouched cart survives in redis. Every
// save refreshes it.
const DefaultTTL = 7 * 24 * time.Hour

// Store persists carts as one JSON blob per owner. The cart is a
// convenience cache, not a system of record: a missing, unreadable, or
// corrupt blob degrades to an empty cart instead of failing the
// request.
type Store struct {
	rdb  *redis.Client
	ttl  time.Duration
	logg *logger.Logger
}

func NewStore(rdb *redis.Client, ttl time.Duration, logg *logger.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{rdb: rdb, ttl: ttl, logg: logg}
}

// Load fetches the owner's cart. Unreachable redis or a corrupt blob
// logs a warning and returns the empty cart.
func (s *Store) Load(ctx context.Context, ownerID string) Cart {
	raw, err := s.rdb.Get(ctx, s.rdb.CartKey(ownerID))
	if err != nil {
		if !redis.IsNil(err) {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"cartId": ownerID,
				"error":  err.Error(),
			}), "cart.load.degraded")
		}
		return Empty()
	}

	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"cartId": ownerID,
			"error":  err.Error(),
		}), "cart.load.corrupt")
		return Empty()
	}
	if c.Items == nil {
		c.Items = []Item{}
	}
	return c
}

// Save writes the cart blob, last write wins.
func (s *Store) Save(ctx context.Context, ownerID string, c Cart) error {
	blob, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.rdb.CartKey(ownerID), blob, s.ttl)
}

// Delete drops the owner's cart entirely.
func (s *Store) Delete(ctx context.Context, ownerID string) error {
	return s.rdb.Del(ctx, s.rdb.CartKey(ownerID))
}
