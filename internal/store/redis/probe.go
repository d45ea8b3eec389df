package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trusteddatanow/catalog/internal/probe"
)

// Store caches probe outcomes keyed by canonical URL. The TTL equals the
// recheck window, so any hit is by definition fresh. It implements
// probe.OutcomeCache.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a probe cache with the given TTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Get retrieves a cached outcome. A miss is (nil, false, nil).
func (s *Store) Get(ctx context.Context, url string) (*probe.Outcome, bool, error) {
	raw, err := s.client.Get(ctx, ProbeKey(url)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached outcome: %w", err)
	}

	var out probe.Outcome
	if err := json.Unmarshal(raw, &out); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, false, nil
	}
	return &out, true, nil
}

// Set caches an outcome for the TTL.
func (s *Store) Set(ctx context.Context, url string, out *probe.Outcome) error {
	raw, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to encode outcome: %w", err)
	}
	if err := s.client.Set(ctx, ProbeKey(url), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache outcome: %w", err)
	}
	return nil
}

// Flush removes all cached outcomes.
func (s *Store) Flush(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, KeyPrefixProbe+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush probe cache: %w", err)
	}
	return nil
}
