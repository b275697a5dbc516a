package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/mthtitumir/spotfly/internal/domain"
	"github.com/mthtitumir/spotfly/internal/infrastructure/timeutil"
)

// RedisStore keeps each client's recent searches in a Redis list so history
// survives restarts and is shared across instances.
type RedisStore struct {
	client *redis.Client
	clock  timeutil.Clock
	ttl    time.Duration
}

// NewRedisStore wraps an existing Redis client. Each client's history
// expires ttl after its last search; a non-positive ttl keeps it forever.
func NewRedisStore(client *redis.Client, clock timeutil.Clock, ttl time.Duration) *RedisStore {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &RedisStore{client: client, clock: clock, ttl: ttl}
}

// Connect dials Redis at addr and verifies the connection with a ping.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis at %s: %w", addr, err)
	}
	return client, nil
}

var _ RecentSearches = (*RedisStore)(nil)

func recentKey(clientID string) string {
	return "recent:" + clientID
}

// Add pushes the search to the front of the client's list, removing any
// earlier entry with the same criteria, and trims to MaxEntries.
func (r *RedisStore) Add(ctx context.Context, clientID string, criteria domain.SearchCriteria) error {
	key := recentKey(clientID)
	entry := RecentSearch{Criteria: criteria, SearchedAt: r.clock.Now()}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling recent search: %w", err)
	}

	// Scan for an earlier entry with the same criteria and remove it so
	// the repeated search moves to the front instead of duplicating.
	existing, err := r.client.LRange(ctx, key, 0, MaxEntries-1).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("reading recent searches: %w", err)
	}
	criteriaKey := criteria.Key()
	for _, raw := range existing {
		var old RecentSearch
		if json.Unmarshal([]byte(raw), &old) != nil {
			continue
		}
		if old.Criteria.Key() == criteriaKey {
			if err := r.client.LRem(ctx, key, 1, raw).Err(); err != nil {
				return fmt.Errorf("deduplicating recent search: %w", err)
			}
			break
		}
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, MaxEntries-1)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storing recent search: %w", err)
	}
	return nil
}

// List returns the client's searches, most recent first. Entries that fail
// to decode are skipped.
func (r *RedisStore) List(ctx context.Context, clientID string) ([]RecentSearch, error) {
	raw, err := r.client.LRange(ctx, recentKey(clientID), 0, MaxEntries-1).Result()
	if err != nil {
		if err == redis.Nil {
			return []RecentSearch{}, nil
		}
		return nil, fmt.Errorf("reading recent searches: %w", err)
	}

	result := make([]RecentSearch, 0, len(raw))
	for _, item := range raw {
		var entry RecentSearch
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}
