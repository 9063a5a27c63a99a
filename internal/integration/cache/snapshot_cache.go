// Package cache implements the snapshot cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/domain/entity"
)

const (
	keyPrefix        = "budget:snapshot:"
	generationPrefix = "budget:generation:"
	dayLayout        = "2006-01-02"
	scanCount        = 100
	generationTTL    = 7 * 24 * time.Hour
)

var errStaleGeneration = errors.New("snapshot generation moved")

// snapshotCache implements adapter.SnapshotCache. Entries are keyed by user and
// calendar day so a new day never reads yesterday's past-due resolution.
// A per-user generation counter guards writes against concurrent invalidation.
type snapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache creates a Redis backed snapshot cache.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) adapter.SnapshotCache {
	return &snapshotCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached snapshot, or nil on a miss.
func (c *snapshotCache) Get(ctx context.Context, userID uuid.UUID, day time.Time) (*entity.BudgetSnapshot, error) {
	raw, err := c.client.Get(ctx, snapshotKey(userID, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached snapshot: %w", err)
	}

	var snapshot entity.BudgetSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode cached snapshot: %w", err)
	}
	return &snapshot, nil
}

// Generation returns the user's current cache generation, 0 when never invalidated.
func (c *snapshotCache) Generation(ctx context.Context, userID uuid.UUID) (int64, error) {
	generation, err := readGeneration(ctx, c.client, generationKey(userID))
	if err != nil {
		return 0, fmt.Errorf("failed to read snapshot generation: %w", err)
	}
	return generation, nil
}

// Set stores a snapshot for the day it was computed on. The write is dropped
// when the generation no longer matches.
func (c *snapshotCache) Set(ctx context.Context, userID uuid.UUID, day time.Time, generation int64, snapshot *entity.BudgetSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	genKey := generationKey(userID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != generation {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, snapshotKey(userID, day), raw, c.ttl)
			return nil
		})
		return err
	}, genKey)

	if errors.Is(err, errStaleGeneration) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to cache snapshot: %w", err)
	}
	return nil
}

// Invalidate advances the user's generation and drops their cached snapshots.
func (c *snapshotCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	genKey := generationKey(userID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to advance snapshot generation: %w", err)
	}

	iter := c.client.Scan(ctx, 0, keyPrefix+userID.String()+":*", scanCount).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached snapshots: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to drop cached snapshots: %w", err)
	}
	return nil
}

func readGeneration(ctx context.Context, client redis.Cmdable, key string) (int64, error) {
	generation, err := client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}

func generationKey(userID uuid.UUID) string {
	return generationPrefix + userID.String()
}

func snapshotKey(userID uuid.UUID, day time.Time) string {
	return keyPrefix + userID.String() + ":" + day.Format(dayLayout)
}
