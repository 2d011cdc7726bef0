package document

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ListCache is a short-TTL read cache for document listings. Mutating
// operations invalidate the trial's key prefix so the next read is fresh;
// readers racing a mutation before the invalidation lands may still observe
// a stale list for up to the TTL.
type ListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewListCache(rdb *redis.Client, ttl time.Duration) *ListCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ListCache{rdb: rdb, ttl: ttl}
}

func trialKeyPrefix(trialID uuid.UUID) string {
	return fmt.Sprintf("documents:trial:%s:", trialID)
}

// listKey derives a deterministic cache key from the filter. Filters without
// a trial scope are not cached.
func listKey(filter DocumentFilter) string {
	if filter.TrialID == nil {
		return ""
	}
	latest := "any"
	if filter.IsLatest != nil {
		latest = fmt.Sprintf("%t", *filter.IsLatest)
	}
	return fmt.Sprintf("%stype=%s:status=%s:latest=%s:uploader=%t:limit=%d:offset=%d",
		trialKeyPrefix(*filter.TrialID),
		filter.DocumentType,
		filter.Status,
		latest,
		filter.WithUploader,
		filter.Limit,
		filter.Offset,
	)
}

// Get returns true and fills dest on a hit. Redis failures degrade to a miss.
func (c *ListCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || key == "" {
		return false
	}

	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Warning: document cache read failed for %s: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		log.Printf("Warning: document cache payload invalid for %s: %v", key, err)
		return false
	}
	return true
}

func (c *ListCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || key == "" {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		log.Printf("Warning: failed to marshal document cache entry: %v", err)
		return
	}

	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Printf("Warning: document cache write failed for %s: %v", key, err)
	}
}

// InvalidateTrial drops every cached listing for the trial.
func (c *ListCache) InvalidateTrial(ctx context.Context, trialID uuid.UUID) {
	if c == nil {
		return
	}

	pattern := trialKeyPrefix(trialID) + "*"
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("Warning: failed to invalidate cache key %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("Warning: cache invalidation scan failed for trial %s: %v", trialID, err)
	}
}
