package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"haircare-match-service/internal/domain"
)

// ScoreCache implements domain.ScoreCache on top of the byte-level Cache.
// Scores are keyed per (entity kind, entity id, profile code): the same
// product scores identically for every user sharing a profile code, so one
// cached entry serves all of them.
type ScoreCache struct {
	cache *Cache
}

// NewScoreCache creates a new ScoreCache.
func NewScoreCache(cache *Cache) *ScoreCache {
	return &ScoreCache{cache: cache}
}

// GetScore returns the cached score for one entity and profile code, or
// nil on a miss.
func (c *ScoreCache) GetScore(ctx context.Context, kind domain.EntityKind, entityID, profileCode string) (*domain.MatchScore, error) {
	data, err := c.cache.Get(ctx, scoreKey(kind, entityID, profileCode))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var score domain.MatchScore
	if err := json.Unmarshal(data, &score); err != nil {
		return nil, fmt.Errorf("decoding cached score: %w", err)
	}

	return &score, nil
}

// SetScore caches one entity's score for a profile code.
func (c *ScoreCache) SetScore(ctx context.Context, profileCode string, score *domain.MatchScore, ttl time.Duration) error {
	data, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("encoding score: %w", err)
	}

	return c.cache.Set(ctx, scoreKey(score.EntityKind, score.EntityID, profileCode), data, ttl)
}

// InvalidateEntity drops every cached score for one entity across all
// profile codes. Called when a new interaction shifts the entity's
// engagement signal.
func (c *ScoreCache) InvalidateEntity(ctx context.Context, kind domain.EntityKind, entityID string) error {
	return c.cache.DeletePattern(ctx, fmt.Sprintf("score:%s:%s:*", kind, entityID))
}

func scoreKey(kind domain.EntityKind, entityID, profileCode string) string {
	return fmt.Sprintf("score:%s:%s:%s", kind, entityID, profileCode)
}
