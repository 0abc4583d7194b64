package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNoProfile is returned by a ProfileResolver when a user has not
// completed hair analysis. Scoring is not performed for such users.
var ErrNoProfile = errors.New("user has no hair profile")

// ProductRepository defines persistence for products.
// Implementations: internal/infra/postgres/repository.go
type ProductRepository interface {
	// GetByID retrieves a single product. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*Product, error)

	// ListAll retrieves every product, the candidate set for bulk scoring.
	ListAll(ctx context.Context) ([]*Product, error)

	// Upsert creates or updates a product.
	Upsert(ctx context.Context, product *Product) error

	// Count returns the number of stored products.
	Count(ctx context.Context) (int64, error)
}

// RoutineRepository defines persistence for routines.
// Implementations: internal/infra/postgres/repository.go
type RoutineRepository interface {
	// GetByID retrieves a routine with its steps. Returns (nil, nil)
	// when absent.
	GetByID(ctx context.Context, id string) (*Routine, error)

	// ListPublic retrieves all public routines, the candidate set for
	// bulk routine scoring.
	ListPublic(ctx context.Context) ([]*Routine, error)

	// Upsert creates or updates a routine and its steps.
	Upsert(ctx context.Context, routine *Routine) error
}

// InteractionRepository defines persistence for interaction events.
// Events are append-only; there is no update or delete.
type InteractionRepository interface {
	// Record appends one interaction event.
	Record(ctx context.Context, event *InteractionEvent) error

	// ListByEntity retrieves all events recorded against one entity.
	ListByEntity(ctx context.Context, kind EntityKind, entityID string) ([]InteractionEvent, error)
}

// MatchScoreRepository defines persistence for computed match scores.
// Bulk writes replace the previous result set by generation: a new
// generation is written in batches and atomically published, so a reader
// never observes a partial set.
type MatchScoreRepository interface {
	// ReplaceForUser writes a fresh, fully-replacing result set for one
	// (user, kind) pair and publishes it.
	ReplaceForUser(ctx context.Context, userID string, kind EntityKind, scores []*MatchScore) error

	// UpsertOne overwrites a single entity's score inside the user's
	// published generation, for interactive rescoring.
	UpsertOne(ctx context.Context, userID string, score *MatchScore) error

	// ListForUser retrieves the user's published scores for one kind,
	// ordered descending by total score.
	ListForUser(ctx context.Context, userID string, kind EntityKind) ([]*MatchScore, error)

	// ListScoredUsers returns the ids of users holding a published
	// score set, for periodic rescoring.
	ListScoredUsers(ctx context.Context) ([]string, error)
}

// ProfileResolver resolves a user's current profile code.
// Implementations: internal/infra/profile/client.go
type ProfileResolver interface {
	// ProfileCode returns the user's current code, or ErrNoProfile when
	// the user has not completed analysis.
	ProfileCode(ctx context.Context, userID string) (string, error)
}

// ScoreCache caches computed match scores keyed by (kind, entity id,
// profile code). Caching is a caller policy; the scoring functions stay
// pure and cacheable.
// Implementations: internal/infra/redis/score_cache.go
type ScoreCache interface {
	// GetScore returns a cached score or (nil, nil) on miss.
	GetScore(ctx context.Context, kind EntityKind, entityID, profileCode string) (*MatchScore, error)

	// SetScore stores a score with the given TTL.
	SetScore(ctx context.Context, profileCode string, score *MatchScore, ttl time.Duration) error

	// InvalidateEntity drops every cached score of one entity, across
	// all profile codes. Called after a new interaction lands.
	InvalidateEntity(ctx context.Context, kind EntityKind, entityID string) error
}
