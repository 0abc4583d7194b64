package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"haircare-match-service/internal/domain"
)

// ErrInvalidInteraction is returned when the interaction type is not
// defined for the target entity kind.
var ErrInvalidInteraction = errors.New("invalid interaction for entity kind")

// InteractionService records engagement events and keeps the acting user's
// published score for the touched entity fresh.
type InteractionService struct {
	interactions domain.InteractionRepository
	scores       domain.MatchScoreRepository
	resolver     domain.ProfileResolver
	cache        domain.ScoreCache // optional, may be nil
	matches      *MatchService
	logger       *zap.Logger
}

// NewInteractionService creates a new InteractionService.
func NewInteractionService(
	interactions domain.InteractionRepository,
	scores domain.MatchScoreRepository,
	resolver domain.ProfileResolver,
	cache domain.ScoreCache,
	matches *MatchService,
	logger *zap.Logger,
) *InteractionService {
	return &InteractionService{
		interactions: interactions,
		scores:       scores,
		resolver:     resolver,
		cache:        cache,
		matches:      matches,
		logger:       logger,
	}
}

// Record validates and persists one interaction event, stamped with the
// actor's current profile code, then recomputes the actor's score for the
// touched entity so their own view reflects the action immediately. The
// refreshed score is returned when one was computed.
//
// Actors without a completed hair analysis still have their event recorded,
// with an empty profile code, so it never influences similarity-weighted
// engagement; no rescore happens for them.
func (s *InteractionService) Record(
	ctx context.Context,
	userID string,
	kind domain.EntityKind,
	entityID string,
	interactionType domain.InteractionType,
) (*domain.MatchScore, error) {
	if !domain.ValidInteraction(kind, interactionType) {
		return nil, fmt.Errorf("%w: %s on %s", ErrInvalidInteraction, interactionType, kind)
	}

	profileCode, err := s.resolver.ProfileCode(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNoProfile) {
		return nil, err
	}

	event := &domain.InteractionEvent{
		ID:          uuid.NewString(),
		UserID:      userID,
		ProfileCode: profileCode,
		EntityKind:  kind,
		EntityID:    entityID,
		Type:        interactionType,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.interactions.Record(ctx, event); err != nil {
		return nil, fmt.Errorf("recording interaction: %w", err)
	}

	// Cached scores for this entity now embed stale engagement counts.
	if s.cache != nil {
		if err := s.cache.InvalidateEntity(ctx, kind, entityID); err != nil {
			s.logger.Warn("score cache invalidation failed",
				zap.String("entity_id", entityID),
				zap.Error(err),
			)
		}
	}

	if profileCode == "" {
		return nil, nil
	}

	return s.refreshScore(ctx, userID, profileCode, kind, entityID)
}

// refreshScore recomputes the actor's score for one entity and upserts it
// into their current published set.
func (s *InteractionService) refreshScore(
	ctx context.Context,
	userID, profileCode string,
	kind domain.EntityKind,
	entityID string,
) (*domain.MatchScore, error) {
	var (
		score *domain.MatchScore
		err   error
	)
	switch kind {
	case domain.KindProduct:
		score, err = s.matches.ScoreProduct(ctx, entityID, profileCode)
	case domain.KindRoutine:
		score, err = s.matches.ScoreRoutine(ctx, entityID, profileCode)
	default:
		// Ingredient interactions carry no published score to refresh.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if score == nil {
		return nil, nil
	}

	if err := s.scores.UpsertOne(ctx, userID, score); err != nil {
		return nil, fmt.Errorf("upserting score for user %s: %w", userID, err)
	}

	return score, nil
}
