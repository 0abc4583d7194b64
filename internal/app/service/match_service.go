// Package service provides application use cases.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"haircare-match-service/internal/domain"
)

// MatchParams holds the tunables of match computation.
type MatchParams struct {
	Ingredient domain.IngredientScoreParams
	Engagement domain.EngagementScoreParams

	// ProductChunkSize bounds how many products are scored concurrently
	// during a bulk pass. Routines are scored as one set; routine counts
	// are orders of magnitude smaller.
	ProductChunkSize int

	// CacheTTL applies to single-entity scores placed in the cache.
	CacheTTL time.Duration
}

// DefaultMatchParams returns the reference tuning.
func DefaultMatchParams() MatchParams {
	return MatchParams{
		Ingredient:       domain.DefaultIngredientScoreParams(),
		Engagement:       domain.DefaultEngagementScoreParams(),
		ProductChunkSize: 2000,
		CacheTTL:         15 * time.Minute,
	}
}

// MatchService computes match scores for products and routines: ingredient
// fit combined with community engagement from similar-profile users.
type MatchService struct {
	products     domain.ProductRepository
	routines     domain.RoutineRepository
	interactions domain.InteractionRepository
	scores       domain.MatchScoreRepository
	resolver     domain.ProfileResolver
	cache        domain.ScoreCache // optional, may be nil
	params       MatchParams
	logger       *zap.Logger
}

// NewMatchService creates a new MatchService. cache may be nil to disable
// score caching.
func NewMatchService(
	products domain.ProductRepository,
	routines domain.RoutineRepository,
	interactions domain.InteractionRepository,
	scores domain.MatchScoreRepository,
	resolver domain.ProfileResolver,
	cache domain.ScoreCache,
	params MatchParams,
	logger *zap.Logger,
) *MatchService {
	return &MatchService{
		products:     products,
		routines:     routines,
		interactions: interactions,
		scores:       scores,
		resolver:     resolver,
		cache:        cache,
		params:       params,
		logger:       logger,
	}
}

// Similarity computes pairwise profile-code similarity with the service's
// configured exact-match boost.
func (s *MatchService) Similarity(a, b string) float64 {
	return domain.SimilarityWithBoost(a, b, s.params.Engagement.ExactMatchBoost)
}

// ScoreProduct scores one product for one profile code. Returns (nil, nil)
// when the product does not exist. Results are cached per
// (entity, profile code) when a cache is configured.
func (s *MatchService) ScoreProduct(ctx context.Context, productID, profileCode string) (*domain.MatchScore, error) {
	if s.cache != nil {
		cached, err := s.cache.GetScore(ctx, domain.KindProduct, productID, profileCode)
		if err != nil {
			s.logger.Warn("score cache read failed", zap.String("product_id", productID), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("loading product %s: %w", productID, err)
	}
	if product == nil {
		return nil, nil
	}

	score := s.scoreProduct(ctx, product, profileCode)
	s.cacheScore(ctx, profileCode, score)

	return score, nil
}

// ScoreRoutine scores one routine for one profile code. Returns (nil, nil)
// when the routine does not exist.
func (s *MatchService) ScoreRoutine(ctx context.Context, routineID, profileCode string) (*domain.MatchScore, error) {
	if s.cache != nil {
		cached, err := s.cache.GetScore(ctx, domain.KindRoutine, routineID, profileCode)
		if err != nil {
			s.logger.Warn("score cache read failed", zap.String("routine_id", routineID), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	routine, err := s.routines.GetByID(ctx, routineID)
	if err != nil {
		return nil, fmt.Errorf("loading routine %s: %w", routineID, err)
	}
	if routine == nil {
		return nil, nil
	}

	score := s.scoreRoutine(ctx, routine, profileCode)
	s.cacheScore(ctx, profileCode, score)

	return score, nil
}

// ScoreAllProducts scores every product for one profile code, in chunks,
// and returns the results sorted descending by total score. A failing
// entity degrades to neutral; it never aborts the batch.
func (s *MatchService) ScoreAllProducts(ctx context.Context, profileCode string) ([]*domain.MatchScore, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	if len(products) == 0 {
		return []*domain.MatchScore{}, nil
	}

	results := make([]*domain.MatchScore, len(products))

	chunk := s.params.ProductChunkSize
	if chunk <= 0 {
		chunk = len(products)
	}

	for start := 0; start < len(products); start += chunk {
		end := min(start+chunk, len(products))

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = s.scoreProduct(gctx, products[i], profileCode)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	domain.SortMatchScores(results)

	return results, nil
}

// ScoreAllRoutines scores every public routine for one profile code and
// returns the results sorted descending by total score.
func (s *MatchService) ScoreAllRoutines(ctx context.Context, profileCode string) ([]*domain.MatchScore, error) {
	routines, err := s.routines.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing routines: %w", err)
	}
	if len(routines) == 0 {
		return []*domain.MatchScore{}, nil
	}

	results := make([]*domain.MatchScore, len(routines))

	g, gctx := errgroup.WithContext(ctx)
	for i := range routines {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.scoreRoutine(gctx, routines[i], profileCode)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	domain.SortMatchScores(results)

	return results, nil
}

// ProfileCodeForUser resolves a user's profile code via the analysis
// service. Returns domain.ErrNoProfile for unanalysed users.
func (s *MatchService) ProfileCodeForUser(ctx context.Context, userID string) (string, error) {
	return s.resolver.ProfileCode(ctx, userID)
}

// MatchesForUser returns the user's published, ranked score set for one
// entity kind, computing it first when none exists yet.
func (s *MatchService) MatchesForUser(ctx context.Context, userID string, kind domain.EntityKind) ([]*domain.MatchScore, error) {
	code, err := s.resolver.ProfileCode(ctx, userID)
	if err != nil {
		return nil, err
	}

	scores, err := s.scores.ListForUser(ctx, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("listing scores for user %s: %w", userID, err)
	}
	if len(scores) > 0 {
		return scores, nil
	}

	// First visit since analysis: compute and persist synchronously.
	if err := s.rescoreKind(ctx, userID, code, kind); err != nil {
		return nil, err
	}

	scores, err = s.scores.ListForUser(ctx, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("listing scores for user %s: %w", userID, err)
	}

	return scores, nil
}

// RescoreUser recomputes and fully replaces both of a user's score sets.
// Returns domain.ErrNoProfile when the user has not completed analysis.
func (s *MatchService) RescoreUser(ctx context.Context, userID string) error {
	code, err := s.resolver.ProfileCode(ctx, userID)
	if err != nil {
		return err
	}

	start := time.Now()
	for _, kind := range []domain.EntityKind{domain.KindProduct, domain.KindRoutine} {
		if err := s.rescoreKind(ctx, userID, code, kind); err != nil {
			return err
		}
	}

	s.logger.Info("user rescored",
		zap.String("user_id", userID),
		zap.String("profile_code", code),
		zap.Duration("duration", time.Since(start)),
	)

	return nil
}

func (s *MatchService) rescoreKind(ctx context.Context, userID, profileCode string, kind domain.EntityKind) error {
	var (
		scores []*domain.MatchScore
		err    error
	)
	if kind == domain.KindRoutine {
		scores, err = s.ScoreAllRoutines(ctx, profileCode)
	} else {
		scores, err = s.ScoreAllProducts(ctx, profileCode)
	}
	if err != nil {
		return err
	}

	if err := s.scores.ReplaceForUser(ctx, userID, kind, scores); err != nil {
		return fmt.Errorf("replacing %s scores for user %s: %w", kind, userID, err)
	}

	return nil
}

// RescoreResult holds the outcome of rescoring one user during a bulk pass.
type RescoreResult struct {
	UserID   string
	Duration time.Duration
	Error    error
}

// RescoreAll rescores every user holding a published score set. Users
// without a current profile are skipped. Partial failures are allowed.
func (s *MatchService) RescoreAll(ctx context.Context) ([]RescoreResult, error) {
	users, err := s.scores.ListScoredUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing scored users: %w", err)
	}

	results := make([]RescoreResult, 0, len(users))
	for _, userID := range users {
		start := time.Now()
		err := s.RescoreUser(ctx, userID)
		if errors.Is(err, domain.ErrNoProfile) {
			s.logger.Debug("skipping user without profile", zap.String("user_id", userID))
			continue
		}
		results = append(results, RescoreResult{
			UserID:   userID,
			Duration: time.Since(start),
			Error:    err,
		})
		if ctx.Err() != nil {
			break
		}
	}

	return results, nil
}

// scoreProduct computes one product's match score. It never fails: missing
// or unusable data resolves to the documented neutral defaults.
func (s *MatchService) scoreProduct(ctx context.Context, product *domain.Product, profileCode string) *domain.MatchScore {
	ingredient := domain.ScoreByIngredients(product, profileCode, true, s.params.Ingredient)
	engagement, engagementQuality := s.engagement(ctx, domain.KindProduct, product.ID, profileCode)

	reasons := append(ingredient.Reasons, engagement.Reasons...)
	if limit := s.params.Ingredient.MaxReasons; limit > 0 && len(reasons) > limit {
		reasons = reasons[:limit]
	}

	return &domain.MatchScore{
		EntityID:   product.ID,
		EntityKind: domain.KindProduct,
		TotalScore: domain.CombineProductScores(ingredient.Score, engagement.Score),
		Breakdown: map[string]float64{
			domain.BreakdownIngredients: ingredient.Score,
			domain.BreakdownEngagement:  engagement.Score,
		},
		MatchReasons:       reasons,
		InteractionsByTier: engagement.InteractionsByTier,
		DataQuality:        mergeQuality(ingredient.DataQuality, engagementQuality),
		DisplayName:        product.Name,
		DisplayBrand:       product.Brand,
		DisplayCategory:    string(product.Category),
		ScoredAt:           time.Now().UTC(),
	}
}

// scoreRoutine computes one routine's match score.
func (s *MatchService) scoreRoutine(ctx context.Context, routine *domain.Routine, profileCode string) *domain.MatchScore {
	productScore := s.scoreRoutineProducts(ctx, routine, profileCode)
	engagement, engagementQuality := s.engagement(ctx, domain.KindRoutine, routine.ID, profileCode)

	reasons := engagement.Reasons
	if limit := s.params.Engagement.MaxReasons; limit > 0 && len(reasons) > limit {
		reasons = reasons[:limit]
	}

	return &domain.MatchScore{
		EntityID:   routine.ID,
		EntityKind: domain.KindRoutine,
		TotalScore: domain.CombineRoutineScores(productScore, engagement.Score),
		Breakdown: map[string]float64{
			domain.BreakdownRoutineProduct: productScore,
			domain.BreakdownEngagement:     engagement.Score,
		},
		MatchReasons:       reasons,
		InteractionsByTier: engagement.InteractionsByTier,
		DataQuality:        engagementQuality,
		DisplayName:        routine.Name,
		ScoredAt:           time.Now().UTC(),
	}
}

// engagement fetches an entity's interaction history and scores it.
// Collaborator failure is recoverable here: it logs, degrades to neutral
// and never aborts the surrounding match computation.
func (s *MatchService) engagement(ctx context.Context, kind domain.EntityKind, entityID, profileCode string) (domain.EngagementScore, domain.DataQuality) {
	events, err := s.interactions.ListByEntity(ctx, kind, entityID)
	if err != nil {
		s.logger.Warn("interaction lookup failed, degrading to neutral",
			zap.String("entity_kind", string(kind)),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
		return domain.EngagementScore{Score: domain.NeutralScore}, domain.QualityStoreError
	}

	score := domain.ScoreByEngagement(kind, profileCode, events, true, s.params.Engagement)

	quality := domain.QualityOK
	if len(events) == 0 {
		quality = domain.QualityNoEngagementData
	}

	return score, quality
}

// mergeQuality keeps the most informative degradation marker.
func mergeQuality(ingredient, engagement domain.DataQuality) domain.DataQuality {
	switch {
	case engagement == domain.QualityStoreError:
		return engagement
	case ingredient != domain.QualityOK:
		return ingredient
	case engagement != domain.QualityOK:
		return engagement
	default:
		return domain.QualityOK
	}
}

func (s *MatchService) cacheScore(ctx context.Context, profileCode string, score *domain.MatchScore) {
	if s.cache == nil || score == nil {
		return
	}
	if err := s.cache.SetScore(ctx, profileCode, score, s.params.CacheTTL); err != nil {
		s.logger.Warn("score cache write failed",
			zap.String("entity_id", score.EntityID),
			zap.Error(err),
		)
	}
}
