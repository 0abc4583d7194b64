package service

import (
	"context"

	"go.uber.org/zap"

	"haircare-match-service/internal/domain"
)

// scoreRoutineProducts aggregates the full match scores of a routine's
// products into one weighted average. Each step contributes its product's
// combined score weighted by category importance and usage frequency, so a
// daily shampoo moves the needle more than a monthly accessory. Steps whose
// product cannot be loaded are skipped; an empty or fully-skipped routine
// scores neutral.
func (s *MatchService) scoreRoutineProducts(ctx context.Context, routine *domain.Routine, profileCode string) float64 {
	var weighted, totalWeight float64

	for _, step := range routine.Steps {
		if step.ProductID == "" {
			continue
		}

		product, err := s.products.GetByID(ctx, step.ProductID)
		if err != nil {
			s.logger.Warn("skipping routine step, product lookup failed",
				zap.String("routine_id", routine.ID),
				zap.String("product_id", step.ProductID),
				zap.Error(err),
			)
			continue
		}
		if product == nil {
			s.logger.Debug("skipping routine step, product missing",
				zap.String("routine_id", routine.ID),
				zap.String("product_id", step.ProductID),
			)
			continue
		}

		ingredient := domain.ScoreByIngredients(product, profileCode, false, s.params.Ingredient)
		engagement, _ := s.engagement(ctx, domain.KindProduct, product.ID, profileCode)
		total := domain.CombineProductScores(ingredient.Score, engagement.Score)

		weight := step.Weight()
		weighted += total * weight
		totalWeight += weight
	}

	if totalWeight <= 0 {
		return domain.NeutralScore
	}

	return weighted / totalWeight
}
