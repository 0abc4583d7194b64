package domain

import (
	"sort"
	"time"
)

// Combination weights for the final score. Products lean on ingredient
// chemistry; routines lean on community validation, since a routine's value
// is primarily whether the sequence works for people with similar hair.
const (
	ProductIngredientWeight = 0.6
	ProductEngagementWeight = 0.4

	RoutineProductWeight    = 0.1
	RoutineEngagementWeight = 0.9
)

// Breakdown keys.
const (
	BreakdownIngredients    = "ingredients"
	BreakdownEngagement     = "engagement"
	BreakdownRoutineProduct = "routine_products"
)

// DataQuality flags why a score may be neutral. Ranking semantics are
// unaffected: a degraded score is a plain 0.5 with no reasons, but callers
// can distinguish cold-start neutrality from failure.
type DataQuality string

const (
	QualityOK               DataQuality = "ok"
	QualityNoIngredientData DataQuality = "no_ingredient_data"
	QualityNoEngagementData DataQuality = "no_engagement_data"
	QualityStoreError       DataQuality = "store_error"
	QualityInvalidProfile   DataQuality = "invalid_profile"
)

// TypeCounts holds integer counts per interaction type.
type TypeCounts map[InteractionType]int

// TierCounts holds per-tier counts of meaningful interaction types, for
// display alongside a score.
type TierCounts map[SimilarityTier]TypeCounts

// MatchScore is the output of scoring one entity for one profile code.
// Scores are computed fresh and never mutated in place; a scoring run
// fully replaces the previous result set for a (user, kind) pair.
type MatchScore struct {
	EntityID   string     `json:"entity_id"`
	EntityKind EntityKind `json:"entity_kind"`

	TotalScore float64            `json:"total_score"`
	Breakdown  map[string]float64 `json:"breakdown"`

	MatchReasons       []string    `json:"match_reasons"`
	InteractionsByTier TierCounts  `json:"interactions_by_tier,omitempty"`
	DataQuality        DataQuality `json:"data_quality"`

	// Denormalized display fields so callers can render a score without
	// rejoining the entity table.
	DisplayName     string `json:"display_name,omitempty"`
	DisplayBrand    string `json:"display_brand,omitempty"`
	DisplayCategory string `json:"display_category,omitempty"`

	ScoredAt time.Time `json:"scored_at"`
}

// CombineProductScores combines a product's ingredient and engagement
// sub-scores into its total.
func CombineProductScores(ingredient, engagement float64) float64 {
	return clamp01(ingredient*ProductIngredientWeight + engagement*ProductEngagementWeight)
}

// CombineRoutineScores combines a routine's aggregated product score and
// its own engagement sub-score into its total.
func CombineRoutineScores(routineProduct, engagement float64) float64 {
	return clamp01(routineProduct*RoutineProductWeight + engagement*RoutineEngagementWeight)
}

// SortMatchScores orders scores descending by total. The sort is stable,
// so ties keep their input order.
func SortMatchScores(scores []*MatchScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore > scores[j].TotalScore
	})
}

// NeutralScore is the documented fallback for missing or unusable data:
// never block the recommendation flow, resolve to neutral instead.
const NeutralScore = 0.5
