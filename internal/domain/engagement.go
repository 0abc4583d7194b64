package domain

import "fmt"

// EngagementScoreParams are the tunables of engagement scoring.
type EngagementScoreParams struct {
	// ExactMatchBoost is passed through to similarity computation.
	ExactMatchBoost float64
	// MinSimilarity discards evidence from actors whose profile is too
	// far from the querying one (the medium-tier floor).
	MinSimilarity float64
	// MaxReasons caps the total reasons emitted.
	MaxReasons int
}

// DefaultEngagementScoreParams returns the reference tuning.
func DefaultEngagementScoreParams() EngagementScoreParams {
	return EngagementScoreParams{
		ExactMatchBoost: DefaultExactMatchBoost,
		MinSimilarity:   DefaultMinSimilarity,
		MaxReasons:      100,
	}
}

// EngagementScore is the result of scoring one entity's interaction
// history against one profile code.
type EngagementScore struct {
	Score              float64
	Reasons            []string
	InteractionsByTier TierCounts
}

// ScoreByEngagement scores an entity from the interaction events recorded
// against it, weighting each event by the similarity of its actor's
// profile to the querying one and discarding evidence below the minimum
// similarity threshold.
//
// Per-type counters accumulate similarity weight, not unit counts, so an
// exact-profile like moves the score more than a barely-similar one.
// Views are the normalizing denominator: each surviving type's rate is
// weightedCount/weightedViews, rates are combined with the kind's signed
// weights, and the sum is recentred on 0.5. No events, or no weighted
// views, is the cold-start case and stays neutral.
//
// Pure given (kind, code, events): collaborator I/O and its failure
// handling live in the service layer.
func ScoreByEngagement(kind EntityKind, profileCode string, events []InteractionEvent, includeReasons bool, params EngagementScoreParams) EngagementScore {
	if len(events) == 0 {
		return EngagementScore{Score: NeutralScore}
	}

	meaningful := make(map[InteractionType]bool, len(MeaningfulTypes(kind)))
	for _, t := range MeaningfulTypes(kind) {
		meaningful[t] = true
	}

	weighted := make(map[InteractionType]float64)
	tiers := make(TierCounts)

	for _, ev := range events {
		sim := SimilarityWithBoost(profileCode, ev.ProfileCode, params.ExactMatchBoost)
		if sim < params.MinSimilarity {
			continue
		}

		weighted[ev.Type] += sim

		if meaningful[ev.Type] {
			tier := ClassifyTier(sim, params.MinSimilarity)
			if tiers[tier] == nil {
				tiers[tier] = make(TypeCounts)
			}
			tiers[tier][ev.Type]++
		}
	}

	result := EngagementScore{Score: NeutralScore}
	if len(tiers) > 0 {
		result.InteractionsByTier = tiers
	}

	weightedViews := weighted[InteractionView]
	if weightedViews > 0 {
		raw := 0.0
		for typ, weight := range EngagementWeights(kind) {
			raw += weight * (weighted[typ] / weightedViews)
		}
		result.Score = clamp01(raw + NeutralScore)
	}

	if includeReasons {
		result.Reasons = engagementReasons(kind, tiers, params.MaxReasons)
	}

	return result
}

// engagementReasons emits one line per non-zero meaningful count per
// tier, most similar tier first, pluralized.
func engagementReasons(kind EntityKind, tiers TierCounts, maxReasons int) []string {
	var reasons []string

	for _, tier := range SimilarityTiers {
		counts := tiers[tier]
		if len(counts) == 0 {
			continue
		}
		for _, typ := range MeaningfulTypes(kind) {
			n := counts[typ]
			if n == 0 {
				continue
			}
			reasons = append(reasons, engagementReason(n, tier, typ))
			if maxReasons > 0 && len(reasons) >= maxReasons {
				return reasons
			}
		}
	}

	return reasons
}

func engagementReason(n int, tier SimilarityTier, typ InteractionType) string {
	subject := fmt.Sprintf("%d people", n)
	if n == 1 {
		subject = "1 person"
	}

	return fmt.Sprintf("%s with %s hair %s", subject, tierPhrases[tier], reasonVerbs[typ])
}
