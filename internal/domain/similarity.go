package domain

import "strings"

// Profile similarity is a weighted positional comparison of two profile
// codes.
//
// Formula:
//
//	similarity = matchedWeight / totalWeight
//
// Segment weights (code order):
//   - hair type:  3
//   - porosity:   2
//   - density:    1
//   - thickness:  2
//   - damage:     1
//
// Byte-equal codes short-circuit to min(1.0, 1.0*ExactMatchBoost); the
// boost constant exists for tuning but the clamp means exact matches always
// score exactly 1.0 at sensible settings. Codes that do not split into five
// segments score 0. The function is pure, symmetric and clamped to [0,1].
var similarityWeights = [codeSegments]float64{3, 2, 1, 2, 1}

// totalSimilarityWeight is the sum of similarityWeights.
const totalSimilarityWeight = 9.0

const (
	// DefaultExactMatchBoost multiplies the score of byte-equal codes
	// before the clamp to 1.0.
	DefaultExactMatchBoost = 1.5

	// DefaultMinSimilarity is the floor of the medium tier. Engagement
	// evidence from actors below it is discarded.
	DefaultMinSimilarity = 0.4
)

// Similarity computes the weighted similarity between two profile codes
// using the default exact-match boost.
func Similarity(a, b string) float64 {
	return SimilarityWithBoost(a, b, DefaultExactMatchBoost)
}

// SimilarityWithBoost is Similarity with a caller-supplied exact-match
// boost (must be > 1 to have any meaning; the result is clamped to 1.0).
func SimilarityWithBoost(a, b string, exactMatchBoost float64) float64 {
	if a == b {
		if a == "" {
			return 0
		}
		return minFloat(1.0, 1.0*exactMatchBoost)
	}

	segsA := strings.Split(a, codeSeparator)
	segsB := strings.Split(b, codeSeparator)
	if len(segsA) != codeSegments || len(segsB) != codeSegments {
		return 0
	}

	matched := 0.0
	for i := 0; i < codeSegments; i++ {
		if segsA[i] == segsB[i] {
			matched += similarityWeights[i]
		}
	}

	return minFloat(1.0, matched/totalSimilarityWeight)
}

// AttributeWeight returns the similarity weight of the attribute at
// position i of the code. Shared with ingredient scoring so both systems
// have a single tuning surface.
func AttributeWeight(i int) float64 {
	return similarityWeights[i]
}

// NormalizedAttributeWeight returns AttributeWeight(i) / totalWeight.
func NormalizedAttributeWeight(i int) float64 {
	return similarityWeights[i] / totalSimilarityWeight
}

// SimilarityTier buckets pairwise similarity for grouping community
// engagement evidence.
type SimilarityTier string

const (
	TierExact    SimilarityTier = "exact"
	TierVeryHigh SimilarityTier = "very_high"
	TierHigh     SimilarityTier = "high"
	TierMedium   SimilarityTier = "medium"
	// TierNone marks similarity below the minimum threshold.
	TierNone SimilarityTier = ""
)

// SimilarityTiers lists the tiers from most to least similar.
var SimilarityTiers = [4]SimilarityTier{TierExact, TierVeryHigh, TierHigh, TierMedium}

// tierPhrases describe each tier's actors in match reasons.
var tierPhrases = map[SimilarityTier]string{
	TierExact:    "identical",
	TierVeryHigh: "very similar",
	TierHigh:     "similar",
	TierMedium:   "somewhat similar",
}

// ClassifyTier buckets a similarity value. Values below minSimilarity map
// to TierNone and should be discarded by callers.
func ClassifyTier(similarity, minSimilarity float64) SimilarityTier {
	switch {
	case similarity >= 1.0:
		return TierExact
	case similarity > 0.8:
		return TierVeryHigh
	case similarity > 0.6:
		return TierHigh
	case similarity >= minSimilarity:
		return TierMedium
	default:
		return TierNone
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// clamp01 bounds a score to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
