package domain

import (
	"fmt"
	"sort"
	"strings"
)

// IngredientScoreParams are the tunables of ingredient scoring.
type IngredientScoreParams struct {
	// BaseBonus is added once per beneficial ingredient found.
	BaseBonus float64
	// MaxPositionBonus is the extra bonus at list position 0, decaying
	// linearly to 0 at the last position. Earlier listing means higher
	// concentration.
	MaxPositionBonus float64
	// AvoidPenalty is added per avoid-listed ingredient found (negative).
	AvoidPenalty float64
	// TopMatches caps how many beneficial matches one reason line names.
	TopMatches int
	// MaxReasons caps the total reasons emitted.
	MaxReasons int
}

// DefaultIngredientScoreParams returns the reference tuning.
func DefaultIngredientScoreParams() IngredientScoreParams {
	return IngredientScoreParams{
		BaseBonus:        0.1,
		MaxPositionBonus: 0.2,
		AvoidPenalty:     -0.25,
		TopMatches:       3,
		MaxReasons:       100,
	}
}

// IngredientScore is the result of scoring one product's ingredient list
// against one profile code.
type IngredientScore struct {
	Score       float64
	Reasons     []string
	DataQuality DataQuality
}

// ReasonDataUnavailable marks the ingredient-data fallback in reasons.
const ReasonDataUnavailable = "Ingredient data not available for this product"

// ScoreByIngredients scores a product's ingredient list against a profile
// code, per attribute, with position-aware bonuses and an avoid penalty.
// Pure given (product, code, static ingredient profiles): no I/O.
//
// Missing data never fails: a product without ingredients scores the
// neutral 0.5 with a data-unavailable reason, and an undecodable code
// scores neutral with DataQuality set accordingly.
func ScoreByIngredients(product *Product, profileCode string, includeReasons bool, params IngredientScoreParams) IngredientScore {
	ingredients := NormalizeIngredients(product.Ingredients)
	if len(ingredients) == 0 {
		result := IngredientScore{Score: NeutralScore, DataQuality: QualityNoIngredientData}
		if includeReasons {
			result.Reasons = []string{ReasonDataUnavailable}
		}
		return result
	}

	profile, err := DecodeProfileCode(profileCode)
	if err != nil {
		return IngredientScore{Score: NeutralScore, DataQuality: QualityInvalidProfile}
	}

	var (
		total   float64
		reasons []string
	)

	for i, attr := range ingredientProfilesFor(profile) {
		category := scoreCategory(ingredients, attr.profile, params)
		total += category.score * NormalizedAttributeWeight(i)

		if !includeReasons {
			continue
		}
		if len(category.matches) > 0 {
			reasons = append(reasons, beneficialReason(category.matches, attr.phrase, params.TopMatches))
		}
		if category.avoided != "" {
			reasons = append(reasons, fmt.Sprintf("Contains %s (may not suit %s)", category.avoided, attr.phrase))
		}
	}

	if params.MaxReasons > 0 && len(reasons) > params.MaxReasons {
		reasons = reasons[:params.MaxReasons]
	}

	return IngredientScore{
		Score:       clamp01(total),
		Reasons:     reasons,
		DataQuality: QualityOK,
	}
}

// ingredientMatch records where a beneficial ingredient was found.
type ingredientMatch struct {
	name     string
	position int
}

type categoryScore struct {
	score   float64
	matches []ingredientMatch
	// avoided is the first avoid-listed ingredient found, for the
	// warning line. Position is irrelevant for penalties.
	avoided string
}

// scoreCategory scores one attribute value's ingredient profile against
// the product's list. Starts neutral; beneficial matches add a base bonus
// plus a position bonus that decays linearly across the list; every avoid
// hit subtracts a flat penalty. Clamped to [0,1].
func scoreCategory(ingredients []string, profile IngredientProfile, params IngredientScoreParams) categoryScore {
	result := categoryScore{score: NeutralScore}
	n := len(ingredients)

	for _, beneficial := range profile.Beneficial {
		pos, found := findIngredient(ingredients, beneficial)
		if !found {
			continue
		}
		positionBonus := params.MaxPositionBonus * (1.0 - float64(pos+1)/float64(n))
		result.score += params.BaseBonus + positionBonus
		result.matches = append(result.matches, ingredientMatch{name: beneficial, position: pos})
	}

	for _, avoid := range profile.Avoid {
		if _, found := findIngredient(ingredients, avoid); found {
			result.score += params.AvoidPenalty
			if result.avoided == "" {
				result.avoided = avoid
			}
		}
	}

	result.score = clamp01(result.score)
	return result
}

// findIngredient returns the first list position matching target.
// Matching is case-insensitive substring containment in either direction:
// "protein" matches "hydrolyzed wheat protein" and the other way round.
// The false-positive risk (e.g. "oil" inside "mineral oil") is accepted
// as part of the matching policy.
func findIngredient(ingredients []string, target string) (int, bool) {
	target = strings.ToLower(target)
	for i, ing := range ingredients {
		if strings.Contains(ing, target) || strings.Contains(target, ing) {
			return i, true
		}
	}
	return 0, false
}

// beneficialReason names the top matches for one attribute, earliest list
// position first.
func beneficialReason(matches []ingredientMatch, phrase string, topMatches int) string {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].position < matches[j].position
	})
	if topMatches > 0 && len(matches) > topMatches {
		matches = matches[:topMatches]
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}

	return fmt.Sprintf("Contains %s (good for %s)", strings.Join(names, ", "), phrase)
}
