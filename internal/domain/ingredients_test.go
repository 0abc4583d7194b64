package domain

import (
	"math"
	"strings"
	"testing"
)

func TestScoreByIngredients_NoIngredientData(t *testing.T) {
	product := &Product{ID: "p1", Name: "Mystery Cream", Category: CategoryStyler}

	result := ScoreByIngredients(product, "CU-H-M-F-N", true, DefaultIngredientScoreParams())

	if result.Score != NeutralScore {
		t.Errorf("score = %v, want %v", result.Score, NeutralScore)
	}
	if result.DataQuality != QualityNoIngredientData {
		t.Errorf("data quality = %q, want %q", result.DataQuality, QualityNoIngredientData)
	}
	if len(result.Reasons) == 0 || result.Reasons[0] != ReasonDataUnavailable {
		t.Errorf("reasons = %v, want data-unavailable marker", result.Reasons)
	}
}

func TestScoreByIngredients_InvalidProfileCode(t *testing.T) {
	product := &Product{
		ID:          "p1",
		Ingredients: []string{"water", "panthenol"},
	}

	result := ScoreByIngredients(product, "not-a-code", true, DefaultIngredientScoreParams())

	if result.Score != NeutralScore {
		t.Errorf("score = %v, want %v", result.Score, NeutralScore)
	}
	if result.DataQuality != QualityInvalidProfile {
		t.Errorf("data quality = %q, want %q", result.DataQuality, QualityInvalidProfile)
	}
}

func TestScoreCategory_PositionBonus(t *testing.T) {
	params := DefaultIngredientScoreParams()
	ingredients := []string{"water", "dimethicone", "panthenol"}

	tests := []struct {
		name     string
		profile  IngredientProfile
		expected float64
	}{
		{
			// Last position of 3: bonus = 0.2 * (1 - 3/3) = 0.
			name:     "beneficial at last position",
			profile:  IngredientProfile{Beneficial: []string{"panthenol"}},
			expected: 0.5 + 0.1 + 0,
		},
		{
			// First position of 3: bonus = 0.2 * (1 - 1/3).
			name:     "beneficial at first position",
			profile:  IngredientProfile{Beneficial: []string{"water"}},
			expected: 0.5 + 0.1 + 0.2*(2.0/3.0),
		},
		{
			name:     "avoid hit",
			profile:  IngredientProfile{Avoid: []string{"dimethicone"}},
			expected: 0.5 - 0.25,
		},
		{
			name: "beneficial and avoid combined",
			profile: IngredientProfile{
				Beneficial: []string{"panthenol"},
				Avoid:      []string{"dimethicone"},
			},
			expected: 0.5 + 0.1 - 0.25,
		},
		{
			name:     "no hits stays neutral",
			profile:  IngredientProfile{Beneficial: []string{"shea butter"}, Avoid: []string{"sulfate"}},
			expected: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreCategory(ingredients, tt.profile, params)
			if math.Abs(got.score-tt.expected) > floatTolerance {
				t.Errorf("scoreCategory() = %v, want %v", got.score, tt.expected)
			}
		})
	}
}

func TestScoreCategory_Clamped(t *testing.T) {
	params := DefaultIngredientScoreParams()

	// Many avoid hits push below zero before the clamp.
	low := scoreCategory(
		[]string{"sulfate", "paraben", "alcohol"},
		IngredientProfile{Avoid: []string{"sulfate", "paraben", "alcohol"}},
		params,
	)
	if low.score != 0 {
		t.Errorf("heavily penalized score = %v, want 0", low.score)
	}

	// Many front-loaded beneficial hits push above one before the clamp.
	names := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8"}
	high := scoreCategory(names, IngredientProfile{Beneficial: names}, params)
	if high.score != 1 {
		t.Errorf("heavily boosted score = %v, want 1", high.score)
	}
}

func TestFindIngredient_SubstringBothDirections(t *testing.T) {
	ingredients := []string{"aqua", "hydrolyzed wheat protein", "Mineral Oil"}
	normalized := NormalizeIngredients(ingredients)

	tests := []struct {
		target   string
		position int
		found    bool
	}{
		// Config term inside product entry.
		{"protein", 1, true},
		// Product entry inside config term.
		{"hydrolyzed wheat protein extract", 1, true},
		// Case-insensitive through normalization.
		{"mineral oil", 2, true},
		// "oil" matching "mineral oil" is the accepted fuzzy policy.
		{"oil", 2, true},
		{"shea butter", 0, false},
	}

	for _, tt := range tests {
		pos, found := findIngredient(normalized, tt.target)
		if found != tt.found || (found && pos != tt.position) {
			t.Errorf("findIngredient(%q) = (%d, %v), want (%d, %v)",
				tt.target, pos, found, tt.position, tt.found)
		}
	}
}

func TestScoreByIngredients_CurlyEndToEnd(t *testing.T) {
	product := &Product{
		ID:          "p1",
		Name:        "Silk Serum",
		Category:    CategoryLeaveIn,
		Ingredients: []string{"water", "dimethicone", "panthenol"},
	}

	result := ScoreByIngredients(product, "CU-H-M-F-N", true, DefaultIngredientScoreParams())

	// Per attribute against the static profiles (n=3):
	//   hair type curly:    panthenol at pos 2 -> 0.5 + 0.1 + 0 = 0.6
	//   porosity high:      no hits            -> 0.5
	//   density medium:     panthenol at pos 2 -> 0.6
	//   thickness fine:     "rice water" contains "water" (pos 0)
	//                       -> 0.5 + 0.1 + 0.2*(2/3) = 0.733333...
	//   damage none:        no hits            -> 0.5
	// Weighted: (0.6*3 + 0.5*2 + 0.6*1 + 0.733333*2 + 0.5*1) / 9
	expected := (0.6*3 + 0.5*2 + 0.6*1 + (0.5+0.1+0.2*2.0/3.0)*2 + 0.5*1) / 9.0

	if math.Abs(result.Score-expected) > floatTolerance {
		t.Errorf("score = %v, want %v", result.Score, expected)
	}
	if result.DataQuality != QualityOK {
		t.Errorf("data quality = %q, want %q", result.DataQuality, QualityOK)
	}
	if len(result.Reasons) == 0 {
		t.Fatal("expected reasons, got none")
	}

	joined := strings.Join(result.Reasons, "\n")
	if !strings.Contains(joined, "panthenol") {
		t.Errorf("reasons should mention panthenol: %v", result.Reasons)
	}
	if !strings.Contains(joined, "curly hair") {
		t.Errorf("reasons should be tagged with the attribute phrase: %v", result.Reasons)
	}
}

func TestScoreByIngredients_AlwaysInRange(t *testing.T) {
	codes := []string{"CU-H-M-F-N", "ST-L-L-F-N", "CO-H-H-C-X", "PR-M-M-M-S", "bad-code"}
	products := []*Product{
		{ID: "a"},
		{ID: "b", Ingredients: []string{"water"}},
		{ID: "c", Ingredients: []string{"shea butter", "castor oil", "coconut oil", "honey"}},
		{ID: "d", Ingredients: []string{"sodium lauryl sulfate", "denatured alcohol", "fragrance"}},
		{ID: "e", Ingredients: []string{"panthenol", "aloe vera", "glycerin", "biotin", "rice water"}},
	}

	for _, code := range codes {
		for _, p := range products {
			result := ScoreByIngredients(p, code, false, DefaultIngredientScoreParams())
			if result.Score < 0 || result.Score > 1 {
				t.Errorf("score out of range for product %s, code %s: %v", p.ID, code, result.Score)
			}
		}
	}
}

func TestScoreByIngredients_ReasonCap(t *testing.T) {
	params := DefaultIngredientScoreParams()
	params.MaxReasons = 2

	product := &Product{
		ID: "p1",
		// Hits beneficial and avoid lists across several attributes.
		Ingredients: []string{"shea butter", "sodium lauryl sulfate", "panthenol", "aloe vera"},
	}

	result := ScoreByIngredients(product, "CU-H-H-C-X", true, params)
	if len(result.Reasons) > 2 {
		t.Errorf("reasons = %d entries, want at most 2", len(result.Reasons))
	}
}
