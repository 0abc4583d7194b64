package domain

import (
	"math"
	"testing"
)

func TestFrequencyWeight(t *testing.T) {
	tests := []struct {
		name     string
		freq     Frequency
		expected float64
	}{
		{"daily", Frequency{1, FrequencyDay}, 1.0},
		{"every other day", Frequency{2, FrequencyDay}, 0.5},
		{"weekly", Frequency{1, FrequencyWeek}, 30.0 / 7.0 / 30.0},
		{"every two weeks", Frequency{2, FrequencyWeek}, 30.0 / 14.0 / 30.0},
		// Monthly lands below the floor and clamps to 0.1.
		{"monthly", Frequency{1, FrequencyMonth}, 0.1},
		{"quarterly", Frequency{3, FrequencyMonth}, 0.1},
		// Defensive: interval zero counts as one.
		{"zero interval", Frequency{0, FrequencyDay}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.freq.Weight()
			if math.Abs(got-tt.expected) > floatTolerance {
				t.Errorf("Weight(%+v) = %v, want %v", tt.freq, got, tt.expected)
			}
		})
	}
}

func TestFrequencyWeight_Bounds(t *testing.T) {
	freqs := []Frequency{
		{1, FrequencyDay},
		{7, FrequencyDay},
		{1, FrequencyWeek},
		{4, FrequencyWeek},
		{1, FrequencyMonth},
		{12, FrequencyMonth},
		{0, FrequencyUnit("fortnight")},
	}

	for _, f := range freqs {
		w := f.Weight()
		if w < 0.1 || w > 1.0 {
			t.Errorf("Weight(%+v) = %v, out of [0.1, 1.0]", f, w)
		}
	}
}

func TestCategoryImportance(t *testing.T) {
	// Core cleansing and conditioning highest, styling tools lowest.
	if CategoryImportance(CategoryShampoo) != 1.0 {
		t.Errorf("shampoo importance = %v, want 1.0", CategoryImportance(CategoryShampoo))
	}
	if CategoryImportance(CategoryTool) != 0.5 {
		t.Errorf("tool importance = %v, want 0.5", CategoryImportance(CategoryTool))
	}

	for _, c := range ProductCategories {
		imp := CategoryImportance(c)
		if imp < 0.5 || imp > 1.0 {
			t.Errorf("importance(%s) = %v, out of [0.5, 1.0]", c, imp)
		}
	}

	// Unknown categories get the floor rather than a panic.
	if CategoryImportance(ProductCategory("hologram")) != 0.5 {
		t.Error("unknown category should get the floor importance")
	}
}

func TestStepWeight(t *testing.T) {
	step := RoutineStep{
		Category:  CategoryShampoo,
		Frequency: Frequency{2, FrequencyDay},
	}
	// importance 1.0 * frequency 0.5
	if math.Abs(step.Weight()-0.5) > floatTolerance {
		t.Errorf("step weight = %v, want 0.5", step.Weight())
	}
}

func TestValidProductCategory(t *testing.T) {
	for _, c := range ProductCategories {
		if !ValidProductCategory(c) {
			t.Errorf("ValidProductCategory(%s) = false, want true", c)
		}
	}
	if ValidProductCategory("hologram") {
		t.Error("ValidProductCategory(hologram) = true, want false")
	}
}

func TestValidInteraction(t *testing.T) {
	tests := []struct {
		kind  EntityKind
		typ   InteractionType
		valid bool
	}{
		{KindProduct, InteractionRoutineAdd, true},
		{KindProduct, InteractionReroll, true},
		{KindProduct, InteractionAdapt, false},
		{KindRoutine, InteractionAdapt, true},
		{KindRoutine, InteractionReroll, false},
		{KindIngredient, InteractionLike, true},
		{KindIngredient, InteractionSave, false},
	}

	for _, tt := range tests {
		if got := ValidInteraction(tt.kind, tt.typ); got != tt.valid {
			t.Errorf("ValidInteraction(%s, %s) = %v, want %v", tt.kind, tt.typ, got, tt.valid)
		}
	}
}
