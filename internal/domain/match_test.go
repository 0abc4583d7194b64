package domain

import (
	"math"
	"testing"
)

func TestCombineProductScores(t *testing.T) {
	tests := []struct {
		name                   string
		ingredient, engagement float64
		expected               float64
	}{
		{"reference combination", 0.8, 0.6, 0.8*0.6 + 0.6*0.4},
		{"both neutral", 0.5, 0.5, 0.5},
		{"both zero", 0, 0, 0},
		{"both max", 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CombineProductScores(tt.ingredient, tt.engagement)
			if math.Abs(got-tt.expected) > floatTolerance {
				t.Errorf("CombineProductScores(%v, %v) = %v, want %v",
					tt.ingredient, tt.engagement, got, tt.expected)
			}
		})
	}
}

func TestCombineRoutineScores(t *testing.T) {
	// Community validation dominates routine ranking.
	got := CombineRoutineScores(0.9, 0.2)
	expected := 0.9*0.1 + 0.2*0.9
	if math.Abs(got-expected) > floatTolerance {
		t.Errorf("CombineRoutineScores(0.9, 0.2) = %v, want %v", got, expected)
	}

	if CombineRoutineScores(0.5, 0.5) != 0.5 {
		t.Error("neutral sub-scores should combine to neutral")
	}
}

func TestSortMatchScores(t *testing.T) {
	scores := []*MatchScore{
		{EntityID: "a", TotalScore: 0.4},
		{EntityID: "b", TotalScore: 0.9},
		{EntityID: "c", TotalScore: 0.6},
		{EntityID: "d", TotalScore: 0.6},
		{EntityID: "e", TotalScore: 0.1},
	}

	SortMatchScores(scores)

	wantOrder := []string{"b", "c", "d", "e"}
	gotOrder := []string{scores[0].EntityID, scores[1].EntityID, scores[2].EntityID, scores[4].EntityID}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("sorted order = %v", ids(scores))
		}
	}

	// Stable: ties keep input order.
	if scores[1].EntityID != "c" || scores[2].EntityID != "d" {
		t.Errorf("tie order not stable: %v", ids(scores))
	}
}

func ids(scores []*MatchScore) []string {
	out := make([]string, len(scores))
	for i, s := range scores {
		out[i] = s.EntityID
	}
	return out
}
