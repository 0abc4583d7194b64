package dto

import (
	"time"

	"haircare-match-service/internal/app/service"
	"haircare-match-service/internal/domain"
)

// MatchResponse represents a single scored entity in the response.
type MatchResponse struct {
	EntityID   string  `json:"entity_id"`
	EntityKind string  `json:"entity_kind"`
	TotalScore float64 `json:"total_score"`

	Breakdown          map[string]float64        `json:"breakdown"`
	MatchReasons       []string                  `json:"match_reasons,omitempty"`
	InteractionsByTier map[string]map[string]int `json:"interactions_by_tier,omitempty"`
	DataQuality        string                    `json:"data_quality"`

	Name     string `json:"name,omitempty"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category,omitempty"`

	ScoredAt string `json:"scored_at"`
}

// FromMatchScore converts domain.MatchScore to MatchResponse.
func FromMatchScore(s *domain.MatchScore) MatchResponse {
	var tiers map[string]map[string]int
	if len(s.InteractionsByTier) > 0 {
		tiers = make(map[string]map[string]int, len(s.InteractionsByTier))
		for tier, counts := range s.InteractionsByTier {
			m := make(map[string]int, len(counts))
			for typ, n := range counts {
				m[string(typ)] = n
			}
			tiers[string(tier)] = m
		}
	}

	return MatchResponse{
		EntityID:           s.EntityID,
		EntityKind:         string(s.EntityKind),
		TotalScore:         s.TotalScore,
		Breakdown:          s.Breakdown,
		MatchReasons:       s.MatchReasons,
		InteractionsByTier: tiers,
		DataQuality:        string(s.DataQuality),
		Name:               s.DisplayName,
		Brand:              s.DisplayBrand,
		Category:           s.DisplayCategory,
		ScoredAt:           s.ScoredAt.Format(time.RFC3339),
	}
}

// MatchListResponse represents a ranked list of matches.
type MatchListResponse struct {
	Matches []MatchResponse `json:"matches"`
	Count   int             `json:"count"`
}

// FromMatchScores converts a ranked score slice to MatchListResponse.
func FromMatchScores(scores []*domain.MatchScore) MatchListResponse {
	matches := make([]MatchResponse, len(scores))
	for i, s := range scores {
		matches[i] = FromMatchScore(s)
	}

	return MatchListResponse{
		Matches: matches,
		Count:   len(matches),
	}
}

// SimilarityResponse represents a pairwise profile similarity result.
type SimilarityResponse struct {
	CodeA      string  `json:"code_a"`
	CodeB      string  `json:"code_b"`
	Similarity float64 `json:"similarity"`
	Tier       string  `json:"tier"`
}

// InteractionResponse acknowledges a recorded interaction.
type InteractionResponse struct {
	Recorded bool           `json:"recorded"`
	Score    *MatchResponse `json:"score,omitempty"`
}

// RescoreResultResponse represents the outcome for one user in a rescore.
type RescoreResultResponse struct {
	UserID   string `json:"user_id"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// RescoreResponse represents the response for a bulk rescore operation.
type RescoreResponse struct {
	Results []RescoreResultResponse `json:"results"`
	Summary RescoreSummary          `json:"summary"`
}

// RescoreSummary holds the summary of a bulk rescore.
type RescoreSummary struct {
	UsersRescored int `json:"users_rescored"`
	UsersFailed   int `json:"users_failed"`
}

// FromRescoreResults converts service.RescoreResult slice to RescoreResponse.
func FromRescoreResults(results []service.RescoreResult) RescoreResponse {
	resp := RescoreResponse{
		Results: make([]RescoreResultResponse, len(results)),
	}

	for i, r := range results {
		errMsg := ""
		if r.Error != nil {
			errMsg = r.Error.Error()
			resp.Summary.UsersFailed++
		} else {
			resp.Summary.UsersRescored++
		}

		resp.Results[i] = RescoreResultResponse{
			UserID:   r.UserID,
			Duration: r.Duration.String(),
			Error:    errMsg,
		}
	}

	return resp
}

// HealthResponse represents health check response.
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
