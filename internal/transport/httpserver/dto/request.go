// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

// MatchListRequest represents query parameters for listing a user's matches.
// Exactly one of UserID or ProfileCode must be provided: user_id serves the
// persisted ranked set, profile_code computes ad hoc.
type MatchListRequest struct {
	UserID      string `query:"user_id" validate:"required_without=ProfileCode,excluded_with=ProfileCode,omitempty,max=100"`
	ProfileCode string `query:"profile_code" validate:"required_without=UserID,omitempty,profile_code"`
}

// MatchGetRequest represents query parameters for scoring one entity.
// Exactly one of UserID or ProfileCode must be provided: user_id is
// resolved to the user's profile code first.
type MatchGetRequest struct {
	UserID      string `query:"user_id" validate:"required_without=ProfileCode,excluded_with=ProfileCode,omitempty,max=100"`
	ProfileCode string `query:"profile_code" validate:"required_without=UserID,omitempty,profile_code"`
}

// SimilarityRequest represents query parameters for pairwise similarity.
type SimilarityRequest struct {
	CodeA string `query:"a" validate:"required,profile_code"`
	CodeB string `query:"b" validate:"required,profile_code"`
}

// InteractionRequest represents the request body for recording an
// interaction event.
type InteractionRequest struct {
	UserID     string `json:"user_id" validate:"required,max=100"`
	EntityKind string `json:"entity_kind" validate:"required,oneof=product routine ingredient"`
	EntityID   string `json:"entity_id" validate:"required,max=100"`
	Type       string `json:"type" validate:"required,oneof=like dislike save view routine_add reroll adapt"`
}

// RescoreRequest represents the request body for an admin rescore. An empty
// user_id rescores every scored user.
type RescoreRequest struct {
	UserID string `json:"user_id" validate:"omitempty,max=100"`
}
