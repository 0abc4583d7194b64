package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haircare-match-service/internal/validator"
)

func newTestValidator() *validator.Validator {
	return validator.New()
}

// TestMatchListRequest_Validation covers the user_id / profile_code
// either-or rule.
func TestMatchListRequest_Validation(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		req     MatchListRequest
		wantErr bool
	}{
		{
			name: "user_id only",
			req:  MatchListRequest{UserID: "user-1"},
		},
		{
			name: "profile_code only",
			req:  MatchListRequest{ProfileCode: "CU-H-M-F-N"},
		},
		{
			name:    "neither provided",
			req:     MatchListRequest{},
			wantErr: true,
		},
		{
			name:    "both provided",
			req:     MatchListRequest{UserID: "user-1", ProfileCode: "CU-H-M-F-N"},
			wantErr: true,
		},
		{
			name:    "malformed profile code",
			req:     MatchListRequest{ProfileCode: "CU-H-M"},
			wantErr: true,
		},
		{
			name:    "unknown token in profile code",
			req:     MatchListRequest{ProfileCode: "ZZ-H-M-F-N"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestMatchGetRequest_Validation covers the user/code either-or.
func TestMatchGetRequest_Validation(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.Validate(&MatchGetRequest{ProfileCode: "ST-M-M-M-N"}))
	assert.NoError(t, v.Validate(&MatchGetRequest{UserID: "user-1"}))
	assert.Error(t, v.Validate(&MatchGetRequest{}))
	assert.Error(t, v.Validate(&MatchGetRequest{UserID: "user-1", ProfileCode: "ST-M-M-M-N"}))
	assert.Error(t, v.Validate(&MatchGetRequest{ProfileCode: "not-a-code"}))
}

// TestSimilarityRequest_Validation covers both code parameters.
func TestSimilarityRequest_Validation(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.Validate(&SimilarityRequest{CodeA: "CU-H-M-F-N", CodeB: "ST-L-L-C-X"}))
	assert.Error(t, v.Validate(&SimilarityRequest{CodeA: "CU-H-M-F-N"}))
	assert.Error(t, v.Validate(&SimilarityRequest{CodeA: "CU-H-M-F-N", CodeB: "bogus"}))
}

// TestInteractionRequest_Validation covers the closed kind and type sets.
func TestInteractionRequest_Validation(t *testing.T) {
	v := newTestValidator()

	valid := InteractionRequest{
		UserID:     "user-1",
		EntityKind: "product",
		EntityID:   "product-1",
		Type:       "like",
	}
	require.NoError(t, v.Validate(&valid))

	tests := []struct {
		name   string
		mutate func(r *InteractionRequest)
	}{
		{"missing user", func(r *InteractionRequest) { r.UserID = "" }},
		{"missing entity id", func(r *InteractionRequest) { r.EntityID = "" }},
		{"unknown kind", func(r *InteractionRequest) { r.EntityKind = "shop" }},
		{"unknown type", func(r *InteractionRequest) { r.Type = "purchase" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, v.Validate(&req))
		})
	}
}
