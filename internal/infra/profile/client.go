package profile

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"haircare-match-service/internal/domain"
)

// endpoint is the profile service path for a user's published profile code.
const endpoint = "/api/v1/users/{user_id}/profile-code"

// Client implements domain.ProfileResolver against the profile service,
// the system of record for hair analysis results.
type Client struct {
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new profile service client.
func New(cfg ClientConfig, logger *zap.Logger) *Client {
	return &Client{
		client: newRestyClient(cfg),
		cb:     newCircuitBreaker[*resty.Response]("profile-service", cfg.CB),
		logger: logger,
	}
}

type profileCodeResponse struct {
	UserID      string `json:"user_id"`
	ProfileCode string `json:"profile_code"`
}

// ProfileCode returns the user's current profile code. A user who has not
// completed hair analysis yields domain.ErrNoProfile.
func (c *Client) ProfileCode(ctx context.Context, userID string) (string, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		var result profileCodeResponse
		r, err := c.client.R().
			SetContext(ctx).
			SetPathParam("user_id", userID).
			SetResult(&result).
			Get(endpoint)
		if err != nil {
			return nil, err
		}
		// 404 is a domain answer, not a transport failure; it must not
		// trip the breaker.
		if r.IsError() && r.StatusCode() != http.StatusNotFound {
			return nil, fmt.Errorf("profile service returned status %d", r.StatusCode())
		}

		return r, nil
	})
	if err != nil {
		c.logger.Warn("profile lookup failed",
			zap.String("user_id", userID),
			zap.String("state", c.cb.State().String()),
			zap.Error(err),
		)

		return "", fmt.Errorf("resolving profile for user %s: %w", userID, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return "", domain.ErrNoProfile
	}

	result := resp.Result().(*profileCodeResponse)
	if !domain.ValidProfileCode(result.ProfileCode) {
		return "", fmt.Errorf("profile service returned malformed code %q for user %s", result.ProfileCode, userID)
	}

	return result.ProfileCode, nil
}

// HealthCheck verifies the profile service is accessible.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
