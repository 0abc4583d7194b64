// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"haircare-match-service/internal/app/service"
	"haircare-match-service/internal/domain"
	"haircare-match-service/internal/transport/httpserver/dto"
	"haircare-match-service/internal/validator"
)

// MatchHandler handles match-related HTTP requests.
type MatchHandler struct {
	service   *service.MatchService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(svc *service.MatchService, v *validator.Validator, logger *zap.Logger) *MatchHandler {
	return &MatchHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// ListProducts handles GET /api/v1/matches/products
func (h *MatchHandler) ListProducts(c *fiber.Ctx) error {
	return h.list(c, domain.KindProduct)
}

// ListRoutines handles GET /api/v1/matches/routines
func (h *MatchHandler) ListRoutines(c *fiber.Ctx) error {
	return h.list(c, domain.KindRoutine)
}

func (h *MatchHandler) list(c *fiber.Ctx, kind domain.EntityKind) error {
	var req dto.MatchListRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	var (
		scores []*domain.MatchScore
		err    error
	)
	if req.UserID != "" {
		scores, err = h.service.MatchesForUser(c.Context(), req.UserID, kind)
	} else if kind == domain.KindRoutine {
		scores, err = h.service.ScoreAllRoutines(c.Context(), req.ProfileCode)
	} else {
		scores, err = h.service.ScoreAllProducts(c.Context(), req.ProfileCode)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNoProfile) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "user has no hair profile",
				Code:  "NO_PROFILE",
			})
		}

		h.logger.Error("listing matches failed",
			zap.String("entity_kind", string(kind)),
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "listing matches failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromMatchScores(scores))
}

// GetProduct handles GET /api/v1/matches/products/:id
func (h *MatchHandler) GetProduct(c *fiber.Ctx) error {
	return h.get(c, domain.KindProduct)
}

// GetRoutine handles GET /api/v1/matches/routines/:id
func (h *MatchHandler) GetRoutine(c *fiber.Ctx) error {
	return h.get(c, domain.KindRoutine)
}

func (h *MatchHandler) get(c *fiber.Ctx, kind domain.EntityKind) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	var req dto.MatchGetRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	code := req.ProfileCode
	if req.UserID != "" {
		resolved, err := h.service.ProfileCodeForUser(c.Context(), req.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Error: "user has no hair profile",
					Code:  "NO_PROFILE",
				})
			}

			h.logger.Error("resolving profile code failed",
				zap.String("user_id", req.UserID),
				zap.Error(err),
			)

			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: "resolving profile code failed",
				Code:  "INTERNAL_ERROR",
			})
		}
		code = resolved
	}

	var (
		score *domain.MatchScore
		err   error
	)
	if kind == domain.KindRoutine {
		score, err = h.service.ScoreRoutine(c.Context(), id, code)
	} else {
		score, err = h.service.ScoreProduct(c.Context(), id, code)
	}
	if err != nil {
		h.logger.Error("scoring entity failed",
			zap.String("entity_kind", string(kind)),
			zap.String("id", id),
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "scoring failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	if score == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "entity not found",
			Code:  "NOT_FOUND",
		})
	}

	return c.JSON(dto.FromMatchScore(score))
}

// Similarity handles GET /api/v1/similarity
func (h *MatchHandler) Similarity(c *fiber.Ctx) error {
	var req dto.SimilarityRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	similarity := h.service.Similarity(req.CodeA, req.CodeB)

	return c.JSON(dto.SimilarityResponse{
		CodeA:      req.CodeA,
		CodeB:      req.CodeB,
		Similarity: similarity,
		Tier:       string(domain.ClassifyTier(similarity, domain.DefaultMinSimilarity)),
	})
}
