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

// InteractionHandler handles interaction-related HTTP requests.
type InteractionHandler struct {
	service   *service.InteractionService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewInteractionHandler creates a new InteractionHandler.
func NewInteractionHandler(svc *service.InteractionService, v *validator.Validator, logger *zap.Logger) *InteractionHandler {
	return &InteractionHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Record handles POST /api/v1/interactions
func (h *InteractionHandler) Record(c *fiber.Ctx) error {
	var req dto.InteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	score, err := h.service.Record(
		c.Context(),
		req.UserID,
		domain.EntityKind(req.EntityKind),
		req.EntityID,
		domain.InteractionType(req.Type),
	)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInteraction) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_INTERACTION",
			})
		}

		h.logger.Error("recording interaction failed",
			zap.String("user_id", req.UserID),
			zap.String("entity_id", req.EntityID),
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "recording interaction failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	resp := dto.InteractionResponse{Recorded: true}
	if score != nil {
		s := dto.FromMatchScore(score)
		resp.Score = &s
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}
