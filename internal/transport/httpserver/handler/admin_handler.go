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

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	matchService *service.MatchService
	validator    *validator.Validator
	logger       *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(matchSvc *service.MatchService, v *validator.Validator, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		matchService: matchSvc,
		validator:    v,
		logger:       logger,
	}
}

// Rescore handles POST /api/v1/admin/rescore
//
// With a user_id in the body, rescores that single user. Without one, runs
// a full pass over every user holding a published score set.
func (h *AdminHandler) Rescore(c *fiber.Ctx) error {
	var req dto.RescoreRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "invalid request body",
				Code:  "INVALID_BODY",
			})
		}
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	if req.UserID != "" {
		h.logger.Info("manual user rescore triggered", zap.String("user_id", req.UserID))

		if err := h.matchService.RescoreUser(c.Context(), req.UserID); err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Error: "user has no hair profile",
					Code:  "NO_PROFILE",
				})
			}

			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: err.Error(),
				Code:  "RESCORE_FAILED",
			})
		}

		return c.JSON(fiber.Map{"user_id": req.UserID, "rescored": true})
	}

	h.logger.Info("manual full rescore triggered")

	results, err := h.matchService.RescoreAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "RESCORE_FAILED",
		})
	}

	return c.JSON(dto.FromRescoreResults(results))
}
