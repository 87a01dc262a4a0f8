package handlers

import (
	"finlens/internal/dto"
	"finlens/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type InsightHandler struct {
	insights *service.InsightService
	logger   *zap.Logger
}

func NewInsightHandler(insights *service.InsightService, logger *zap.Logger) *InsightHandler {
	return &InsightHandler{
		insights: insights,
		logger:   logger,
	}
}

// Ask godoc
// @Summary Ask a question about the statement
// @Description Answers using sanitized transaction context; raw narrations never leave the service
// @Tags insights
// @Accept json
// @Produce json
// @Param request body dto.AskInsightRequest true "Question"
// @Success 200 {object} dto.AskInsightResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/insights/ask [post]
func (h *InsightHandler) Ask(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.AskInsightRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Question is required",
		})
	}

	resp, err := h.insights.Ask(c.Context(), userID, &req)
	if err != nil {
		h.logger.Error("Insight request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Insight request failed",
		})
	}

	return c.JSON(resp)
}
