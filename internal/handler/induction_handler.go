package handler

import (
	"github.com/sanjaykhatri/induction-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// InductionHandler serves the employee-facing induction endpoints.
type InductionHandler struct {
	inductionService service.InductionService
}

// NewInductionHandler creates a new InductionHandler instance.
func NewInductionHandler(inductionService service.InductionService) *InductionHandler {
	return &InductionHandler{inductionService: inductionService}
}

// ListActive godoc
// @Summary List active inductions
// @Description Returns all active inductions with chapters and questions. Correct answers are omitted.
// @Tags inductions
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.InductionResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /inductions [get]
func (h *InductionHandler) ListActive(c *fiber.Ctx) error {
	inductions, err := h.inductionService.ListActive(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(inductions)
}
