package handler

import (
	"github.com/sanjaykhatri/induction-backend/internal/middleware"
	"github.com/sanjaykhatri/induction-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ProgressHandler serves the per-user progress endpoints.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler instance.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// Index godoc
// @Summary List my progress
// @Description Returns a completion rollup for each of the user's submissions.
// @Tags progress
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.UserProgressEntry
// @Failure 401 {object} middleware.ErrorResponse
// @Router /progress [get]
func (h *ProgressHandler) Index(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)
	entries, err := h.progressService.ListUserProgress(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

// Show godoc
// @Summary Get submission progress
// @Description Returns per-chapter video progress for one submission.
// @Tags progress
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} dto.SubmissionProgressResponse
// @Failure 403 {object} middleware.ErrorResponse "Not the owner"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /progress/{id} [get]
func (h *ProgressHandler) Show(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)
	resp, err := h.progressService.GetSubmissionProgress(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
