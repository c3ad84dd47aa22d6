package handler

import (
	"github.com/sanjaykhatri/induction-backend/internal/dto"
	"github.com/sanjaykhatri/induction-backend/internal/middleware"
	"github.com/sanjaykhatri/induction-backend/internal/service"
	"github.com/sanjaykhatri/induction-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// VideoHandler serves the video watch-tracking endpoints.
type VideoHandler struct {
	videoService service.VideoService
	validator    *validation.Validator
}

// NewVideoHandler creates a new VideoHandler instance.
func NewVideoHandler(videoService service.VideoService, validator *validation.Validator) *VideoHandler {
	return &VideoHandler{videoService: videoService, validator: validator}
}

// ReportProgress godoc
// @Summary Report video progress
// @Description Upserts the watch record for a chapter. Reaching 100% marks the video completed.
// @Tags videos
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param chapter_id path string true "Chapter ID"
// @Param request body dto.VideoProgressRequest true "Progress payload"
// @Success 200 {object} dto.VideoCompletionResponse
// @Failure 403 {object} middleware.ErrorResponse "Not the submission owner"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /chapters/{chapter_id}/video-progress [post]
func (h *VideoHandler) ReportProgress(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	var req dto.VideoProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := h.validator.ValidateVideoProgressRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.videoService.ReportProgress(c.Context(), userID, c.Params("chapter_id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// MarkCompleted godoc
// @Summary Mark a video completed
// @Description Marks the chapter video fully watched regardless of reported progress.
// @Tags videos
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param chapter_id path string true "Chapter ID"
// @Param request body dto.MarkVideoCompletedRequest true "Completion payload"
// @Success 200 {object} dto.VideoCompletionResponse
// @Failure 403 {object} middleware.ErrorResponse "Not the submission owner"
// @Router /chapters/{chapter_id}/video-completed [post]
func (h *VideoHandler) MarkCompleted(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	var req dto.MarkVideoCompletedRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := h.validator.ValidateMarkVideoCompletedRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.videoService.MarkCompleted(c.Context(), userID, c.Params("chapter_id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CheckCompletion godoc
// @Summary Check video completion
// @Description Returns the watch state for a chapter within a submission. No record means not started.
// @Tags videos
// @Security ApiKeyAuth
// @Produce json
// @Param chapter_id path string true "Chapter ID"
// @Param submission_id query string true "Submission ID"
// @Success 200 {object} dto.CheckCompletionResponse
// @Failure 403 {object} middleware.ErrorResponse "Not the submission owner"
// @Router /chapters/{chapter_id}/video-completion [get]
func (h *VideoHandler) CheckCompletion(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)
	submissionID := c.Query("submission_id")
	if submissionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "submission_id is required")
	}

	resp, err := h.videoService.CheckCompletion(c.Context(), userID, c.Params("chapter_id"), submissionID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
