package handler

import (
	"github.com/sanjaykhatri/induction-backend/internal/dto"
	"github.com/sanjaykhatri/induction-backend/internal/middleware"
	"github.com/sanjaykhatri/induction-backend/internal/service"
	"github.com/sanjaykhatri/induction-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SubmissionHandler serves the employee-facing submission endpoints.
type SubmissionHandler struct {
	submissionService service.SubmissionService
	validator         *validation.Validator
}

// NewSubmissionHandler creates a new SubmissionHandler instance.
func NewSubmissionHandler(submissionService service.SubmissionService, validator *validation.Validator) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService, validator: validator}
}

// Start godoc
// @Summary Start or resume an induction
// @Description Creates a new submission with a content snapshot, or returns the existing one. A completed submission is checked for chapters added since.
// @Tags submissions
// @Security ApiKeyAuth
// @Produce json
// @Param induction_id path string true "Induction ID"
// @Success 200 {object} dto.StartInductionResponse
// @Failure 400 {object} middleware.ErrorResponse "Induction inactive"
// @Failure 404 {object} middleware.ErrorResponse "Induction not found"
// @Router /inductions/{induction_id}/start [post]
func (h *SubmissionHandler) Start(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)
	resp, err := h.submissionService.Start(c.Context(), userID, c.Params("induction_id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetCompleted godoc
// @Summary Get completed submission
// @Description Returns the user's completed submission for an induction, for review.
// @Tags submissions
// @Security ApiKeyAuth
// @Produce json
// @Param induction_id path string true "Induction ID"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 404 {object} middleware.ErrorResponse "No completed submission"
// @Router /inductions/{induction_id}/completed [get]
func (h *SubmissionHandler) GetCompleted(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)
	resp, err := h.submissionService.GetCompleted(c.Context(), userID, c.Params("induction_id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Get godoc
// @Summary Get a submission
// @Description Returns one of the user's own submissions with its snapshot.
// @Tags submissions
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 403 {object} middleware.ErrorResponse "Not the owner"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /submissions/{id} [get]
func (h *SubmissionHandler) Get(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)
	resp, err := h.submissionService.Get(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswers godoc
// @Summary Submit chapter answers
// @Description Stores answers for one chapter. The chapter's video must be watched first. Answering the last open question moves the submission to pending or completed.
// @Tags submissions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param request body dto.SubmitAnswersRequest true "Answers payload"
// @Success 200 {object} dto.SubmitAnswersResponse
// @Failure 400 {object} middleware.ErrorResponse "Already completed"
// @Failure 403 {object} middleware.ErrorResponse "Video not completed"
// @Router /submissions/{id}/answers [post]
func (h *SubmissionHandler) SubmitAnswers(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	var req dto.SubmitAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := h.validator.ValidateSubmitAnswersRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.submissionService.SubmitAnswers(c.Context(), userID, c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Complete godoc
// @Summary Complete a submission
// @Description Finalizes the submission once every question is answered and every video watched. If chapters were added since the snapshot was taken, the snapshot is extended instead and completion is refused.
// @Tags submissions
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} dto.CompleteSubmissionResponse
// @Failure 400 {object} middleware.ErrorResponse "Incomplete or already completed"
// @Router /submissions/{id}/complete [post]
func (h *SubmissionHandler) Complete(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)
	resp, err := h.submissionService.Complete(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetLastUnanswered godoc
// @Summary Find where to resume
// @Description Returns the first chapter with an unwatched video or an unanswered question.
// @Tags submissions
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} dto.LastUnansweredResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /submissions/{id}/last-unanswered [get]
func (h *SubmissionHandler) GetLastUnanswered(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)
	resp, err := h.submissionService.GetLastUnanswered(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
