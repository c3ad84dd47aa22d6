package handler

import (
	"github.com/sanjaykhatri/induction-backend/internal/dto"
	"github.com/sanjaykhatri/induction-backend/internal/service"
	"github.com/sanjaykhatri/induction-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves submission oversight and admin account management.
type AdminHandler struct {
	submissionService service.SubmissionService
	adminService      service.AdminService
	validator         *validation.Validator
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(submissionService service.SubmissionService, adminService service.AdminService, validator *validation.Validator) *AdminHandler {
	return &AdminHandler{
		submissionService: submissionService,
		adminService:      adminService,
		validator:         validator,
	}
}

// ListSubmissions godoc
// @Summary List submissions
// @Description Returns a filtered, paginated list of submissions across all users.
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param induction_id query string false "Filter by induction"
// @Param status query string false "Filter by status"
// @Param date_from query string false "Created on or after (YYYY-MM-DD)"
// @Param date_to query string false "Created on or before (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.SubmissionListResponse
// @Router /admin/submissions [get]
func (h *AdminHandler) ListSubmissions(c *fiber.Ctx) error {
	var filters dto.SubmissionListFilters
	if err := c.QueryParser(&filters); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}

	resp, err := h.submissionService.ListSubmissions(c.Context(), filters)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ReviewSubmission godoc
// @Summary Review a submission
// @Description Returns per-question grading against the submission's snapshot, with aggregate statistics.
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} dto.SubmissionReviewResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/submissions/{id}/review [get]
func (h *AdminHandler) ReviewSubmission(c *fiber.Ctx) error {
	resp, err := h.submissionService.Review(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListAdmins godoc
// @Summary List admin accounts
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Router /admin/admins [get]
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.adminService.ListAdmins(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(admins)
}

// CreateAdmin godoc
// @Summary Create an admin account
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAdminRequest true "Admin payload"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Email already in use"
// @Router /admin/admins [post]
func (h *AdminHandler) CreateAdmin(c *fiber.Ctx) error {
	var req dto.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := h.validator.ValidateCreateAdminRequest(&req); len(errs) > 0 {
		return errs
	}

	admin, err := h.adminService.CreateAdmin(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(admin)
}

// UpdateAdmin godoc
// @Summary Update an admin account
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Admin ID"
// @Param request body dto.UpdateAdminRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/admins/{id} [put]
func (h *AdminHandler) UpdateAdmin(c *fiber.Ctx) error {
	var req dto.UpdateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	admin, err := h.adminService.UpdateAdmin(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(admin)
}

// RemoveAdmin godoc
// @Summary Revoke admin access
// @Description Downgrades the account to a regular user instead of deleting it.
// @Tags admin
// @Security ApiKeyAuth
// @Param id path string true "Admin ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/admins/{id} [delete]
func (h *AdminHandler) RemoveAdmin(c *fiber.Ctx) error {
	if err := h.adminService.RemoveAdmin(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Admin access revoked"})
}
