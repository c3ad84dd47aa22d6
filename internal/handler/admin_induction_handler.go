package handler

import (
	"github.com/sanjaykhatri/induction-backend/internal/dto"
	"github.com/sanjaykhatri/induction-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminInductionHandler serves the admin content-management endpoints
// for inductions, chapters and questions.
type AdminInductionHandler struct {
	inductionService service.InductionService
	importService    service.ImportService
}

// NewAdminInductionHandler creates a new AdminInductionHandler instance.
func NewAdminInductionHandler(inductionService service.InductionService, importService service.ImportService) *AdminInductionHandler {
	return &AdminInductionHandler{inductionService: inductionService, importService: importService}
}

// ListInductions godoc
// @Summary List all inductions
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.InductionResponse
// @Router /admin/inductions [get]
func (h *AdminInductionHandler) ListInductions(c *fiber.Ctx) error {
	inductions, err := h.inductionService.ListInductions(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(inductions)
}

// GetInduction godoc
// @Summary Get an induction with chapters and questions
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Induction ID"
// @Success 200 {object} dto.InductionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/inductions/{id} [get]
func (h *AdminInductionHandler) GetInduction(c *fiber.Ctx) error {
	induction, err := h.inductionService.GetInduction(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(induction)
}

// CreateInduction godoc
// @Summary Create an induction
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateInductionRequest true "Induction payload"
// @Success 201 {object} dto.InductionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /admin/inductions [post]
func (h *AdminInductionHandler) CreateInduction(c *fiber.Ctx) error {
	var req dto.CreateInductionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	induction, err := h.inductionService.CreateInduction(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(induction)
}

// UpdateInduction godoc
// @Summary Update an induction
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Induction ID"
// @Param request body dto.UpdateInductionRequest true "Fields to change"
// @Success 200 {object} dto.InductionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/inductions/{id} [put]
func (h *AdminInductionHandler) UpdateInduction(c *fiber.Ctx) error {
	var req dto.UpdateInductionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	induction, err := h.inductionService.UpdateInduction(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(induction)
}

// DeleteInduction godoc
// @Summary Delete an induction
// @Tags admin
// @Security ApiKeyAuth
// @Param id path string true "Induction ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/inductions/{id} [delete]
func (h *AdminInductionHandler) DeleteInduction(c *fiber.Ctx) error {
	if err := h.inductionService.DeleteInduction(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Induction deleted"})
}

// ReorderInduction godoc
// @Summary Move an induction to a new position
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Param id path string true "Induction ID"
// @Param request body dto.ReorderRequest true "New display order"
// @Success 200 {object} dto.MessageResponse
// @Router /admin/inductions/{id}/reorder [post]
func (h *AdminInductionHandler) ReorderInduction(c *fiber.Ctx) error {
	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.inductionService.ReorderInduction(c.Context(), c.Params("id"), req.DisplayOrder); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Induction reordered"})
}

// ImportCSV godoc
// @Summary Import an induction from CSV
// @Description Builds an induction with chapters and questions from one CSV file. The import is transactional.
// @Tags admin
// @Security ApiKeyAuth
// @Accept mpfd
// @Produce json
// @Param file formData file true "CSV file"
// @Success 201 {object} dto.ImportResult
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /admin/inductions/import [post]
func (h *AdminInductionHandler) ImportCSV(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "CSV file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file")
	}
	defer file.Close()

	result, err := h.importService.ImportCSV(c.Context(), file)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// ListChapters godoc
// @Summary List an induction's chapters
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Induction ID"
// @Success 200 {array} dto.ChapterResponse
// @Router /admin/inductions/{id}/chapters [get]
func (h *AdminInductionHandler) ListChapters(c *fiber.Ctx) error {
	chapters, err := h.inductionService.ListChapters(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(chapters)
}

// CreateChapter godoc
// @Summary Create a chapter
// @Description Accepts multipart form data. Either an uploaded video file or a video_url is required.
// @Tags admin
// @Security ApiKeyAuth
// @Accept mpfd
// @Produce json
// @Param id path string true "Induction ID"
// @Success 201 {object} dto.ChapterResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /admin/inductions/{id}/chapters [post]
func (h *AdminInductionHandler) CreateChapter(c *fiber.Ctx) error {
	var req dto.CreateChapterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	video, closeVideo, err := formVideo(c)
	if err != nil {
		return err
	}
	defer closeVideo()

	chapter, err := h.inductionService.CreateChapter(c.Context(), c.Params("id"), &req, video)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(chapter)
}

// UpdateChapter godoc
// @Summary Update a chapter
// @Description Accepts multipart form data. Uploading a new video replaces the stored file.
// @Tags admin
// @Security ApiKeyAuth
// @Accept mpfd
// @Produce json
// @Param id path string true "Chapter ID"
// @Success 200 {object} dto.ChapterResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/chapters/{id} [put]
func (h *AdminInductionHandler) UpdateChapter(c *fiber.Ctx) error {
	var req dto.UpdateChapterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	video, closeVideo, err := formVideo(c)
	if err != nil {
		return err
	}
	defer closeVideo()

	chapter, err := h.inductionService.UpdateChapter(c.Context(), c.Params("id"), &req, video)
	if err != nil {
		return err
	}
	return c.JSON(chapter)
}

// DeleteChapter godoc
// @Summary Delete a chapter
// @Tags admin
// @Security ApiKeyAuth
// @Param id path string true "Chapter ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/chapters/{id} [delete]
func (h *AdminInductionHandler) DeleteChapter(c *fiber.Ctx) error {
	if err := h.inductionService.DeleteChapter(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Chapter deleted"})
}

// ReorderChapter godoc
// @Summary Move a chapter to a new position
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Param id path string true "Chapter ID"
// @Param request body dto.ReorderRequest true "New display order"
// @Success 200 {object} dto.MessageResponse
// @Router /admin/chapters/{id}/reorder [post]
func (h *AdminInductionHandler) ReorderChapter(c *fiber.Ctx) error {
	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.inductionService.ReorderChapter(c.Context(), c.Params("id"), req.DisplayOrder); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Chapter reordered"})
}

// ListQuestions godoc
// @Summary List a chapter's questions
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Chapter ID"
// @Success 200 {array} dto.QuestionResponse
// @Router /admin/chapters/{id}/questions [get]
func (h *AdminInductionHandler) ListQuestions(c *fiber.Ctx) error {
	questions, err := h.inductionService.ListQuestions(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(questions)
}

// CreateQuestion godoc
// @Summary Create a question
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Chapter ID"
// @Param request body dto.CreateQuestionRequest true "Question payload"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /admin/chapters/{id}/questions [post]
func (h *AdminInductionHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	question, err := h.inductionService.CreateQuestion(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(question)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param request body dto.UpdateQuestionRequest true "Fields to change"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{id} [put]
func (h *AdminInductionHandler) UpdateQuestion(c *fiber.Ctx) error {
	var req dto.UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	question, err := h.inductionService.UpdateQuestion(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(question)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags admin
// @Security ApiKeyAuth
// @Param id path string true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{id} [delete]
func (h *AdminInductionHandler) DeleteQuestion(c *fiber.Ctx) error {
	if err := h.inductionService.DeleteQuestion(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Question deleted"})
}

// ReorderQuestion godoc
// @Summary Move a question to a new position
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Param id path string true "Question ID"
// @Param request body dto.ReorderRequest true "New display order"
// @Success 200 {object} dto.MessageResponse
// @Router /admin/questions/{id}/reorder [post]
func (h *AdminInductionHandler) ReorderQuestion(c *fiber.Ctx) error {
	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.inductionService.ReorderQuestion(c.Context(), c.Params("id"), req.DisplayOrder); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Question reordered"})
}

// formVideo extracts the optional "video" multipart file. The returned
// close func is always safe to defer.
func formVideo(c *fiber.Ctx) (*service.VideoUpload, func(), error) {
	fileHeader, err := c.FormFile("video")
	if err != nil {
		// fiber returns an error when the part is absent; treat that as
		// "no upload" rather than a bad request.
		return nil, func() {}, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, func() {}, fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded video")
	}
	return &service.VideoUpload{Filename: fileHeader.Filename, Content: file}, func() { file.Close() }, nil
}
