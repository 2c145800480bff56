package handlers

import (
	"enroll-docs/internal/checklist"
	"enroll-docs/internal/dto"
	"enroll-docs/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SubmissionHandler struct {
	subService *service.SubmissionService
	logger     *zap.Logger
}

func NewSubmissionHandler(subService *service.SubmissionService, logger *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		subService: subService,
		logger:     logger,
	}
}

// SelectTrack godoc
// @Summary Select the enrollment track
// @Description Set or replace the applicant's track; rejected once submitted
// @Tags submission
// @Accept json
// @Produce json
// @Param request body dto.SelectTrackRequest true "Track selection"
// @Security Bearer
// @Success 200 {object} dto.ChecklistResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/submission/track [put]
func (h *SubmissionHandler) SelectTrack(c *fiber.Ctx) error {
	applicantID, err := getApplicantID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.SelectTrackRequest
	if err := c.BodyParser(&req); err != nil || req.TrackID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "track_id is required",
		})
	}

	if err := h.subService.SelectTrack(c.Context(), applicantID, req.TrackID); err != nil {
		return respondError(c, h.logger, err)
	}

	resp, err := h.subService.GetChecklist(c.Context(), applicantID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// AttachDocument godoc
// @Summary Attach a document to a checklist slot
// @Description Upload a file for one required document type; replaces a prior upload of the same type
// @Tags submission
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file"
// @Param type formData string true "Document type"
// @Security Bearer
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} dto.SlotErrorResponse
// @Router /api/v1/submission/documents [post]
func (h *SubmissionHandler) AttachDocument(c *fiber.Ctx) error {
	applicantID, err := getApplicantID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	docType := c.FormValue("type")
	if docType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Type is required",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	doc, err := h.subService.AttachDocument(c.Context(), applicantID,
		checklist.DocumentType(docType), file.Filename, file.Size, src)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

// DetachDocument godoc
// @Summary Remove an attached document
// @Tags submission
// @Produce json
// @Param type path string true "Document type"
// @Security Bearer
// @Success 204
// @Failure 409 {object} map[string]string
// @Router /api/v1/submission/documents/{type} [delete]
func (h *SubmissionHandler) DetachDocument(c *fiber.Ctx) error {
	applicantID, err := getApplicantID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	docType := checklist.DocumentType(c.Params("type"))
	if err := h.subService.DetachDocument(c.Context(), applicantID, docType); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetChecklist godoc
// @Summary Get the submission checklist status
// @Description Per-slot status, phase and readiness of the applicant's submission
// @Tags submission
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ChecklistResponse
// @Failure 409 {object} map[string]string
// @Router /api/v1/submission [get]
func (h *SubmissionHandler) GetChecklist(c *fiber.Ctx) error {
	applicantID, err := getApplicantID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	resp, err := h.subService.GetChecklist(c.Context(), applicantID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Submit godoc
// @Summary Finalize the submission
// @Description Submit the collected documents; fails while required slots are missing
// @Tags submission
// @Produce json
// @Security Bearer
// @Success 201 {object} dto.ReceiptResponse
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/submission/submit [post]
func (h *SubmissionHandler) Submit(c *fiber.Ctx) error {
	applicantID, err := getApplicantID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	receipt, err := h.subService.Submit(c.Context(), applicantID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// GetReceipt godoc
// @Summary Get the submission receipt
// @Tags submission
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/submission/receipt [get]
func (h *SubmissionHandler) GetReceipt(c *fiber.Ctx) error {
	applicantID, err := getApplicantID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	receipt, err := h.subService.GetReceipt(c.Context(), applicantID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(receipt)
}

// ListDocuments godoc
// @Summary List the applicant's uploaded documents
// @Tags submission
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.DocumentResponse
// @Router /api/v1/submission/documents [get]
func (h *SubmissionHandler) ListDocuments(c *fiber.Ctx) error {
	applicantID, err := getApplicantID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	docs, err := h.subService.ListDocuments(c.Context(), applicantID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(docs)
}
