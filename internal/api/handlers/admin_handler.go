package handlers

import (
	"fmt"

	"enroll-docs/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminHandler struct {
	adminService *service.AdminService
	logger       *zap.Logger
}

func NewAdminHandler(adminService *service.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// ListApplicants godoc
// @Summary List applicants with submission progress
// @Tags admin
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Security Bearer
// @Success 200 {array} dto.ApplicantSummaryResponse
// @Failure 403 {object} map[string]string
// @Router /api/v1/admin/applicants [get]
func (h *AdminHandler) ListApplicants(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	applicants, err := h.adminService.ListApplicants(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(applicants)
}

// ListApplicantDocuments godoc
// @Summary List an applicant's documents
// @Tags admin
// @Produce json
// @Param id path string true "Applicant ID"
// @Security Bearer
// @Success 200 {array} dto.DocumentResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/applicants/{id}/documents [get]
func (h *AdminHandler) ListApplicantDocuments(c *fiber.Ctx) error {
	applicantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid applicant ID",
		})
	}

	docs, err := h.adminService.ListApplicantDocuments(c.Context(), applicantID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(docs)
}

// DownloadDocument godoc
// @Summary Download a stored document
// @Tags admin
// @Produce octet-stream
// @Param id path string true "Document ID"
// @Security Bearer
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/documents/{id}/download [get]
func (h *AdminHandler) DownloadDocument(c *fiber.Ctx) error {
	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID",
		})
	}

	doc, rc, err := h.adminService.OpenDocument(c.Context(), documentID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.FileName))
	return c.SendStream(rc, int(doc.FileSize))
}

// ListAuditEvents godoc
// @Summary List recent audit events
// @Tags admin
// @Produce json
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Security Bearer
// @Success 200 {array} dto.AuditEventResponse
// @Failure 403 {object} map[string]string
// @Router /api/v1/admin/audit [get]
func (h *AdminHandler) ListAuditEvents(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	events, err := h.adminService.ListAuditEvents(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(events)
}
