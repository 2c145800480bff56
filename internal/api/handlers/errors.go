package handlers

import (
	"errors"

	"enroll-docs/internal/checklist"
	"enroll-docs/internal/dto"
	"enroll-docs/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError maps service and checklist errors onto HTTP responses.
// Checklist validation failures keep their slot detail so the client can
// highlight the offending upload field.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	var vErr *checklist.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.SlotErrorResponse{
			Error:           vErr.Error(),
			DocumentType:    string(vErr.DocumentType),
			Reason:          string(vErr.Reason),
			AcceptedFormats: vErr.AcceptedFormats,
			MaxSizeBytes:    vErr.MaxSizeBytes,
		})
	}

	var incErr *checklist.IncompleteError
	if errors.As(err, &incErr) {
		missing := make([]string, len(incErr.Missing))
		for i, m := range incErr.Missing {
			missing[i] = string(m)
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "Submission incomplete",
			"missing": missing,
		})
	}

	var fieldErr *service.FieldError
	if errors.As(err, &fieldErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fieldErr.Error(),
			"field": fieldErr.Field,
		})
	}

	switch {
	case errors.Is(err, checklist.ErrUnknownTrack):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unknown track"})
	case errors.Is(err, checklist.ErrUnknownDocumentType):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown document type for track"})
	case errors.Is(err, checklist.ErrAlreadySubmitted):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Submission already finalized"})
	case errors.Is(err, service.ErrTrackNotSelected):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Select a track first"})
	case errors.Is(err, service.ErrApplicantExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	case errors.Is(err, service.ErrApplicantNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Applicant not found"})
	case errors.Is(err, service.ErrNoSubmission):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No submission yet"})
	case errors.Is(err, service.ErrDocumentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
	default:
		logger.Error("Request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
