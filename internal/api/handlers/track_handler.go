package handlers

import (
	"enroll-docs/internal/checklist"
	"enroll-docs/internal/dto"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TrackHandler struct {
	catalog *checklist.Catalog
	logger  *zap.Logger
}

func NewTrackHandler(catalog *checklist.Catalog, logger *zap.Logger) *TrackHandler {
	return &TrackHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListTracks godoc
// @Summary List enrollment tracks
// @Description All tracks with their document requirements
// @Tags tracks
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.TrackResponse
// @Router /api/v1/tracks [get]
func (h *TrackHandler) ListTracks(c *fiber.Ctx) error {
	tracks := h.catalog.Tracks()

	responses := make([]dto.TrackResponse, len(tracks))
	for i, track := range tracks {
		responses[i] = dto.TrackResponse{
			ID:           track.ID,
			Name:         track.Name,
			Requirements: requirementResponses(track.Requirements),
		}
	}

	return c.JSON(responses)
}

// GetRequirements godoc
// @Summary Get a track's document requirements
// @Tags tracks
// @Produce json
// @Param id path string true "Track ID"
// @Security Bearer
// @Success 200 {array} dto.RequirementResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/tracks/{id}/requirements [get]
func (h *TrackHandler) GetRequirements(c *fiber.Ctx) error {
	reqs, err := h.catalog.Requirements(c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(requirementResponses(reqs))
}

func requirementResponses(reqs []checklist.Requirement) []dto.RequirementResponse {
	responses := make([]dto.RequirementResponse, len(reqs))
	for i, req := range reqs {
		responses[i] = dto.RequirementResponse{
			Type:            string(req.Type),
			Label:           req.Label,
			Required:        req.Required,
			AcceptedFormats: req.AcceptedFormats,
			MaxSizeBytes:    req.MaxSizeBytes,
		}
	}
	return responses
}
