package dto

type RequirementResponse struct {
	Type            string   `json:"type"`
	Label           string   `json:"label"`
	Required        bool     `json:"required"`
	AcceptedFormats []string `json:"accepted_formats"`
	MaxSizeBytes    int64    `json:"max_size_bytes"`
}

type TrackResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Requirements []RequirementResponse `json:"requirements"`
}
