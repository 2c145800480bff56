package dto

type SelectTrackRequest struct {
	TrackID string `json:"track_id" validate:"required"`
}

// SlotResponse is one checklist row: the requirement plus whatever is
// currently attached to it.
type SlotResponse struct {
	Type            string   `json:"type"`
	Label           string   `json:"label"`
	Required        bool     `json:"required"`
	AcceptedFormats []string `json:"accepted_formats"`
	MaxSizeBytes    int64    `json:"max_size_bytes"`
	Attached        bool     `json:"attached"`
	FileName        string   `json:"file_name,omitempty"`
	FileSize        int64    `json:"file_size,omitempty"`
	UploadedAt      string   `json:"uploaded_at,omitempty"`
}

type ChecklistResponse struct {
	TrackID string         `json:"track_id"`
	Phase   string         `json:"phase"`
	Ready   bool           `json:"ready"`
	Missing []string       `json:"missing,omitempty"`
	Slots   []SlotResponse `json:"slots"`
}

// SlotErrorResponse reports a per-slot validation failure so the client can
// highlight the offending upload field.
type SlotErrorResponse struct {
	Error           string   `json:"error"`
	DocumentType    string   `json:"document_type"`
	Reason          string   `json:"reason"`
	AcceptedFormats []string `json:"accepted_formats,omitempty"`
	MaxSizeBytes    int64    `json:"max_size_bytes,omitempty"`
}

type ReceiptResponse struct {
	ReceiptNumber string             `json:"receipt_number"`
	TrackID       string             `json:"track_id"`
	SubmittedAt   string             `json:"submitted_at"`
	Documents     []DocumentResponse `json:"documents"`
}
