package dto

type DocumentResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	FileName  string `json:"file_name"`
	FileSize  int64  `json:"file_size"`
	CreatedAt string `json:"created_at"`
}

type AuditEventResponse struct {
	ID          string `json:"id"`
	ApplicantID string `json:"applicant_id"`
	Action      string `json:"action"`
	Detail      string `json:"detail,omitempty"`
	CreatedAt   string `json:"created_at"`
}
