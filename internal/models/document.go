package models

import (
	"time"

	"enroll-docs/internal/checklist"

	"github.com/google/uuid"
)

type Document struct {
	ID          uuid.UUID              `db:"id"`
	ApplicantID uuid.UUID              `db:"applicant_id"`
	Type        checklist.DocumentType `db:"type"`
	FileName    string                 `db:"file_name"`
	FileSize    int64                  `db:"file_size"`
	StoredPath  string                 `db:"stored_path"`
	CreatedAt   time.Time              `db:"created_at"`
	UpdatedAt   time.Time              `db:"updated_at"`
}
