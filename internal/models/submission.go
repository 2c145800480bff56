package models

import (
	"time"

	"github.com/google/uuid"
)

type Submission struct {
	ID            uuid.UUID `db:"id"`
	ApplicantID   uuid.UUID `db:"applicant_id"`
	TrackID       string    `db:"track_id"`
	ReceiptNumber string    `db:"receipt_number"`
	SubmittedAt   time.Time `db:"submitted_at"`
}
