package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditActionRegistered     AuditAction = "registered"
	AuditActionProfileUpdated AuditAction = "profile_updated"
	AuditActionTrackSelected  AuditAction = "track_selected"
	AuditActionDocumentUpload AuditAction = "document_uploaded"
	AuditActionDocumentDetach AuditAction = "document_detached"
	AuditActionSubmitted      AuditAction = "submitted"
)

type AuditEvent struct {
	ID          uuid.UUID   `db:"id"`
	ApplicantID uuid.UUID   `db:"applicant_id"`
	Action      AuditAction `db:"action"`
	Detail      string      `db:"detail"`
	CreatedAt   time.Time   `db:"created_at"`
}
