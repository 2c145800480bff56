package service

import (
	"context"
	"io"

	"enroll-docs/internal/checklist"
	"enroll-docs/internal/models"

	"github.com/google/uuid"
)

// Store interfaces are defined on the consumer side so services can be
// exercised against in-memory fakes; the repository package satisfies them.

type ApplicantStore interface {
	Create(ctx context.Context, a *models.Applicant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Applicant, error)
	GetByUsername(ctx context.Context, username string) (*models.Applicant, error)
	IdentityInUse(ctx context.Context, column, value string, exclude uuid.UUID) (bool, error)
	Update(ctx context.Context, a *models.Applicant) error
	SetTrack(ctx context.Context, id uuid.UUID, trackID string) error
	List(ctx context.Context, limit, offset int) ([]*models.Applicant, error)
}

type DocumentStore interface {
	Upsert(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	ListByApplicantID(ctx context.Context, applicantID uuid.UUID) ([]*models.Document, error)
	// DeleteByType removes the record for a slot and returns its stored
	// path, or pgx.ErrNoRows when the slot is empty.
	DeleteByType(ctx context.Context, applicantID uuid.UUID, docType checklist.DocumentType) (string, error)
}

type SubmissionStore interface {
	Create(ctx context.Context, sub *models.Submission) error
	GetByApplicantID(ctx context.Context, applicantID uuid.UUID) (*models.Submission, error)
}

type AuditStore interface {
	Create(ctx context.Context, event *models.AuditEvent) error
	List(ctx context.Context, limit, offset int) ([]*models.AuditEvent, error)
}

// BlobStore holds document bytes; the disk file store implements it.
// Uploads are written in two steps: Stage keeps the prior file for the slot
// intact, Promote replaces it once the document record is persisted.
type BlobStore interface {
	Stage(applicantID uuid.UUID, docType checklist.DocumentType, fileName string, src io.Reader) (staged, stored string, size int64, err error)
	Promote(stagedName, storedName string) error
	Open(storedName string) (io.ReadCloser, error)
	Remove(storedName string) error
}
