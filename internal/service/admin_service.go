package service

import (
	"context"
	"errors"
	"io"
	"time"

	"enroll-docs/internal/checklist"
	"enroll-docs/internal/dto"
	"enroll-docs/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var ErrDocumentNotFound = errors.New("document not found")

// AdminService serves the staff views: applicant listings with submission
// progress, per-applicant documents, file downloads and the audit trail.
type AdminService struct {
	catalog     *checklist.Catalog
	applicants  ApplicantStore
	documents   DocumentStore
	submissions SubmissionStore
	audits      AuditStore
	files       BlobStore
	logger      *zap.Logger
}

func NewAdminService(
	catalog *checklist.Catalog,
	applicants ApplicantStore,
	documents DocumentStore,
	submissions SubmissionStore,
	audits AuditStore,
	files BlobStore,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		catalog:     catalog,
		applicants:  applicants,
		documents:   documents,
		submissions: submissions,
		audits:      audits,
		files:       files,
		logger:      logger,
	}
}

func (s *AdminService) ListApplicants(ctx context.Context, limit, offset int) ([]dto.ApplicantSummaryResponse, error) {
	applicants, err := s.applicants.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.ApplicantSummaryResponse, len(applicants))
	for i, a := range applicants {
		phase, err := s.applicantPhase(ctx, a)
		if err != nil {
			return nil, err
		}
		summaries[i] = dto.ApplicantSummaryResponse{
			ID:        a.ID.String(),
			Username:  a.Username,
			FirstName: a.FirstName,
			LastName:  a.LastName,
			CitizenID: a.CitizenID,
			TrackID:   a.TrackID,
			Phase:     string(phase),
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		}
	}

	return summaries, nil
}

func (s *AdminService) ListApplicantDocuments(ctx context.Context, applicantID uuid.UUID) ([]dto.DocumentResponse, error) {
	if _, err := s.applicants.GetByID(ctx, applicantID); err != nil {
		return nil, ErrApplicantNotFound
	}

	docs, err := s.documents.ListByApplicantID(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.DocumentResponse, len(docs))
	for i, doc := range docs {
		responses[i] = documentResponse(doc)
	}
	return responses, nil
}

// OpenDocument returns the document record and a reader over its stored
// bytes. The caller closes the reader.
func (s *AdminService) OpenDocument(ctx context.Context, documentID uuid.UUID) (*models.Document, io.ReadCloser, error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrDocumentNotFound
		}
		return nil, nil, err
	}

	rc, err := s.files.Open(doc.StoredPath)
	if err != nil {
		s.logger.Error("Document record exists but file is unreadable",
			zap.String("document_id", documentID.String()),
			zap.String("stored_path", doc.StoredPath),
			zap.Error(err))
		return nil, nil, ErrDocumentNotFound
	}

	return doc, rc, nil
}

func (s *AdminService) ListAuditEvents(ctx context.Context, limit, offset int) ([]dto.AuditEventResponse, error) {
	events, err := s.audits.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AuditEventResponse, len(events))
	for i, event := range events {
		responses[i] = dto.AuditEventResponse{
			ID:          event.ID.String(),
			ApplicantID: event.ApplicantID.String(),
			Action:      string(event.Action),
			Detail:      event.Detail,
			CreatedAt:   event.CreatedAt.Format(time.RFC3339),
		}
	}
	return responses, nil
}

func (s *AdminService) applicantPhase(ctx context.Context, a *models.Applicant) (checklist.Phase, error) {
	if a.TrackID == "" {
		return checklist.PhaseEmpty, nil
	}

	reqs, err := s.catalog.Requirements(a.TrackID)
	if err != nil {
		// Track removed from the catalog after selection; treat as empty
		// rather than failing the whole listing.
		s.logger.Warn("Applicant references unknown track",
			zap.String("applicant_id", a.ID.String()),
			zap.String("track_id", a.TrackID))
		return checklist.PhaseEmpty, nil
	}

	submitted := false
	if _, err := s.submissions.GetByApplicantID(ctx, a.ID); err == nil {
		submitted = true
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	docs, err := s.documents.ListByApplicantID(ctx, a.ID)
	if err != nil {
		return "", err
	}

	attachments := make([]checklist.Attachment, len(docs))
	for i, doc := range docs {
		attachments[i] = checklist.Attachment{
			Type:      doc.Type,
			FileName:  doc.FileName,
			SizeBytes: doc.FileSize,
		}
	}

	return checklist.RestoreState(attachments, submitted).Phase(reqs), nil
}
