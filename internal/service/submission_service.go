package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"enroll-docs/internal/checklist"
	"enroll-docs/internal/dto"
	"enroll-docs/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	ErrTrackNotSelected = errors.New("no track selected")
	ErrNoSubmission     = errors.New("no submission yet")
)

// SubmissionService drives the document checklist for one applicant:
// track selection, attaching and detaching files, readiness and the final
// submit. The checklist state itself is a pure value rebuilt from the
// document records on every command.
type SubmissionService struct {
	catalog     *checklist.Catalog
	applicants  ApplicantStore
	documents   DocumentStore
	submissions SubmissionStore
	audits      AuditStore
	files       BlobStore
	logger      *zap.Logger
}

func NewSubmissionService(
	catalog *checklist.Catalog,
	applicants ApplicantStore,
	documents DocumentStore,
	submissions SubmissionStore,
	audits AuditStore,
	files BlobStore,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		catalog:     catalog,
		applicants:  applicants,
		documents:   documents,
		submissions: submissions,
		audits:      audits,
		files:       files,
		logger:      logger,
	}
}

// Catalog exposes the track catalog for read-only listing.
func (s *SubmissionService) Catalog() *checklist.Catalog {
	return s.catalog
}

// SelectTrack sets or replaces the applicant's enrollment track. Attached
// documents are kept; they are revalidated against the new track's
// requirements at the next readiness check.
func (s *SubmissionService) SelectTrack(ctx context.Context, applicantID uuid.UUID, trackID string) error {
	if !s.catalog.HasTrack(trackID) {
		return fmt.Errorf("%w: %q", checklist.ErrUnknownTrack, trackID)
	}

	if _, err := s.submissions.GetByApplicantID(ctx, applicantID); err == nil {
		return checklist.ErrAlreadySubmitted
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if err := s.applicants.SetTrack(ctx, applicantID, trackID); err != nil {
		return err
	}

	s.recordAudit(ctx, applicantID, models.AuditActionTrackSelected, trackID)
	return nil
}

// AttachDocument validates the file against the requirement for its type
// and stores it, replacing any prior attachment of the same type. The
// upload is staged on disk first and only promoted over the prior file once
// the record write succeeds, so a failed write leaves the old attachment
// intact.
func (s *SubmissionService) AttachDocument(ctx context.Context, applicantID uuid.UUID, docType checklist.DocumentType, fileName string, declaredSize int64, src io.Reader) (*dto.DocumentResponse, error) {
	_, reqs, state, err := s.loadSession(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	fileName = sanitizeFileName(fileName)
	attachment := checklist.Attachment{Type: docType, FileName: fileName, SizeBytes: declaredSize}
	if _, err := state.Attach(reqs, attachment); err != nil {
		return nil, err
	}

	stagedName, storedName, writtenSize, err := s.files.Stage(applicantID, docType, fileName, src)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	// The multipart header size is declared by the client; the written byte
	// count is authoritative.
	if writtenSize != declaredSize {
		attachment.SizeBytes = writtenSize
		if _, err := state.Attach(reqs, attachment); err != nil {
			s.removeStoredFile(stagedName)
			return nil, err
		}
	}

	now := time.Now()
	doc := &models.Document{
		ID:          uuid.New(),
		ApplicantID: applicantID,
		Type:        docType,
		FileName:    fileName,
		FileSize:    writtenSize,
		StoredPath:  storedName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.documents.Upsert(ctx, doc); err != nil {
		s.removeStoredFile(stagedName)
		return nil, fmt.Errorf("failed to create document record: %w", err)
	}

	if err := s.files.Promote(stagedName, storedName); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	s.recordAudit(ctx, applicantID, models.AuditActionDocumentUpload,
		fmt.Sprintf("%s: %s (%d bytes)", docType, fileName, writtenSize))

	resp := documentResponse(doc)
	return &resp, nil
}

// DetachDocument clears the attachment for a document type: the record and
// the stored file are removed.
func (s *SubmissionService) DetachDocument(ctx context.Context, applicantID uuid.UUID, docType checklist.DocumentType) error {
	_, _, state, err := s.loadSession(ctx, applicantID)
	if err != nil {
		return err
	}
	if state.Submitted() {
		return checklist.ErrAlreadySubmitted
	}

	storedPath, err := s.documents.DeleteByType(ctx, applicantID, docType)
	if err != nil {
		// An empty slot is a no-op.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	s.removeStoredFile(storedPath)

	s.recordAudit(ctx, applicantID, models.AuditActionDocumentDetach, string(docType))
	return nil
}

// GetChecklist reports the per-slot status, phase and readiness of the
// applicant's submission.
func (s *SubmissionService) GetChecklist(ctx context.Context, applicantID uuid.UUID) (*dto.ChecklistResponse, error) {
	applicant, reqs, state, err := s.loadSession(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	docs, err := s.documents.ListByApplicantID(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	docByType := make(map[checklist.DocumentType]*models.Document, len(docs))
	for _, doc := range docs {
		docByType[doc.Type] = doc
	}

	slots := make([]dto.SlotResponse, len(reqs))
	for i, req := range reqs {
		slot := dto.SlotResponse{
			Type:            string(req.Type),
			Label:           req.Label,
			Required:        req.Required,
			AcceptedFormats: req.AcceptedFormats,
			MaxSizeBytes:    req.MaxSizeBytes,
		}
		if doc, ok := docByType[req.Type]; ok {
			slot.Attached = true
			slot.FileName = doc.FileName
			slot.FileSize = doc.FileSize
			slot.UploadedAt = doc.UpdatedAt.Format(time.RFC3339)
		}
		slots[i] = slot
	}

	missing := state.Missing(reqs)
	missingStr := make([]string, len(missing))
	for i, m := range missing {
		missingStr[i] = string(m)
	}

	return &dto.ChecklistResponse{
		TrackID: applicant.TrackID,
		Phase:   string(state.Phase(reqs)),
		Ready:   state.Ready(reqs),
		Missing: missingStr,
		Slots:   slots,
	}, nil
}

// Submit finalizes the applicant's submission. It fails while required
// documents are missing and is rejected once a submission exists; on
// success a receipt is persisted and returned.
func (s *SubmissionService) Submit(ctx context.Context, applicantID uuid.UUID) (*dto.ReceiptResponse, error) {
	applicant, reqs, state, err := s.loadSession(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	if _, err := state.Submit(reqs); err != nil {
		return nil, err
	}

	now := time.Now()
	sub := &models.Submission{
		ID:            uuid.New(),
		ApplicantID:   applicantID,
		TrackID:       applicant.TrackID,
		ReceiptNumber: newReceiptNumber(now),
		SubmittedAt:   now,
	}

	if err := s.submissions.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to persist submission: %w", err)
	}

	s.recordAudit(ctx, applicantID, models.AuditActionSubmitted, sub.ReceiptNumber)

	return s.buildReceipt(ctx, sub)
}

// GetReceipt returns the receipt of a finalized submission.
func (s *SubmissionService) GetReceipt(ctx context.Context, applicantID uuid.UUID) (*dto.ReceiptResponse, error) {
	sub, err := s.submissions.GetByApplicantID(ctx, applicantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoSubmission
		}
		return nil, err
	}
	return s.buildReceipt(ctx, sub)
}

// ListDocuments lists the applicant's uploaded documents.
func (s *SubmissionService) ListDocuments(ctx context.Context, applicantID uuid.UUID) ([]dto.DocumentResponse, error) {
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

// loadSession rebuilds the checklist state for an applicant from the
// persisted documents and submission row.
func (s *SubmissionService) loadSession(ctx context.Context, applicantID uuid.UUID) (*models.Applicant, []checklist.Requirement, checklist.State, error) {
	applicant, err := s.applicants.GetByID(ctx, applicantID)
	if err != nil {
		return nil, nil, checklist.State{}, ErrApplicantNotFound
	}
	if applicant.TrackID == "" {
		return nil, nil, checklist.State{}, ErrTrackNotSelected
	}

	reqs, err := s.catalog.Requirements(applicant.TrackID)
	if err != nil {
		return nil, nil, checklist.State{}, err
	}

	docs, err := s.documents.ListByApplicantID(ctx, applicantID)
	if err != nil {
		return nil, nil, checklist.State{}, err
	}

	submitted := false
	if _, err := s.submissions.GetByApplicantID(ctx, applicantID); err == nil {
		submitted = true
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, checklist.State{}, err
	}

	attachments := make([]checklist.Attachment, len(docs))
	for i, doc := range docs {
		attachments[i] = checklist.Attachment{
			Type:      doc.Type,
			FileName:  doc.FileName,
			SizeBytes: doc.FileSize,
		}
	}

	return applicant, reqs, checklist.RestoreState(attachments, submitted), nil
}

func (s *SubmissionService) buildReceipt(ctx context.Context, sub *models.Submission) (*dto.ReceiptResponse, error) {
	docs, err := s.ListDocuments(ctx, sub.ApplicantID)
	if err != nil {
		return nil, err
	}

	return &dto.ReceiptResponse{
		ReceiptNumber: sub.ReceiptNumber,
		TrackID:       sub.TrackID,
		SubmittedAt:   sub.SubmittedAt.Format(time.RFC3339),
		Documents:     docs,
	}, nil
}

func (s *SubmissionService) removeStoredFile(storedName string) {
	if err := s.files.Remove(storedName); err != nil {
		s.logger.Warn("Failed to remove stored file", zap.String("file", storedName), zap.Error(err))
	}
}

func (s *SubmissionService) recordAudit(ctx context.Context, applicantID uuid.UUID, action models.AuditAction, detail string) {
	event := &models.AuditEvent{
		ID:          uuid.New(),
		ApplicantID: applicantID,
		Action:      action,
		Detail:      detail,
		CreatedAt:   time.Now(),
	}
	if err := s.audits.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record audit event",
			zap.String("action", string(action)), zap.Error(err))
	}
}

func documentResponse(doc *models.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:        doc.ID.String(),
		Type:      string(doc.Type),
		FileName:  doc.FileName,
		FileSize:  doc.FileSize,
		CreatedAt: doc.CreatedAt.Format(time.RFC3339),
	}
}

func newReceiptNumber(at time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("ENR-%s-%s", at.Format("20060102"), suffix)
}

// sanitizeFileName keeps only the base name and drops characters that are
// unsafe for the filename convention of the document store.
func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '\x00', '\n', '\r':
			return -1
		default:
			return r
		}
	}, name)
}
