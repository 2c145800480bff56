package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"enroll-docs/internal/checklist"
	"enroll-docs/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCatalog(t *testing.T) *checklist.Catalog {
	t.Helper()
	catalog, err := checklist.NewCatalog([]checklist.Track{{
		ID:   "cyber-security-track",
		Name: "Cyber Security",
		Requirements: []checklist.Requirement{
			{
				Type:            checklist.DocumentTypeIDCard,
				Label:           "Citizen ID card copy",
				Required:        true,
				AcceptedFormats: []string{"pdf", "jpg"},
				MaxSizeBytes:    5 << 20,
			},
			{
				Type:            checklist.DocumentTypeTranscript,
				Label:           "Transcript copy",
				Required:        true,
				AcceptedFormats: []string{"pdf"},
				MaxSizeBytes:    10 << 20,
			},
		},
	}})
	require.NoError(t, err)
	return catalog
}

type submissionFixture struct {
	svc        *SubmissionService
	applicants *fakeApplicantStore
	documents  *fakeDocumentStore
	blobs      *fakeBlobStore
	audits     *fakeAuditStore
	applicant  *models.Applicant
}

func newSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()

	applicants := newFakeApplicantStore()
	documents := newFakeDocumentStore()
	submissions := newFakeSubmissionStore()
	audits := &fakeAuditStore{}
	blobs := newFakeBlobStore()

	applicant := &models.Applicant{
		ID:        uuid.New(),
		Username:  "somchai",
		Role:      models.RoleApplicant,
		CreatedAt: time.Now(),
	}
	require.NoError(t, applicants.Create(context.Background(), applicant))

	svc := NewSubmissionService(testCatalog(t), applicants, documents, submissions, audits, blobs, zap.NewNop())

	return &submissionFixture{
		svc:        svc,
		applicants: applicants,
		documents:  documents,
		blobs:      blobs,
		audits:     audits,
		applicant:  applicant,
	}
}

func (f *submissionFixture) selectTrack(t *testing.T) {
	t.Helper()
	require.NoError(t, f.svc.SelectTrack(context.Background(), f.applicant.ID, "cyber-security-track"))
}

func (f *submissionFixture) attach(t *testing.T, docType checklist.DocumentType, fileName string, size int64) {
	t.Helper()
	_, err := f.svc.AttachDocument(context.Background(), f.applicant.ID, docType, fileName, size, strings.NewReader(strings.Repeat("x", int(size))))
	require.NoError(t, err)
}

func TestSubmissionService_SelectTrack(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()

	err := f.svc.SelectTrack(ctx, f.applicant.ID, "no-such-track")
	assert.ErrorIs(t, err, checklist.ErrUnknownTrack)

	f.selectTrack(t)
	stored, err := f.applicants.GetByID(ctx, f.applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, "cyber-security-track", stored.TrackID)
	assert.Equal(t, []models.AuditAction{models.AuditActionTrackSelected}, f.audits.actions())
}

func TestSubmissionService_AttachRequiresTrack(t *testing.T) {
	f := newSubmissionFixture(t)

	_, err := f.svc.AttachDocument(context.Background(), f.applicant.ID, checklist.DocumentTypeIDCard, "id.pdf", 10, strings.NewReader("0123456789"))
	assert.ErrorIs(t, err, ErrTrackNotSelected)
}

func TestSubmissionService_AttachRejectsInvalidFiles(t *testing.T) {
	f := newSubmissionFixture(t)
	f.selectTrack(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		docType    checklist.DocumentType
		fileName   string
		size       int64
		wantReason checklist.Reason
	}{
		{
			name:       "unsupported format",
			docType:    checklist.DocumentTypeTranscript,
			fileName:   "transcript.docx",
			size:       100,
			wantReason: checklist.ReasonUnsupportedFormat,
		},
		{
			name:       "file too large",
			docType:    checklist.DocumentTypeIDCard,
			fileName:   "id.jpg",
			size:       6 << 20,
			wantReason: checklist.ReasonFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AttachDocument(ctx, f.applicant.ID, tt.docType, tt.fileName, tt.size, strings.NewReader(""))
			var vErr *checklist.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantReason, vErr.Reason)
			assert.Equal(t, tt.docType, vErr.DocumentType)

			// Nothing persisted for the slot.
			docs, err := f.documents.ListByApplicantID(ctx, f.applicant.ID)
			require.NoError(t, err)
			assert.Empty(t, docs)
			assert.Empty(t, f.blobs.files)
			assert.Empty(t, f.blobs.staged)
		})
	}
}

func TestSubmissionService_AttachRejectsUnderdeclaredSize(t *testing.T) {
	f := newSubmissionFixture(t)
	f.selectTrack(t)

	// Declared size passes validation but the actual stream exceeds the cap.
	content := strings.Repeat("x", (5<<20)+1)
	_, err := f.svc.AttachDocument(context.Background(), f.applicant.ID, checklist.DocumentTypeIDCard, "id.pdf", 100, strings.NewReader(content))
	var vErr *checklist.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, checklist.ReasonFileTooLarge, vErr.Reason)
	assert.Empty(t, f.blobs.files, "oversized file must be rolled back")
	assert.Empty(t, f.blobs.staged, "staged upload must be discarded")
}

func TestSubmissionService_AttachKeepsPriorFileOnRecordError(t *testing.T) {
	f := newSubmissionFixture(t)
	f.selectTrack(t)
	ctx := context.Background()

	f.attach(t, checklist.DocumentTypeIDCard, "id.pdf", 10)
	docs, err := f.documents.ListByApplicantID(ctx, f.applicant.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	storedPath := docs[0].StoredPath

	// A replacement upload whose record write fails must not take the
	// surviving record's bytes with it.
	f.documents.upsertErr = errors.New("connection reset")
	_, err = f.svc.AttachDocument(ctx, f.applicant.ID, checklist.DocumentTypeIDCard, "id-v2.jpg", 4, strings.NewReader("abcd"))
	require.Error(t, err)
	f.documents.upsertErr = nil

	assert.Contains(t, f.blobs.files, storedPath)
	assert.Empty(t, f.blobs.staged)
	docs, err = f.documents.ListByApplicantID(ctx, f.applicant.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "id.pdf", docs[0].FileName)

	rc, err := f.blobs.Open(docs[0].StoredPath)
	require.NoError(t, err)
	rc.Close()
}

func TestSubmissionService_AttachStoresDocument(t *testing.T) {
	f := newSubmissionFixture(t)
	f.selectTrack(t)
	ctx := context.Background()

	resp, err := f.svc.AttachDocument(ctx, f.applicant.ID, checklist.DocumentTypeIDCard, "id.pdf", 10, strings.NewReader("0123456789"))
	require.NoError(t, err)
	assert.Equal(t, "id_card", resp.Type)
	assert.Equal(t, int64(10), resp.FileSize)

	docs, err := f.documents.ListByApplicantID(ctx, f.applicant.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "id.pdf", docs[0].FileName)
	assert.Contains(t, f.blobs.files, docs[0].StoredPath)

	// Re-uploading the same slot replaces the record, not duplicates it.
	_, err = f.svc.AttachDocument(ctx, f.applicant.ID, checklist.DocumentTypeIDCard, "id-v2.jpg", 4, strings.NewReader("abcd"))
	require.NoError(t, err)
	docs, err = f.documents.ListByApplicantID(ctx, f.applicant.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "id-v2.jpg", docs[0].FileName)
}

func TestSubmissionService_Checklist(t *testing.T) {
	f := newSubmissionFixture(t)
	f.selectTrack(t)
	ctx := context.Background()

	status, err := f.svc.GetChecklist(ctx, f.applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, string(checklist.PhaseEmpty), status.Phase)
	assert.False(t, status.Ready)
	assert.Equal(t, []string{"id_card", "transcript"}, status.Missing)
	require.Len(t, status.Slots, 2)
	assert.False(t, status.Slots[0].Attached)

	f.attach(t, checklist.DocumentTypeIDCard, "id.pdf", 3<<20)

	status, err = f.svc.GetChecklist(ctx, f.applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, string(checklist.PhasePartial), status.Phase)
	assert.Equal(t, []string{"transcript"}, status.Missing)
	assert.True(t, status.Slots[0].Attached)
	assert.Equal(t, "id.pdf", status.Slots[0].FileName)

	f.attach(t, checklist.DocumentTypeTranscript, "transcript.pdf", 2<<20)

	status, err = f.svc.GetChecklist(ctx, f.applicant.ID)
	require.NoError(t, err)
	assert.True(t, status.Ready)
	assert.Equal(t, string(checklist.PhaseReady), status.Phase)
	assert.Empty(t, status.Missing)
}

func TestSubmissionService_Detach(t *testing.T) {
	f := newSubmissionFixture(t)
	f.selectTrack(t)
	ctx := context.Background()

	f.attach(t, checklist.DocumentTypeIDCard, "id.pdf", 100)
	require.Len(t, f.blobs.files, 1)

	require.NoError(t, f.svc.DetachDocument(ctx, f.applicant.ID, checklist.DocumentTypeIDCard))

	docs, err := f.documents.ListByApplicantID(ctx, f.applicant.ID)
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.Empty(t, f.blobs.files)

	// Detaching an empty slot is a no-op.
	assert.NoError(t, f.svc.DetachDocument(ctx, f.applicant.ID, checklist.DocumentTypeIDCard))
}

func TestSubmissionService_DetachUsesRecordStoredPath(t *testing.T) {
	f := newSubmissionFixture(t)
	f.selectTrack(t)
	ctx := context.Background()

	f.attach(t, checklist.DocumentTypeIDCard, "id.pdf", 100)
	docs, err := f.documents.ListByApplicantID(ctx, f.applicant.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	// Re-point the record at a legacy stored name; detach must follow the
	// record, not rebuild the name from the current naming convention.
	legacy := "legacy_" + docs[0].StoredPath
	f.blobs.files[legacy] = f.blobs.files[docs[0].StoredPath]
	delete(f.blobs.files, docs[0].StoredPath)
	f.documents.docs[f.applicant.ID][checklist.DocumentTypeIDCard].StoredPath = legacy

	require.NoError(t, f.svc.DetachDocument(ctx, f.applicant.ID, checklist.DocumentTypeIDCard))
	assert.Empty(t, f.blobs.files)
}

func TestSubmissionService_Submit(t *testing.T) {
	f := newSubmissionFixture(t)
	f.selectTrack(t)
	ctx := context.Background()

	f.attach(t, checklist.DocumentTypeIDCard, "id.pdf", 3<<20)

	_, err := f.svc.Submit(ctx, f.applicant.ID)
	var incErr *checklist.IncompleteError
	require.ErrorAs(t, err, &incErr)
	assert.Equal(t, []checklist.DocumentType{checklist.DocumentTypeTranscript}, incErr.Missing)

	f.attach(t, checklist.DocumentTypeTranscript, "transcript.pdf", 2<<20)

	receipt, err := f.svc.Submit(ctx, f.applicant.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.ReceiptNumber)
	assert.Equal(t, "cyber-security-track", receipt.TrackID)
	assert.Len(t, receipt.Documents, 2)

	// Terminal: no more mutations, no second submit.
	_, err = f.svc.Submit(ctx, f.applicant.ID)
	assert.ErrorIs(t, err, checklist.ErrAlreadySubmitted)
	_, err = f.svc.AttachDocument(ctx, f.applicant.ID, checklist.DocumentTypeIDCard, "id2.pdf", 10, strings.NewReader("0123456789"))
	assert.ErrorIs(t, err, checklist.ErrAlreadySubmitted)
	err = f.svc.DetachDocument(ctx, f.applicant.ID, checklist.DocumentTypeIDCard)
	assert.ErrorIs(t, err, checklist.ErrAlreadySubmitted)
	err = f.svc.SelectTrack(ctx, f.applicant.ID, "cyber-security-track")
	assert.ErrorIs(t, err, checklist.ErrAlreadySubmitted)

	// Receipt stays retrievable.
	again, err := f.svc.GetReceipt(ctx, f.applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, receipt.ReceiptNumber, again.ReceiptNumber)

	status, err := f.svc.GetChecklist(ctx, f.applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, string(checklist.PhaseSubmitted), status.Phase)
}

func TestSubmissionService_GetReceiptBeforeSubmit(t *testing.T) {
	f := newSubmissionFixture(t)
	f.selectTrack(t)

	_, err := f.svc.GetReceipt(context.Background(), f.applicant.ID)
	assert.ErrorIs(t, err, ErrNoSubmission)
}
