package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"enroll-docs/internal/checklist"
	"enroll-docs/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type fakeApplicantStore struct {
	byID map[uuid.UUID]*models.Applicant
}

func newFakeApplicantStore() *fakeApplicantStore {
	return &fakeApplicantStore{byID: make(map[uuid.UUID]*models.Applicant)}
}

func (f *fakeApplicantStore) Create(_ context.Context, a *models.Applicant) error {
	clone := *a
	f.byID[a.ID] = &clone
	return nil
}

func (f *fakeApplicantStore) GetByID(_ context.Context, id uuid.UUID) (*models.Applicant, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *a
	return &clone, nil
}

func (f *fakeApplicantStore) GetByUsername(_ context.Context, username string) (*models.Applicant, error) {
	for _, a := range f.byID {
		if a.Username == username {
			clone := *a
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeApplicantStore) IdentityInUse(_ context.Context, column, value string, exclude uuid.UUID) (bool, error) {
	for id, a := range f.byID {
		if id == exclude {
			continue
		}
		var current string
		switch column {
		case "username":
			current = a.Username
		case "email":
			current = a.Email
		case "phone":
			current = a.Phone
		case "citizen_id":
			current = a.CitizenID
		default:
			return false, fmt.Errorf("unexpected column %q", column)
		}
		if current == value {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicantStore) Update(_ context.Context, a *models.Applicant) error {
	if _, ok := f.byID[a.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *a
	f.byID[a.ID] = &clone
	return nil
}

func (f *fakeApplicantStore) SetTrack(_ context.Context, id uuid.UUID, trackID string) error {
	a, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	a.TrackID = trackID
	return nil
}

func (f *fakeApplicantStore) List(_ context.Context, limit, offset int) ([]*models.Applicant, error) {
	var out []*models.Applicant
	for _, a := range f.byID {
		if a.Role == models.RoleApplicant {
			clone := *a
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type fakeDocumentStore struct {
	docs      map[uuid.UUID]map[checklist.DocumentType]*models.Document
	upsertErr error
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{docs: make(map[uuid.UUID]map[checklist.DocumentType]*models.Document)}
}

func (f *fakeDocumentStore) Upsert(_ context.Context, doc *models.Document) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	byType, ok := f.docs[doc.ApplicantID]
	if !ok {
		byType = make(map[checklist.DocumentType]*models.Document)
		f.docs[doc.ApplicantID] = byType
	}
	clone := *doc
	if prior, ok := byType[doc.Type]; ok {
		clone.ID = prior.ID
		clone.CreatedAt = prior.CreatedAt
	}
	byType[doc.Type] = &clone
	return nil
}

func (f *fakeDocumentStore) GetByID(_ context.Context, id uuid.UUID) (*models.Document, error) {
	for _, byType := range f.docs {
		for _, doc := range byType {
			if doc.ID == id {
				clone := *doc
				return &clone, nil
			}
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeDocumentStore) ListByApplicantID(_ context.Context, applicantID uuid.UUID) ([]*models.Document, error) {
	var out []*models.Document
	for _, doc := range f.docs[applicantID] {
		clone := *doc
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeDocumentStore) DeleteByType(_ context.Context, applicantID uuid.UUID, docType checklist.DocumentType) (string, error) {
	doc, ok := f.docs[applicantID][docType]
	if !ok {
		return "", pgx.ErrNoRows
	}
	delete(f.docs[applicantID], docType)
	return doc.StoredPath, nil
}

type fakeSubmissionStore struct {
	byApplicant map[uuid.UUID]*models.Submission
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{byApplicant: make(map[uuid.UUID]*models.Submission)}
}

func (f *fakeSubmissionStore) Create(_ context.Context, sub *models.Submission) error {
	clone := *sub
	f.byApplicant[sub.ApplicantID] = &clone
	return nil
}

func (f *fakeSubmissionStore) GetByApplicantID(_ context.Context, applicantID uuid.UUID) (*models.Submission, error) {
	sub, ok := f.byApplicant[applicantID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *sub
	return &clone, nil
}

type fakeAuditStore struct {
	events []*models.AuditEvent
}

func (f *fakeAuditStore) Create(_ context.Context, event *models.AuditEvent) error {
	clone := *event
	f.events = append(f.events, &clone)
	return nil
}

func (f *fakeAuditStore) List(_ context.Context, limit, offset int) ([]*models.AuditEvent, error) {
	out := make([]*models.AuditEvent, len(f.events))
	for i, e := range f.events {
		clone := *e
		out[len(f.events)-1-i] = &clone
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAuditStore) actions() []models.AuditAction {
	out := make([]models.AuditAction, len(f.events))
	for i, e := range f.events {
		out[i] = e.Action
	}
	return out
}

type fakeBlobStore struct {
	files  map[string][]byte
	staged map[string][]byte
	seq    int
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{
		files:  make(map[string][]byte),
		staged: make(map[string][]byte),
	}
}

func (f *fakeBlobStore) Stage(applicantID uuid.UUID, docType checklist.DocumentType, fileName string, src io.Reader) (string, string, int64, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return "", "", 0, err
	}
	storedName := fmt.Sprintf("%s_%s.%s", applicantID, docType, checklist.FileExtension(fileName))
	f.seq++
	stagedName := fmt.Sprintf("%s.staging%d", storedName, f.seq)
	f.staged[stagedName] = data
	return stagedName, storedName, int64(len(data)), nil
}

func (f *fakeBlobStore) Promote(stagedName, storedName string) error {
	data, ok := f.staged[stagedName]
	if !ok {
		return fmt.Errorf("no staged file %q", stagedName)
	}
	delete(f.staged, stagedName)
	// A replaced file stored under another extension goes away with the slot.
	prefix := storedName[:strings.LastIndex(storedName, ".")+1]
	for name := range f.files {
		if strings.HasPrefix(name, prefix) {
			delete(f.files, name)
		}
	}
	f.files[storedName] = data
	return nil
}

func (f *fakeBlobStore) Open(storedName string) (io.ReadCloser, error) {
	data, ok := f.files[storedName]
	if !ok {
		return nil, fmt.Errorf("no such file %q", storedName)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeBlobStore) Remove(storedName string) error {
	delete(f.files, storedName)
	delete(f.staged, storedName)
	return nil
}
