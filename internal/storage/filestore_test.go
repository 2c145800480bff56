package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"enroll-docs/internal/checklist"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)
	return store, dir
}

func saveFile(t *testing.T, store *FileStore, applicantID uuid.UUID, docType checklist.DocumentType, fileName, content string) string {
	t.Helper()
	staged, stored, size, err := store.Stage(applicantID, docType, fileName, strings.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, int64(len(content)), size)
	require.NoError(t, store.Promote(staged, stored))
	return stored
}

func TestFileStore_StagePromoteAndOpen(t *testing.T) {
	store, dir := newTestStore(t)
	applicantID := uuid.New()

	staged, stored, size, err := store.Stage(applicantID, checklist.DocumentTypeIDCard, "scan.pdf", strings.NewReader("id card bytes"))
	require.NoError(t, err)
	assert.Equal(t, applicantID.String()+"_id_card.pdf", stored)
	assert.Equal(t, int64(len("id card bytes")), size)

	// Staged but not yet readable under the stored name.
	_, err = store.Open(stored)
	assert.Error(t, err)

	require.NoError(t, store.Promote(staged, stored))

	rc, err := store.Open(stored)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "id card bytes", string(data))

	// No staging files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_DiscardedStageKeepsPriorFile(t *testing.T) {
	store, _ := newTestStore(t)
	applicantID := uuid.New()

	stored := saveFile(t, store, applicantID, checklist.DocumentTypePhoto, "photo.jpg", "v1")

	// A staged replacement that is removed instead of promoted must leave
	// the prior file readable, even across an extension change.
	staged, _, _, err := store.Stage(applicantID, checklist.DocumentTypePhoto, "photo.png", strings.NewReader("v2"))
	require.NoError(t, err)
	require.NoError(t, store.Remove(staged))

	rc, err := store.Open(stored)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))
}

func TestFileStore_ReuploadReplaces(t *testing.T) {
	store, dir := newTestStore(t)
	applicantID := uuid.New()

	saveFile(t, store, applicantID, checklist.DocumentTypePhoto, "photo.jpg", "v1")

	// Re-upload with a different extension replaces the old file entirely.
	stored := saveFile(t, store, applicantID, checklist.DocumentTypePhoto, "photo.png", "v2")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, stored, entries[0].Name())

	rc, err := store.Open(stored)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestFileStore_Remove(t *testing.T) {
	store, dir := newTestStore(t)
	applicantID := uuid.New()

	stored := saveFile(t, store, applicantID, checklist.DocumentTypeTranscript, "tr.pdf", "x")

	require.NoError(t, store.Remove(stored))
	_, err := os.Stat(filepath.Join(dir, stored))
	assert.True(t, os.IsNotExist(err))

	// Removing twice is fine.
	assert.NoError(t, store.Remove(stored))
}

func TestFileStore_RejectsPathLikeNames(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Open("../outside.txt")
	assert.Error(t, err)
	assert.Error(t, store.Remove("a/b.pdf"))
	assert.Error(t, store.Promote("../evil", "ok.pdf"))
	assert.Error(t, store.Promote("staged.pdf", "a/b.pdf"))
	_, err = store.Open("")
	assert.Error(t, err)
}
