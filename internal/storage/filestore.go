// Package storage persists validated document bytes on disk, one file per
// applicant and document type.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"enroll-docs/internal/checklist"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stagingMarker tags files written by Stage that have not been promoted
// yet, so slot cleanup never touches an in-flight upload.
const stagingMarker = ".staging"

type FileStore struct {
	dir    string
	logger *zap.Logger
}

func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Stage writes the upload to a staging file in the upload directory and
// returns the staging name, the final stored name
// {applicantID}_{docType}.{ext} and the number of bytes written. Any prior
// file for the slot is left untouched until Promote, so callers can discard
// a staged upload without losing the previous attachment.
func (s *FileStore) Stage(applicantID uuid.UUID, docType checklist.DocumentType, fileName string, src io.Reader) (string, string, int64, error) {
	ext := checklist.FileExtension(fileName)
	storedName := fmt.Sprintf("%s_%s.%s", applicantID, docType, ext)

	tmp, err := os.CreateTemp(s.dir, storedName+stagingMarker+"*")
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to create staging file: %w", err)
	}

	size, err := io.Copy(tmp, src)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	return filepath.Base(tmp.Name()), storedName, size, nil
}

// Promote renames a staged file onto its stored name, replacing the prior
// file for the slot. A replaced file with a different extension is removed.
func (s *FileStore) Promote(stagedName, storedName string) error {
	if err := checkStoredName(stagedName); err != nil {
		return err
	}
	if err := checkStoredName(storedName); err != nil {
		return err
	}

	if err := os.Rename(filepath.Join(s.dir, stagedName), filepath.Join(s.dir, storedName)); err != nil {
		return fmt.Errorf("failed to store file: %w", err)
	}

	s.removeReplacedFiles(storedName)
	return nil
}

// Open returns a reader over a stored file. The name must be a bare file
// name produced by Stage; anything path-like is rejected.
func (s *FileStore) Open(storedName string) (io.ReadCloser, error) {
	if err := checkStoredName(storedName); err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.dir, storedName))
}

// Remove deletes a stored or staged file. Missing files are not an error.
func (s *FileStore) Remove(storedName string) error {
	if err := checkStoredName(storedName); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.dir, storedName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// removeReplacedFiles drops files for the same slot stored under another
// extension. Staged uploads are skipped.
func (s *FileStore) removeReplacedFiles(keep string) {
	prefix := strings.TrimSuffix(keep, filepath.Ext(keep)) + "."
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn("Failed to scan upload directory", zap.Error(err))
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if name == keep || !strings.HasPrefix(name, prefix) || strings.Contains(name, stagingMarker) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			s.logger.Warn("Failed to remove stale document file",
				zap.String("file", name), zap.Error(err))
		}
	}
}

func checkStoredName(storedName string) error {
	if storedName == "" || storedName != filepath.Base(storedName) {
		return fmt.Errorf("invalid stored file name %q", storedName)
	}
	return nil
}
