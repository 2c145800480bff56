package repository

import (
	"context"

	"enroll-docs/internal/checklist"
	"enroll-docs/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var documentColumns = []string{
	"id", "applicant_id", "type", "file_name", "file_size", "stored_path",
	"created_at", "updated_at",
}

type DocumentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDocumentRepository(db *pgxpool.Pool, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert inserts the document record, replacing a prior record for the same
// applicant and document type.
func (r *DocumentRepository) Upsert(ctx context.Context, doc *models.Document) error {
	query := squirrel.Insert("documents").
		Columns(documentColumns...).
		Values(doc.ID, doc.ApplicantID, doc.Type, doc.FileName, doc.FileSize,
			doc.StoredPath, doc.CreatedAt, doc.UpdatedAt).
		Suffix(`ON CONFLICT (applicant_id, type) DO UPDATE SET
			file_name = EXCLUDED.file_name,
			file_size = EXCLUDED.file_size,
			stored_path = EXCLUDED.stored_path,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	query := squirrel.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var doc models.Document
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&doc.ID, &doc.ApplicantID, &doc.Type, &doc.FileName, &doc.FileSize,
		&doc.StoredPath, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *DocumentRepository) ListByApplicantID(ctx context.Context, applicantID uuid.UUID) ([]*models.Document, error) {
	query := squirrel.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"applicant_id": applicantID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []*models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(
			&doc.ID, &doc.ApplicantID, &doc.Type, &doc.FileName, &doc.FileSize,
			&doc.StoredPath, &doc.CreatedAt, &doc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		documents = append(documents, &doc)
	}

	return documents, rows.Err()
}

// DeleteByType removes the record for a slot and returns its stored path so
// the caller can clean up the file; pgx.ErrNoRows when the slot is empty.
func (r *DocumentRepository) DeleteByType(ctx context.Context, applicantID uuid.UUID, docType checklist.DocumentType) (string, error) {
	query := squirrel.Delete("documents").
		Where(squirrel.Eq{"applicant_id": applicantID, "type": docType}).
		Suffix("RETURNING stored_path").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return "", err
	}

	var storedPath string
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&storedPath); err != nil {
		return "", err
	}
	return storedPath, nil
}
