package repository

import (
	"context"

	"enroll-docs/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type SubmissionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSubmissionRepository(db *pgxpool.Pool, logger *zap.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	query := squirrel.Insert("submissions").
		Columns("id", "applicant_id", "track_id", "receipt_number", "submitted_at").
		Values(sub.ID, sub.ApplicantID, sub.TrackID, sub.ReceiptNumber, sub.SubmittedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *SubmissionRepository) GetByApplicantID(ctx context.Context, applicantID uuid.UUID) (*models.Submission, error) {
	query := squirrel.Select("id", "applicant_id", "track_id", "receipt_number", "submitted_at").
		From("submissions").
		Where(squirrel.Eq{"applicant_id": applicantID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var sub models.Submission
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&sub.ID, &sub.ApplicantID, &sub.TrackID, &sub.ReceiptNumber, &sub.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}

	return &sub, nil
}
