package repository

import (
	"context"

	"enroll-docs/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var applicantColumns = []string{
	"id", "username", "email", "password", "role", "title", "first_name",
	"last_name", "citizen_id", "phone", "address", "school_name", "gpax",
	"graduation_year", "parent_name", "parent_phone", "track_id",
	"created_at", "updated_at",
}

type ApplicantRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewApplicantRepository(db *pgxpool.Pool, logger *zap.Logger) *ApplicantRepository {
	return &ApplicantRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ApplicantRepository) Create(ctx context.Context, a *models.Applicant) error {
	query := squirrel.Insert("applicants").
		Columns(applicantColumns...).
		Values(a.ID, a.Username, a.Email, a.Password, a.Role, a.Title, a.FirstName,
			a.LastName, a.CitizenID, a.Phone, a.Address, a.SchoolName, a.GPAX,
			a.GraduationYear, a.ParentName, a.ParentPhone, a.TrackID,
			a.CreatedAt, a.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ApplicantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Applicant, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

func (r *ApplicantRepository) GetByUsername(ctx context.Context, username string) (*models.Applicant, error) {
	return r.getBy(ctx, squirrel.Eq{"username": username})
}

func (r *ApplicantRepository) getBy(ctx context.Context, pred squirrel.Eq) (*models.Applicant, error) {
	query := squirrel.Select(applicantColumns...).
		From("applicants").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var a models.Applicant
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&a.ID, &a.Username, &a.Email, &a.Password, &a.Role, &a.Title, &a.FirstName,
		&a.LastName, &a.CitizenID, &a.Phone, &a.Address, &a.SchoolName, &a.GPAX,
		&a.GraduationYear, &a.ParentName, &a.ParentPhone, &a.TrackID,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// IdentityInUse reports whether another applicant already uses the value in
// the given identity column (username, email, phone or citizen_id).
func (r *ApplicantRepository) IdentityInUse(ctx context.Context, column, value string, exclude uuid.UUID) (bool, error) {
	query := squirrel.Select("COUNT(*)").
		From("applicants").
		Where(squirrel.Eq{column: value}).
		PlaceholderFormat(squirrel.Dollar)
	if exclude != uuid.Nil {
		query = query.Where(squirrel.NotEq{"id": exclude})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *ApplicantRepository) Update(ctx context.Context, a *models.Applicant) error {
	query := squirrel.Update("applicants").
		Set("email", a.Email).
		Set("title", a.Title).
		Set("first_name", a.FirstName).
		Set("last_name", a.LastName).
		Set("phone", a.Phone).
		Set("address", a.Address).
		Set("school_name", a.SchoolName).
		Set("gpax", a.GPAX).
		Set("graduation_year", a.GraduationYear).
		Set("parent_name", a.ParentName).
		Set("parent_phone", a.ParentPhone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ApplicantRepository) SetTrack(ctx context.Context, id uuid.UUID, trackID string) error {
	query := squirrel.Update("applicants").
		Set("track_id", trackID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ApplicantRepository) List(ctx context.Context, limit, offset int) ([]*models.Applicant, error) {
	query := squirrel.Select(applicantColumns...).
		From("applicants").
		Where(squirrel.Eq{"role": models.RoleApplicant}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
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

	var applicants []*models.Applicant
	for rows.Next() {
		var a models.Applicant
		if err := rows.Scan(
			&a.ID, &a.Username, &a.Email, &a.Password, &a.Role, &a.Title, &a.FirstName,
			&a.LastName, &a.CitizenID, &a.Phone, &a.Address, &a.SchoolName, &a.GPAX,
			&a.GraduationYear, &a.ParentName, &a.ParentPhone, &a.TrackID,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		applicants = append(applicants, &a)
	}

	return applicants, rows.Err()
}
