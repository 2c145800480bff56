package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"enroll-docs/internal/dto"
	"enroll-docs/internal/models"
	"enroll-docs/internal/validate"
	"enroll-docs/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrApplicantNotFound  = errors.New("applicant not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrApplicantExists    = errors.New("applicant already exists")
)

// FieldError reports an invalid value in a registration or profile field,
// carrying the field name so the client can point at the exact input.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

type AuthService struct {
	applicants ApplicantStore
	audits     AuditStore
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthService(applicants ApplicantStore, audits AuditStore, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		applicants: applicants,
		audits:     audits,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, &FieldError{Field: "username", Err: errors.New("username is required")}
	}
	if len(req.Password) < 8 {
		return nil, &FieldError{Field: "password", Err: errors.New("password must be at least 8 characters")}
	}

	applicant := &models.Applicant{
		ID:             uuid.New(),
		Username:       strings.TrimSpace(req.Username),
		Role:           models.RoleApplicant,
		Title:          req.Title,
		Address:        req.Address,
		SchoolName:     req.SchoolName,
		GraduationYear: req.GraduationYear,
		ParentName:     req.ParentName,
	}

	if err := s.applyProfileFields(applicant, profileFields{
		Email:       req.Email,
		Phone:       req.Phone,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		GPAX:        req.GPAX,
		ParentPhone: req.ParentPhone,
	}); err != nil {
		return nil, err
	}

	citizenID, err := validate.CitizenID(req.CitizenID)
	if err != nil {
		return nil, &FieldError{Field: "citizen_id", Err: err}
	}
	applicant.CitizenID = citizenID

	// No identity field may be reused by another applicant.
	identities := []struct{ column, value string }{
		{"username", applicant.Username},
		{"email", applicant.Email},
		{"phone", applicant.Phone},
		{"citizen_id", applicant.CitizenID},
	}
	for _, identity := range identities {
		inUse, err := s.applicants.IdentityInUse(ctx, identity.column, identity.value, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, fmt.Errorf("%w: %s taken", ErrApplicantExists, identity.column)
		}
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	applicant.Password = hashedPassword

	now := time.Now()
	applicant.CreatedAt = now
	applicant.UpdatedAt = now

	if err := s.applicants.Create(ctx, applicant); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, applicant.ID, models.AuditActionRegistered, applicant.Username)

	return s.buildAuthResponse(applicant)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	applicant, err := s.applicants.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, applicant.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.buildAuthResponse(applicant)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	applicantID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	applicant, err := s.applicants.GetByID(ctx, applicantID)
	if err != nil {
		return nil, ErrApplicantNotFound
	}

	return s.buildAuthResponse(applicant)
}

func (s *AuthService) GetProfile(ctx context.Context, applicantID uuid.UUID) (*dto.ApplicantResponse, error) {
	applicant, err := s.applicants.GetByID(ctx, applicantID)
	if err != nil {
		return nil, ErrApplicantNotFound
	}
	resp := applicantResponse(applicant)
	return &resp, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, applicantID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ApplicantResponse, error) {
	applicant, err := s.applicants.GetByID(ctx, applicantID)
	if err != nil {
		return nil, ErrApplicantNotFound
	}

	before := *applicant

	if err := s.applyProfileFields(applicant, profileFields{
		Email:       req.Email,
		Phone:       req.Phone,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		GPAX:        req.GPAX,
		ParentPhone: req.ParentPhone,
	}); err != nil {
		return nil, err
	}

	applicant.Title = req.Title
	applicant.Address = req.Address
	applicant.SchoolName = req.SchoolName
	applicant.GraduationYear = req.GraduationYear
	applicant.ParentName = req.ParentName

	// Email and phone must stay unique across applicants when changed.
	identities := []struct{ column, value string }{
		{"email", applicant.Email},
		{"phone", applicant.Phone},
	}
	for _, identity := range identities {
		inUse, err := s.applicants.IdentityInUse(ctx, identity.column, identity.value, applicant.ID)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, fmt.Errorf("%w: %s taken", ErrApplicantExists, identity.column)
		}
	}

	if err := s.applicants.Update(ctx, applicant); err != nil {
		return nil, err
	}

	if detail := profileChangeDetail(&before, applicant); detail != "" {
		s.recordAudit(ctx, applicant.ID, models.AuditActionProfileUpdated, detail)
	}

	resp := applicantResponse(applicant)
	return &resp, nil
}

type profileFields struct {
	Email       string
	Phone       string
	FirstName   string
	LastName    string
	GPAX        string
	ParentPhone string
}

func (s *AuthService) applyProfileFields(applicant *models.Applicant, fields profileFields) error {
	if err := validate.Email(fields.Email); err != nil {
		return &FieldError{Field: "email", Err: err}
	}
	applicant.Email = fields.Email

	phone, err := validate.Phone(fields.Phone)
	if err != nil {
		return &FieldError{Field: "phone", Err: err}
	}
	applicant.Phone = phone

	if err := validate.Name(fields.FirstName); err != nil {
		return &FieldError{Field: "first_name", Err: err}
	}
	applicant.FirstName = strings.TrimSpace(fields.FirstName)

	if err := validate.Name(fields.LastName); err != nil {
		return &FieldError{Field: "last_name", Err: err}
	}
	applicant.LastName = strings.TrimSpace(fields.LastName)

	if fields.GPAX != "" {
		gpax, err := validate.GPAX(fields.GPAX)
		if err != nil {
			return &FieldError{Field: "gpax", Err: err}
		}
		applicant.GPAX = gpax
	}

	if fields.ParentPhone != "" {
		parentPhone, err := validate.Phone(fields.ParentPhone)
		if err != nil {
			return &FieldError{Field: "parent_phone", Err: err}
		}
		applicant.ParentPhone = parentPhone
	}

	return nil
}

func (s *AuthService) buildAuthResponse(applicant *models.Applicant) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(applicant.ID.String(), applicant.Username, string(applicant.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(applicant.ID.String())
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		Applicant:    applicantResponse(applicant),
	}, nil
}

func (s *AuthService) recordAudit(ctx context.Context, applicantID uuid.UUID, action models.AuditAction, detail string) {
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

func applicantResponse(a *models.Applicant) dto.ApplicantResponse {
	return dto.ApplicantResponse{
		ID:             a.ID.String(),
		Username:       a.Username,
		Email:          a.Email,
		Role:           string(a.Role),
		Title:          a.Title,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		CitizenID:      a.CitizenID,
		Phone:          a.Phone,
		Address:        a.Address,
		SchoolName:     a.SchoolName,
		GPAX:           a.GPAX,
		GraduationYear: a.GraduationYear,
		ParentName:     a.ParentName,
		ParentPhone:    a.ParentPhone,
		TrackID:        a.TrackID,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
	}
}

func profileChangeDetail(before, after *models.Applicant) string {
	var changes []string
	record := func(field, oldVal, newVal string) {
		if oldVal != newVal {
			changes = append(changes, fmt.Sprintf("%s: %s -> %s", field, oldVal, newVal))
		}
	}

	record("email", before.Email, after.Email)
	record("phone", before.Phone, after.Phone)
	record("title", before.Title, after.Title)
	record("first_name", before.FirstName, after.FirstName)
	record("last_name", before.LastName, after.LastName)
	record("address", before.Address, after.Address)
	record("school_name", before.SchoolName, after.SchoolName)
	record("gpax", fmt.Sprintf("%.2f", before.GPAX), fmt.Sprintf("%.2f", after.GPAX))
	record("graduation_year", fmt.Sprint(before.GraduationYear), fmt.Sprint(after.GraduationYear))
	record("parent_name", before.ParentName, after.ParentName)
	record("parent_phone", before.ParentPhone, after.ParentPhone)

	return strings.Join(changes, "; ")
}
