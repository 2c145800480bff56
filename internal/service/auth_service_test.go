package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"enroll-docs/internal/dto"
	"enroll-docs/internal/models"
	"enroll-docs/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeApplicantStore, *fakeAuditStore) {
	t.Helper()
	applicants := newFakeApplicantStore()
	audits := &fakeAuditStore{}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(applicants, audits, jwtManager, zap.NewNop()), applicants, audits
}

func validRegistration() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:  "somchai",
		Password:  "correct-horse",
		Email:     "somchai@example.com",
		Phone:     "081-234-5678",
		CitizenID: "1234567890121",
		FirstName: "Somchai",
		LastName:  "Jaidee",
		GPAX:      "3.25",
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, applicants, audits := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, string(models.RoleApplicant), resp.Applicant.Role)
	assert.Equal(t, "0812345678", resp.Applicant.Phone, "phone is normalized")
	assert.Equal(t, []models.AuditAction{models.AuditActionRegistered}, audits.actions())

	stored, err := applicants.GetByUsername(ctx, "somchai")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", stored.Password, "password must be hashed")
	assert.True(t, auth.CheckPasswordHash("correct-horse", stored.Password))
}

func TestAuthService_RegisterFieldValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*dto.RegisterRequest)
		wantField string
	}{
		{name: "bad email", mutate: func(r *dto.RegisterRequest) { r.Email = "nope" }, wantField: "email"},
		{name: "bad phone", mutate: func(r *dto.RegisterRequest) { r.Phone = "0212345678" }, wantField: "phone"},
		{name: "bad citizen id", mutate: func(r *dto.RegisterRequest) { r.CitizenID = "1234567890123" }, wantField: "citizen_id"},
		{name: "short name", mutate: func(r *dto.RegisterRequest) { r.FirstName = "X" }, wantField: "first_name"},
		{name: "bad gpax", mutate: func(r *dto.RegisterRequest) { r.GPAX = "5.0" }, wantField: "gpax"},
		{name: "short password", mutate: func(r *dto.RegisterRequest) { r.Password = "short" }, wantField: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newAuthFixture(t)
			req := validRegistration()
			tt.mutate(req)

			_, err := svc.Register(context.Background(), req)
			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.wantField, fieldErr.Field)
		})
	}
}

func TestAuthService_RegisterDuplicates(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	// Same username again.
	_, err = svc.Register(ctx, validRegistration())
	assert.ErrorIs(t, err, ErrApplicantExists)

	// Fresh username but same citizen ID.
	req := validRegistration()
	req.Username = "somying"
	req.Email = "somying@example.com"
	req.Phone = "0898765432"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrApplicantExists)
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "somchai", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "somchai", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	resp, err := svc.RefreshToken(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, registered.Applicant.ID, resp.Applicant.ID)

	_, err = svc.RefreshToken(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc, applicants, audits := newAuthFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	applicant, err := applicants.GetByUsername(ctx, "somchai")
	require.NoError(t, err)

	update := &dto.UpdateProfileRequest{
		Email:      "new@example.com",
		Phone:      "0898765432",
		FirstName:  "Somchai",
		LastName:   "Jaidee",
		SchoolName: "Example High School",
		GPAX:       "3.50",
	}

	resp, err := svc.UpdateProfile(ctx, applicant.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", resp.Email)
	assert.InDelta(t, 3.50, resp.GPAX, 1e-9)
	assert.Equal(t, registered.Applicant.CitizenID, resp.CitizenID, "citizen id is immutable")

	// The change is audited with the modified fields.
	actions := audits.actions()
	require.NotEmpty(t, actions)
	assert.Equal(t, models.AuditActionProfileUpdated, actions[len(actions)-1])

	// A second applicant cannot take the new email.
	other := validRegistration()
	other.Username = "somying"
	other.Email = "somying@example.com"
	other.Phone = "0611112222"
	other.CitizenID = "1101700000010"
	_, err = svc.Register(ctx, other)
	require.NoError(t, err)

	otherApplicant, err := applicants.GetByUsername(ctx, "somying")
	require.NoError(t, err)
	update.GPAX = ""
	_, err = svc.UpdateProfile(ctx, otherApplicant.ID, update)
	assert.True(t, errors.Is(err, ErrApplicantExists))
}
