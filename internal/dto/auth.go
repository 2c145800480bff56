package dto

type RegisterRequest struct {
	Username       string `json:"username" validate:"required"`
	Password       string `json:"password" validate:"required,min=8"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	CitizenID      string `json:"citizen_id" validate:"required"`
	Title          string `json:"title"`
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Address        string `json:"address"`
	SchoolName     string `json:"school_name"`
	GPAX           string `json:"gpax"`
	GraduationYear int    `json:"graduation_year"`
	ParentName     string `json:"parent_name"`
	ParentPhone    string `json:"parent_phone"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	TokenType    string            `json:"token_type"`
	ExpiresIn    int64             `json:"expires_in"`
	Applicant    ApplicantResponse `json:"applicant"`
}
