package dto

type ApplicantResponse struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	Title          string  `json:"title,omitempty"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	CitizenID      string  `json:"citizen_id,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	Address        string  `json:"address,omitempty"`
	SchoolName     string  `json:"school_name,omitempty"`
	GPAX           float64 `json:"gpax,omitempty"`
	GraduationYear int     `json:"graduation_year,omitempty"`
	ParentName     string  `json:"parent_name,omitempty"`
	ParentPhone    string  `json:"parent_phone,omitempty"`
	TrackID        string  `json:"track_id,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type UpdateProfileRequest struct {
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Title          string `json:"title"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Address        string `json:"address"`
	SchoolName     string `json:"school_name"`
	GPAX           string `json:"gpax"`
	GraduationYear int    `json:"graduation_year"`
	ParentName     string `json:"parent_name"`
	ParentPhone    string `json:"parent_phone"`
}

type ApplicantSummaryResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CitizenID string `json:"citizen_id"`
	TrackID   string `json:"track_id,omitempty"`
	Phase     string `json:"phase"`
	CreatedAt string `json:"created_at"`
}
