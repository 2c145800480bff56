package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleApplicant Role = "applicant"
	RoleAdmin     Role = "admin"
)

type Applicant struct {
	ID             uuid.UUID `db:"id"`
	Username       string    `db:"username"`
	Email          string    `db:"email"`
	Password       string    `db:"password"`
	Role           Role      `db:"role"`
	Title          string    `db:"title"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	CitizenID      string    `db:"citizen_id"`
	Phone          string    `db:"phone"`
	Address        string    `db:"address"`
	SchoolName     string    `db:"school_name"`
	GPAX           float64   `db:"gpax"`
	GraduationYear int       `db:"graduation_year"`
	ParentName     string    `db:"parent_name"`
	ParentPhone    string    `db:"parent_phone"`
	TrackID        string    `db:"track_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
