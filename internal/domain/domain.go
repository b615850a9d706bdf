package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	// Email doubles as the login handle. Uniqueness is case-insensitive;
	// the repository lowercases before storing and querying.
	Email        string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
	FirstName    string `gorm:"column:first_name;type:varchar(100);not null"`
	LastName     string `gorm:"column:last_name;type:varchar(100)"`
	Role         Role   `gorm:"column:role;type:varchar(20);not null;index"`

	// Doctor accounts start inactive until an admin approves them.
	IsActive bool `gorm:"column:is_active;default:true;index"`

	// Profile links. Exactly one is set, matching the role.
	DoctorID  *uuid.UUID `gorm:"column:doctor_id;type:uuid;index"`
	PatientID *uuid.UUID `gorm:"column:patient_id;type:uuid;index"`
}

func (User) TableName() string {
	return "auth.users"
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"` // Always "Bearer"
}

type Claims struct {
	UserID    uuid.UUID  `json:"sub"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	DoctorID  *uuid.UUID `json:"doctor_id,omitempty"`
	PatientID *uuid.UUID `json:"patient_id,omitempty"`
}

// Scope is the single authorization chokepoint. Every list read and every
// pre-mutation ownership check goes through a Scope built from the caller's
// claims; no operation filters by role on its own.
type Scope struct {
	role      Role
	doctorID  *uuid.UUID
	patientID *uuid.UUID
}

func ScopeFor(c *Claims) Scope {
	return Scope{role: c.Role, doctorID: c.DoctorID, patientID: c.PatientID}
}

// All reports whether the scope covers every record (admins only).
func (s Scope) All() bool {
	return s.role == RoleAdmin
}

// Empty reports whether the scope covers no records at all: a doctor or
// patient identity whose profile row does not exist yet sees nothing.
func (s Scope) Empty() bool {
	switch s.role {
	case RoleAdmin:
		return false
	case RoleDoctor:
		return s.doctorID == nil
	case RolePatient:
		return s.patientID == nil
	}
	return true
}

// DoctorID returns the doctor profile the scope is narrowed to, if any.
func (s Scope) DoctorID() *uuid.UUID {
	if s.role == RoleDoctor {
		return s.doctorID
	}
	return nil
}

// PatientID returns the patient profile the scope is narrowed to, if any.
func (s Scope) PatientID() *uuid.UUID {
	if s.role == RolePatient {
		return s.patientID
	}
	return nil
}

// Covers reports whether a record owned by the given doctor and patient
// profiles is visible to this scope. Admins bypass ownership; everyone else
// must own the record through their own profile.
func (s Scope) Covers(doctorID, patientID uuid.UUID) bool {
	switch s.role {
	case RoleAdmin:
		return true
	case RoleDoctor:
		return s.doctorID != nil && *s.doctorID == doctorID
	case RolePatient:
		return s.patientID != nil && *s.patientID == patientID
	}
	return false
}
