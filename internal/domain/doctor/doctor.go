package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is the profile record attached one-to-one to a DOCTOR-role user.
// The owning user starts inactive and cannot log in until an admin approves.
type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`

	Specialization string `gorm:"column:specialization;type:varchar(120);not null"`
	LicenseNumber  string `gorm:"column:license_number;type:varchar(80);uniqueIndex;not null"`
}

func (Doctor) TableName() string {
	return "clinical.doctors"
}

type UpdateDoctorCommand struct {
	Specialization *string
	LicenseNumber  *string
}

// Listing for the booking directory: only doctors whose user is active,
// optionally narrowed by a case-insensitive specialization substring.
type ListDoctorsQuery struct {
	ActiveOnly     bool
	Specialization string
}

// DirectoryEntry joins the profile with the display fields of its user.
type DirectoryEntry struct {
	Doctor
	FullName string
	Email    string
	IsActive bool
}
