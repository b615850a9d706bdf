package patient

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderUnknown:
		return true
	}
	return false
}

// Patient is the profile record attached one-to-one to a PATIENT-role user.
type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`

	DateOfBirth *time.Time `gorm:"column:date_of_birth"`

	// Age at registration. Computed once from DateOfBirth when the profile is
	// created and never recomputed, so it drifts from the true age over time.
	Age *int `gorm:"column:age"`

	Gender        Gender `gorm:"column:gender;type:varchar(20)"`
	ContactNumber string `gorm:"column:contact_number;type:varchar(20)"`
}

func (Patient) TableName() string {
	return "clinical.patients"
}

// AgeAt computes full years between dob and the reference date.
func AgeAt(dob, at time.Time) int {
	years := at.Year() - dob.Year()
	if at.Month() < dob.Month() ||
		(at.Month() == dob.Month() && at.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

type UpdatePatientCommand struct {
	Gender        *Gender
	ContactNumber *string
}

// DirectoryEntry joins the profile with the display fields of its user.
type DirectoryEntry struct {
	Patient
	FullName string
	Email    string
}
