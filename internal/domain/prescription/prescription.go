package prescription

import (
	"time"

	"github.com/google/uuid"
)

// Prescription is written by the owning doctor against one appointment; at
// most one exists per appointment (unique index on AppointmentID) and a
// re-issue replaces it in full.
type Prescription struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	AppointmentID uuid.UUID `gorm:"column:appointment_id;type:uuid;not null;uniqueIndex"`

	Diagnosis string `gorm:"column:diagnosis;type:text;not null"`
	Medicines string `gorm:"column:medicines;type:text;not null"`
	Notes     string `gorm:"column:notes;type:text"`
}

func (Prescription) TableName() string {
	return "clinical.prescriptions"
}

type UpsertPrescriptionCommand struct {
	Diagnosis string
	Medicines string
	Notes     string
}
