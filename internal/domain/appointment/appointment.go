package appointment

import (
	"time"

	"github.com/google/uuid"
)

// State transitions:
//
//	scheduled → completed  (owning doctor confirms)
//	scheduled → cancelled  (owning doctor rejects, or owning patient cancels)
//
// completed and cancelled are terminal.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	DoctorID  uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index"`
	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`

	// ScheduledAt carries the booked date and time as one instant; listings
	// order by it descending (newest first).
	ScheduledAt time.Time `gorm:"column:scheduled_at;not null;index"`

	Reason string `gorm:"column:reason;type:text"`
	Status Status `gorm:"column:status;type:varchar(20);not null;default:'SCHEDULED';index"`
}

func (Appointment) TableName() string {
	return "clinical.appointments"
}

func (a *Appointment) CanTransitionTo(newStatus Status) bool {
	allowed := map[Status][]Status{
		StatusScheduled: {StatusCompleted, StatusCancelled},
		StatusCompleted: {},
		StatusCancelled: {},
	}

	for _, s := range allowed[a.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

type BookAppointmentCommand struct {
	DoctorID    uuid.UUID
	ScheduledAt time.Time
	Reason      string
}

// StatusCounts backs the doctor/patient consoles and the admin dashboard.
type StatusCounts struct {
	Scheduled int64 `json:"scheduled"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

func (c StatusCounts) Total() int64 {
	return c.Scheduled + c.Completed + c.Cancelled
}
