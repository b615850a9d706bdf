package prescription

import (
	"context"

	"github.com/carebridge/hms/internal/domain"
	"github.com/google/uuid"
)

type Repository interface {
	// Upsert creates the appointment's prescription or replaces it in full.
	Upsert(ctx context.Context, appointmentID uuid.UUID, cmd *UpsertPrescriptionCommand) (*Prescription, error)

	// GetByAppointment returns ErrPrescriptionNotFound if none exists.
	GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Prescription, error)

	// List returns the prescriptions on appointments visible to the scope,
	// newest first.
	List(ctx context.Context, scope domain.Scope) ([]*Prescription, error)
}
