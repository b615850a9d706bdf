package appointment

import (
	"context"

	"github.com/carebridge/hms/internal/domain"
	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error

	// GetByID returns ErrAppointmentNotFound if no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// List returns the appointments visible to the scope, newest first.
	List(ctx context.Context, scope domain.Scope) ([]*Appointment, error)

	// UpdateStatus applies the transition with a guarded UPDATE: the row must
	// still be in the from status, so two concurrent transitions on the same
	// appointment cannot both succeed. Returns ErrInvalidStatusTransition if
	// the guard failed.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error

	// CountByStatus aggregates the scope's appointments per status.
	CountByStatus(ctx context.Context, scope domain.Scope) (*StatusCounts, error)
}
