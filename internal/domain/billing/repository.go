package billing

import (
	"context"

	"github.com/carebridge/hms/internal/domain"
	"github.com/google/uuid"
)

type Repository interface {
	// Upsert creates the appointment's invoice or overwrites its amount,
	// resetting paid to false either way.
	Upsert(ctx context.Context, appointmentID uuid.UUID, amount float64) (*Invoice, error)

	// GetByAppointment returns ErrInvoiceNotFound if no invoice exists.
	GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Invoice, error)

	// MarkPaid flips paid with a guarded UPDATE (WHERE paid = false) so at
	// most one of two concurrent payments succeeds. Returns ErrAlreadyPaid
	// if the guard failed.
	MarkPaid(ctx context.Context, invoiceID uuid.UUID) error

	// List returns the invoices on appointments visible to the scope,
	// newest first.
	List(ctx context.Context, scope domain.Scope) ([]*Invoice, error)

	// Summarize aggregates all invoices.
	Summarize(ctx context.Context) (*RevenueSummary, error)
}
