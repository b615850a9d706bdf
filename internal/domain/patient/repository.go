package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error

	// GetByID returns ErrPatientNotFound if no profile matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Patient, error)

	Update(ctx context.Context, id uuid.UUID, cmd *UpdatePatientCommand) (*Patient, error)
	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context) ([]*DirectoryEntry, error)

	Count(ctx context.Context) (int64, error)
}
