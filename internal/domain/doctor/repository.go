package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error

	// GetByID returns ErrDoctorNotFound if no profile matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Doctor, error)

	Update(ctx context.Context, id uuid.UUID, cmd *UpdateDoctorCommand) (*Doctor, error)

	// Delete removes the profile row. Rejecting a doctor deletes the user,
	// which cascades here.
	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, q *ListDoctorsQuery) ([]*DirectoryEntry, error)

	// Specializations returns the distinct specializations of active doctors.
	Specializations(ctx context.Context) ([]string, error)

	// ExistsByLicense checks license uniqueness without fetching the row.
	ExistsByLicense(ctx context.Context, licenseNumber string) (bool, error)

	// ExistsActive reports whether the profile exists and its user may log
	// in; booking is only allowed against such doctors.
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)

	Count(ctx context.Context) (int64, error)
}
