package contact

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, q *Query) error

	// GetByID returns ErrQueryNotFound if no ticket matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Query, error)

	// UpdateReply persists admin_reply and replied_at.
	UpdateReply(ctx context.Context, q *Query) error

	// List returns every ticket, newest first.
	List(ctx context.Context) ([]*Query, error)
}
