package repository

import (
	"context"
	"errors"

	"github.com/carebridge/hms/internal/domain/contact"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

func (r *ContactRepo) Create(ctx context.Context, q *contact.Query) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *ContactRepo) GetByID(ctx context.Context, id uuid.UUID) (*contact.Query, error) {
	var q contact.Query
	err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, contact.ErrQueryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *ContactRepo) UpdateReply(ctx context.Context, q *contact.Query) error {
	return r.db.WithContext(ctx).Model(&contact.Query{}).
		Where("id = ?", q.ID).
		Updates(map[string]any{
			"admin_reply": q.AdminReply,
			"replied_at":  q.RepliedAt,
		}).Error
}

func (r *ContactRepo) List(ctx context.Context) ([]*contact.Query, error) {
	var rows []*contact.Query
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
