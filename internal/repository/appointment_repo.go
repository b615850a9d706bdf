package repository

import (
	"context"
	"errors"

	"github.com/carebridge/hms/internal/domain"
	"github.com/carebridge/hms/internal/domain/appointment"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepo struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

func (r *AppointmentRepo) Create(ctx context.Context, a *appointment.Appointment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appointment.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepo) List(ctx context.Context, scope domain.Scope) ([]*appointment.Appointment, error) {
	tx := r.db.WithContext(ctx).Model(&appointment.Appointment{})
	tx = scopedAppointments(tx, scope, "")

	var rows []*appointment.Appointment
	err := tx.Order("scheduled_at DESC, id DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus guards the transition on the current status so two concurrent
// transitions on one row cannot both succeed.
func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to appointment.Status) error {
	res := r.db.WithContext(ctx).Model(&appointment.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appointment.ErrInvalidStatusTransition
	}
	return nil
}

func (r *AppointmentRepo) CountByStatus(ctx context.Context, scope domain.Scope) (*appointment.StatusCounts, error) {
	tx := r.db.WithContext(ctx).Model(&appointment.Appointment{})
	tx = scopedAppointments(tx, scope, "")

	var rows []struct {
		Status appointment.Status
		Total  int64
	}
	if err := tx.Select("status, COUNT(*) AS total").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := &appointment.StatusCounts{}
	for _, row := range rows {
		switch row.Status {
		case appointment.StatusScheduled:
			counts.Scheduled = row.Total
		case appointment.StatusCompleted:
			counts.Completed = row.Total
		case appointment.StatusCancelled:
			counts.Cancelled = row.Total
		}
	}
	return counts, nil
}
