package repository

import (
	"context"
	"errors"

	"github.com/carebridge/hms/internal/domain"
	"github.com/carebridge/hms/internal/domain/prescription"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PrescriptionRepo struct {
	db *gorm.DB
}

func NewPrescriptionRepo(db *gorm.DB) *PrescriptionRepo {
	return &PrescriptionRepo{db: db}
}

// Upsert replaces the appointment's prescription in full on conflict.
func (r *PrescriptionRepo) Upsert(ctx context.Context, appointmentID uuid.UUID, cmd *prescription.UpsertPrescriptionCommand) (*prescription.Prescription, error) {
	p := &prescription.Prescription{
		AppointmentID: appointmentID,
		Diagnosis:     cmd.Diagnosis,
		Medicines:     cmd.Medicines,
		Notes:         cmd.Notes,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "appointment_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"diagnosis": cmd.Diagnosis,
			"medicines": cmd.Medicines,
			"notes":     cmd.Notes,
		}),
	}).Create(p).Error
	if err != nil {
		return nil, err
	}
	return r.GetByAppointment(ctx, appointmentID)
}

func (r *PrescriptionRepo) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*prescription.Prescription, error) {
	var p prescription.Prescription
	err := r.db.WithContext(ctx).First(&p, "appointment_id = ?", appointmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, prescription.ErrPrescriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PrescriptionRepo) List(ctx context.Context, scope domain.Scope) ([]*prescription.Prescription, error) {
	tx := r.db.WithContext(ctx).Model(&prescription.Prescription{}).
		Joins("JOIN clinical.appointments a ON a.id = clinical.prescriptions.appointment_id")
	tx = scopedAppointments(tx, scope, "a.")

	var rows []*prescription.Prescription
	err := tx.Order("clinical.prescriptions.created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
