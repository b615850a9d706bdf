package repository

import (
	"context"
	"errors"

	"github.com/carebridge/hms/internal/domain"
	"github.com/carebridge/hms/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceRepo struct {
	db *gorm.DB
}

func NewInvoiceRepo(db *gorm.DB) *InvoiceRepo {
	return &InvoiceRepo{db: db}
}

// Upsert relies on the unique index on appointment_id: a conflict overwrites
// the amount and reopens the invoice as unpaid.
func (r *InvoiceRepo) Upsert(ctx context.Context, appointmentID uuid.UUID, amount float64) (*billing.Invoice, error) {
	inv := &billing.Invoice{
		AppointmentID: appointmentID,
		Amount:        amount,
		Paid:          false,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "appointment_id"}},
		DoUpdates: clause.Assignments(map[string]any{"amount": amount, "paid": false}),
	}).Create(inv).Error
	if err != nil {
		return nil, err
	}
	return r.GetByAppointment(ctx, appointmentID)
}

func (r *InvoiceRepo) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*billing.Invoice, error) {
	var inv billing.Invoice
	err := r.db.WithContext(ctx).First(&inv, "appointment_id = ?", appointmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, billing.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// MarkPaid flips paid with a guard on the previous value: of two concurrent
// payments, at most one sees RowsAffected == 1.
func (r *InvoiceRepo) MarkPaid(ctx context.Context, invoiceID uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&billing.Invoice{}).
		Where("id = ? AND paid = ?", invoiceID, false).
		Update("paid", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return billing.ErrAlreadyPaid
	}
	return nil
}

func (r *InvoiceRepo) List(ctx context.Context, scope domain.Scope) ([]*billing.Invoice, error) {
	tx := r.db.WithContext(ctx).Model(&billing.Invoice{}).
		Joins("JOIN clinical.appointments a ON a.id = clinical.invoices.appointment_id")
	tx = scopedAppointments(tx, scope, "a.")

	var rows []*billing.Invoice
	err := tx.Order("clinical.invoices.issued_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *InvoiceRepo) Summarize(ctx context.Context) (*billing.RevenueSummary, error) {
	var summary billing.RevenueSummary
	err := r.db.WithContext(ctx).Model(&billing.Invoice{}).
		Select(`
			COALESCE(SUM(amount) FILTER (WHERE paid), 0)      AS total_revenue,
			COUNT(*) FILTER (WHERE paid)                      AS paid_count,
			COUNT(*) FILTER (WHERE NOT paid)                  AS unpaid_count,
			COALESCE(SUM(amount) FILTER (WHERE NOT paid), 0)  AS pending_amount`).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
