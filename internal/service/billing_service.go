package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/carebridge/hms/internal/domain"
	"github.com/carebridge/hms/internal/domain/appointment"
	"github.com/carebridge/hms/internal/domain/billing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BillingService struct {
	invoiceRepo     billing.Repository
	appointmentRepo appointment.Repository
	log             *zap.Logger
}

func NewBillingService(invoiceRepo billing.Repository, appointmentRepo appointment.Repository, log *zap.Logger) *BillingService {
	return &BillingService{
		invoiceRepo:     invoiceRepo,
		appointmentRepo: appointmentRepo,
		log:             log,
	}
}

// IssueOrUpdate creates or re-issues the appointment's invoice. Re-issuing
// overwrites the amount and reopens the invoice as unpaid, even if it had
// been paid. Owning doctor or admin.
func (s *BillingService) IssueOrUpdate(ctx context.Context, claims *domain.Claims, appointmentID uuid.UUID, amount float64) (*billing.Invoice, error) {
	if claims.Role != domain.RoleDoctor && claims.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	a, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !domain.ScopeFor(claims).Covers(a.DoctorID, a.PatientID) {
		return nil, appointment.ErrAppointmentNotFound
	}

	if amount <= 0 {
		return nil, billing.ErrInvalidAmount
	}

	inv, err := s.invoiceRepo.Upsert(ctx, appointmentID, amount)
	if err != nil {
		return nil, fmt.Errorf("upserting invoice: %w", err)
	}

	s.log.Info("invoice issued",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("appointment_id", appointmentID.String()),
		zap.Float64("amount", amount),
	)

	return inv, nil
}

// Pay settles the invoice on the caller's own appointment. Patients only; a
// second payment attempt fails because the guarded UPDATE finds no unpaid
// row.
func (s *BillingService) Pay(ctx context.Context, claims *domain.Claims, appointmentID uuid.UUID) (*billing.Invoice, error) {
	if claims.Role != domain.RolePatient {
		return nil, ErrForbidden
	}

	a, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !domain.ScopeFor(claims).Covers(a.DoctorID, a.PatientID) {
		return nil, appointment.ErrAppointmentNotFound
	}

	inv, err := s.invoiceRepo.GetByAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, billing.ErrInvoiceNotFound) {
			return nil, billing.ErrNothingToPay
		}
		return nil, err
	}

	if err := s.invoiceRepo.MarkPaid(ctx, inv.ID); err != nil {
		return nil, err
	}
	inv.Paid = true

	s.log.Info("invoice paid",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("patient_id", a.PatientID.String()),
		zap.Float64("amount", inv.Amount),
	)

	return inv, nil
}

// GetByAppointment returns the invoice on an appointment the caller can see.
func (s *BillingService) GetByAppointment(ctx context.Context, claims *domain.Claims, appointmentID uuid.UUID) (*billing.Invoice, error) {
	a, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !domain.ScopeFor(claims).Covers(a.DoctorID, a.PatientID) {
		return nil, appointment.ErrAppointmentNotFound
	}
	return s.invoiceRepo.GetByAppointment(ctx, appointmentID)
}

func (s *BillingService) List(ctx context.Context, claims *domain.Claims) ([]*billing.Invoice, error) {
	return s.invoiceRepo.List(ctx, domain.ScopeFor(claims))
}

// Revenue aggregates all invoices. Admin-only.
func (s *BillingService) Revenue(ctx context.Context, claims *domain.Claims) (*billing.RevenueSummary, error) {
	if claims.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.invoiceRepo.Summarize(ctx)
}
