package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/carebridge/hms/internal/domain"
	"github.com/carebridge/hms/internal/domain/appointment"
	"github.com/carebridge/hms/internal/domain/prescription"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PrescriptionService struct {
	prescriptionRepo prescription.Repository
	appointmentRepo  appointment.Repository
	log              *zap.Logger
}

func NewPrescriptionService(prescriptionRepo prescription.Repository, appointmentRepo appointment.Repository, log *zap.Logger) *PrescriptionService {
	return &PrescriptionService{
		prescriptionRepo: prescriptionRepo,
		appointmentRepo:  appointmentRepo,
		log:              log,
	}
}

// Upsert writes or fully replaces the appointment's prescription. Owning
// doctor or admin.
func (s *PrescriptionService) Upsert(ctx context.Context, claims *domain.Claims, appointmentID uuid.UUID, cmd *prescription.UpsertPrescriptionCommand) (*prescription.Prescription, error) {
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

	var fields []string
	if strings.TrimSpace(cmd.Diagnosis) == "" {
		fields = append(fields, "diagnosis is required")
	}
	if strings.TrimSpace(cmd.Medicines) == "" {
		fields = append(fields, "medicines is required")
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	p, err := s.prescriptionRepo.Upsert(ctx, appointmentID, cmd)
	if err != nil {
		return nil, fmt.Errorf("upserting prescription: %w", err)
	}

	s.log.Info("prescription written",
		zap.String("prescription_id", p.ID.String()),
		zap.String("appointment_id", appointmentID.String()),
	)

	return p, nil
}

func (s *PrescriptionService) GetByAppointment(ctx context.Context, claims *domain.Claims, appointmentID uuid.UUID) (*prescription.Prescription, error) {
	a, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !domain.ScopeFor(claims).Covers(a.DoctorID, a.PatientID) {
		return nil, appointment.ErrAppointmentNotFound
	}
	return s.prescriptionRepo.GetByAppointment(ctx, appointmentID)
}

func (s *PrescriptionService) List(ctx context.Context, claims *domain.Claims) ([]*prescription.Prescription, error) {
	return s.prescriptionRepo.List(ctx, domain.ScopeFor(claims))
}
