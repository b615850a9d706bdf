package service

import (
	"context"
	"fmt"
	"time"

	"github.com/carebridge/hms/internal/domain"
	"github.com/carebridge/hms/internal/domain/appointment"
	"github.com/carebridge/hms/internal/domain/doctor"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AppointmentService struct {
	appointmentRepo appointment.Repository
	doctorRepo      doctor.Repository
	log             *zap.Logger
}

func NewAppointmentService(appointmentRepo appointment.Repository, doctorRepo doctor.Repository, log *zap.Logger) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		log:             log,
	}
}

// Book creates a SCHEDULED appointment for the calling patient. The patient
// is always the caller's own profile; the request cannot book on behalf of
// anyone else.
func (s *AppointmentService) Book(ctx context.Context, claims *domain.Claims, cmd *appointment.BookAppointmentCommand) (*appointment.Appointment, error) {
	if claims.Role != domain.RolePatient {
		return nil, ErrForbidden
	}
	if claims.PatientID == nil {
		return nil, ErrForbidden
	}

	if cmd.ScheduledAt.Before(time.Now()) {
		return nil, appointment.ErrScheduledInPast
	}

	active, err := s.doctorRepo.ExistsActive(ctx, cmd.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("checking doctor availability: %w", err)
	}
	if !active {
		return nil, &ValidationError{Fields: []string{"doctor is not available for booking"}}
	}

	a := &appointment.Appointment{
		DoctorID:    cmd.DoctorID,
		PatientID:   *claims.PatientID,
		ScheduledAt: cmd.ScheduledAt,
		Reason:      cmd.Reason,
		Status:      appointment.StatusScheduled,
	}
	if err := s.appointmentRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	s.log.Info("appointment booked",
		zap.String("appointment_id", a.ID.String()),
		zap.String("doctor_id", a.DoctorID.String()),
		zap.String("patient_id", a.PatientID.String()),
		zap.Time("scheduled_at", a.ScheduledAt),
	)

	return a, nil
}

// Get returns the appointment if the caller's scope covers it. A record
// outside the scope reports not-found, the same as a record that does not
// exist.
func (s *AppointmentService) Get(ctx context.Context, claims *domain.Claims, id uuid.UUID) (*appointment.Appointment, error) {
	a, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.ScopeFor(claims).Covers(a.DoctorID, a.PatientID) {
		return nil, appointment.ErrAppointmentNotFound
	}
	return a, nil
}

func (s *AppointmentService) List(ctx context.Context, claims *domain.Claims) ([]*appointment.Appointment, error) {
	return s.appointmentRepo.List(ctx, domain.ScopeFor(claims))
}

func (s *AppointmentService) Counts(ctx context.Context, claims *domain.Claims) (*appointment.StatusCounts, error) {
	return s.appointmentRepo.CountByStatus(ctx, domain.ScopeFor(claims))
}

// Confirm marks a scheduled appointment completed. Owning doctor or admin.
func (s *AppointmentService) Confirm(ctx context.Context, claims *domain.Claims, id uuid.UUID) (*appointment.Appointment, error) {
	if claims.Role != domain.RoleDoctor && claims.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.transition(ctx, claims, id, appointment.StatusCompleted)
}

// Cancel marks a scheduled appointment cancelled. Owning doctor, owning
// patient, or admin.
func (s *AppointmentService) Cancel(ctx context.Context, claims *domain.Claims, id uuid.UUID) (*appointment.Appointment, error) {
	return s.transition(ctx, claims, id, appointment.StatusCancelled)
}

func (s *AppointmentService) transition(ctx context.Context, claims *domain.Claims, id uuid.UUID, to appointment.Status) (*appointment.Appointment, error) {
	a, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.ScopeFor(claims).Covers(a.DoctorID, a.PatientID) {
		return nil, appointment.ErrAppointmentNotFound
	}

	if !a.CanTransitionTo(to) {
		return nil, appointment.ErrInvalidStatusTransition
	}

	// The guarded UPDATE re-checks the current status, so a concurrent
	// transition that got there first surfaces as an invalid transition here.
	if err := s.appointmentRepo.UpdateStatus(ctx, id, a.Status, to); err != nil {
		return nil, err
	}
	a.Status = to

	s.log.Info("appointment status changed",
		zap.String("appointment_id", a.ID.String()),
		zap.String("status", string(to)),
		zap.String("actor_role", string(claims.Role)),
	)

	return a, nil
}
