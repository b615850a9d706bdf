package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/carebridge/hms/internal/domain"
	"github.com/carebridge/hms/internal/domain/doctor"
	"github.com/carebridge/hms/internal/domain/patient"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DirectoryService covers the admin-facing staff management surface and the
// public booking directory.
type DirectoryService struct {
	userRepo    UserRepository
	doctorRepo  doctor.Repository
	patientRepo patient.Repository
	log         *zap.Logger
}

func NewDirectoryService(userRepo UserRepository, doctorRepo doctor.Repository, patientRepo patient.Repository, log *zap.Logger) *DirectoryService {
	return &DirectoryService{
		userRepo:    userRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		log:         log,
	}
}

// ListDoctors powers both the admin roster and the patient booking directory.
// Non-admin callers only ever see approved doctors.
func (s *DirectoryService) ListDoctors(ctx context.Context, claims *domain.Claims, specialization string) ([]*doctor.DirectoryEntry, error) {
	q := &doctor.ListDoctorsQuery{
		ActiveOnly:     claims.Role != domain.RoleAdmin,
		Specialization: strings.TrimSpace(specialization),
	}
	return s.doctorRepo.List(ctx, q)
}

func (s *DirectoryService) Specializations(ctx context.Context) ([]string, error) {
	return s.doctorRepo.Specializations(ctx)
}

func (s *DirectoryService) ListPatients(ctx context.Context, claims *domain.Claims) ([]*patient.DirectoryEntry, error) {
	if claims.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.patientRepo.List(ctx)
}

// ApproveDoctor activates a pending doctor account so it can log in.
func (s *DirectoryService) ApproveDoctor(ctx context.Context, claims *domain.Claims, doctorID uuid.UUID) error {
	if claims.Role != domain.RoleAdmin {
		return ErrForbidden
	}

	d, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}

	if err := s.userRepo.SetActive(ctx, d.UserID, true); err != nil {
		return fmt.Errorf("activating doctor account: %w", err)
	}

	s.log.Info("doctor approved",
		zap.String("doctor_id", doctorID.String()),
		zap.String("admin_id", claims.UserID.String()),
	)
	return nil
}

// RejectDoctor deletes the pending account entirely, profile included. The
// doctor can re-register later with the same email.
func (s *DirectoryService) RejectDoctor(ctx context.Context, claims *domain.Claims, doctorID uuid.UUID) error {
	if claims.Role != domain.RoleAdmin {
		return ErrForbidden
	}

	d, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, d.UserID); err != nil {
		return fmt.Errorf("deleting rejected doctor: %w", err)
	}

	s.log.Info("doctor rejected",
		zap.String("doctor_id", doctorID.String()),
		zap.String("admin_id", claims.UserID.String()),
	)
	return nil
}

func (s *DirectoryService) UpdateDoctor(ctx context.Context, claims *domain.Claims, doctorID uuid.UUID, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	if claims.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	if cmd.LicenseNumber != nil {
		license := strings.TrimSpace(*cmd.LicenseNumber)
		if license == "" {
			return nil, &ValidationError{Fields: []string{"license_number cannot be empty"}}
		}
		cmd.LicenseNumber = &license
	}

	return s.doctorRepo.Update(ctx, doctorID, cmd)
}

func (s *DirectoryService) UpdatePatient(ctx context.Context, claims *domain.Claims, patientID uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	if claims.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	if cmd.Gender != nil && !cmd.Gender.IsValid() {
		return nil, &ValidationError{Fields: []string{"gender must be one of male, female, other, unknown"}}
	}

	return s.patientRepo.Update(ctx, patientID, cmd)
}

// RemoveDoctor deletes an approved doctor and their login in one pass.
func (s *DirectoryService) RemoveDoctor(ctx context.Context, claims *domain.Claims, doctorID uuid.UUID) error {
	return s.RejectDoctor(ctx, claims, doctorID)
}

func (s *DirectoryService) RemovePatient(ctx context.Context, claims *domain.Claims, patientID uuid.UUID) error {
	if claims.Role != domain.RoleAdmin {
		return ErrForbidden
	}

	p, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, p.UserID); err != nil {
		return fmt.Errorf("deleting patient account: %w", err)
	}

	s.log.Info("patient removed",
		zap.String("patient_id", patientID.String()),
		zap.String("admin_id", claims.UserID.String()),
	)
	return nil
}
