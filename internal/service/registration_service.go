package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/carebridge/hms/internal/domain"
	"github.com/carebridge/hms/internal/domain/doctor"
	"github.com/carebridge/hms/internal/domain/patient"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type RegisterCommand struct {
	Role            domain.Role
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string

	// Patient profile fields.
	DateOfBirth   *time.Time
	Gender        patient.Gender
	ContactNumber string

	// Doctor profile fields.
	Specialization string
	LicenseNumber  string
}

type RegistrationService struct {
	userRepo   UserRepository
	doctorRepo doctor.Repository
	log        *zap.Logger
}

func NewRegistrationService(userRepo UserRepository, doctorRepo doctor.Repository, log *zap.Logger) *RegistrationService {
	return &RegistrationService{userRepo: userRepo, doctorRepo: doctorRepo, log: log}
}

// Register creates the account and, for doctors and patients, the attached
// profile in one transaction. Doctor accounts come out inactive and stay that
// way until an admin approves them.
func (s *RegistrationService) Register(ctx context.Context, cmd *RegisterCommand) (*domain.User, error) {
	if err := s.validate(ctx, cmd); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(cmd.Email)),
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(cmd.FirstName),
		LastName:     strings.TrimSpace(cmd.LastName),
		Role:         cmd.Role,
		IsActive:     cmd.Role != domain.RoleDoctor,
	}

	switch cmd.Role {
	case domain.RoleDoctor:
		profile := &doctor.Doctor{
			Specialization: strings.TrimSpace(cmd.Specialization),
			LicenseNumber:  strings.TrimSpace(cmd.LicenseNumber),
		}
		if err := s.userRepo.CreateDoctorAccount(ctx, user, profile); err != nil {
			return nil, fmt.Errorf("creating doctor account: %w", err)
		}

	case domain.RolePatient:
		profile := &patient.Patient{
			DateOfBirth:   cmd.DateOfBirth,
			Gender:        cmd.Gender,
			ContactNumber: strings.TrimSpace(cmd.ContactNumber),
		}
		if cmd.DateOfBirth != nil {
			age := patient.AgeAt(*cmd.DateOfBirth, time.Now())
			profile.Age = &age
		}
		if err := s.userRepo.CreatePatientAccount(ctx, user, profile); err != nil {
			return nil, fmt.Errorf("creating patient account: %w", err)
		}

	case domain.RoleAdmin:
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("creating admin account: %w", err)
		}
	}

	s.log.Info("account registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.Bool("active", user.IsActive),
	)

	return user, nil
}

func (s *RegistrationService) validate(ctx context.Context, cmd *RegisterCommand) error {
	var fields []string

	if !cmd.Role.IsValid() {
		fields = append(fields, "role must be one of ADMIN, DOCTOR, PATIENT")
	}
	if strings.TrimSpace(cmd.FirstName) == "" {
		fields = append(fields, "first_name is required")
	}

	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" {
		fields = append(fields, "email is required")
	} else {
		taken, err := s.userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("checking email uniqueness: %w", err)
		}
		if taken {
			fields = append(fields, "email is already registered")
		}
	}

	if len(cmd.Password) < minPasswordLength {
		fields = append(fields, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if cmd.Password != cmd.ConfirmPassword {
		fields = append(fields, "passwords do not match")
	}

	switch cmd.Role {
	case domain.RoleDoctor:
		if strings.TrimSpace(cmd.Specialization) == "" {
			fields = append(fields, "specialization is required")
		}
		license := strings.TrimSpace(cmd.LicenseNumber)
		if license == "" {
			fields = append(fields, "license_number is required")
		} else {
			taken, err := s.doctorRepo.ExistsByLicense(ctx, license)
			if err != nil {
				return fmt.Errorf("checking license uniqueness: %w", err)
			}
			if taken {
				fields = append(fields, "license_number is already registered")
			}
		}

	case domain.RolePatient:
		if cmd.DateOfBirth == nil {
			fields = append(fields, "date_of_birth is required")
		} else if cmd.DateOfBirth.After(time.Now()) {
			fields = append(fields, "date_of_birth cannot be in the future")
		}
		if cmd.Gender != "" && !cmd.Gender.IsValid() {
			fields = append(fields, "gender must be one of male, female, other, unknown")
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
