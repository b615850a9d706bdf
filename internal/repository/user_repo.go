package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/carebridge/hms/internal/domain"
	"github.com/carebridge/hms/internal/domain/doctor"
	"github.com/carebridge/hms/internal/domain/patient"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// CreatePatientAccount persists the user and its patient profile atomically
// and links them both ways.
func (r *UserRepo) CreatePatientAccount(ctx context.Context, u *domain.User, p *patient.Patient) error {
	u.Email = strings.ToLower(u.Email)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		p.UserID = u.ID
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		u.PatientID = &p.ID
		return tx.Model(u).Update("patient_id", p.ID).Error
	})
}

// CreateDoctorAccount persists the user and its doctor profile atomically.
func (r *UserRepo) CreateDoctorAccount(ctx context.Context, u *domain.User, d *doctor.Doctor) error {
	u.Email = strings.ToLower(u.Email)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		d.UserID = u.ID
		if err := tx.Create(d).Error; err != nil {
			return err
		}
		u.DoctorID = &d.ID
		return tx.Model(u).Update("doctor_id", d.ID).Error
	})
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	u.Email = strings.ToLower(u.Email)
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes the user and whichever profile row it owns. Appointments
// cascade with the profile at the database level.
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u domain.User
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if u.DoctorID != nil {
			if err := tx.Delete(&doctor.Doctor{}, "id = ?", *u.DoctorID).Error; err != nil {
				return err
			}
		}
		if u.PatientID != nil {
			if err := tx.Delete(&patient.Patient{}, "id = ?", *u.PatientID).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&domain.User{}, "id = ?", id).Error
	})
}
