package repository

import (
	"context"
	"errors"

	"github.com/carebridge/hms/internal/domain/doctor"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepo struct {
	db *gorm.DB
}

func NewDoctorRepo(db *gorm.DB) *DoctorRepo {
	return &DoctorRepo{db: db}
}

func (r *DoctorRepo) Create(ctx context.Context, d *doctor.Doctor) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DoctorRepo) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, doctor.ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := r.db.WithContext(ctx).First(&d, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, doctor.ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepo) Update(ctx context.Context, id uuid.UUID, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	updates := map[string]any{}
	if cmd.Specialization != nil {
		updates["specialization"] = *cmd.Specialization
	}
	if cmd.LicenseNumber != nil {
		updates["license_number"] = *cmd.LicenseNumber
	}
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&doctor.Doctor{}).
			Where("id = ?", id).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, doctor.ErrDoctorNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *DoctorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&doctor.Doctor{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return doctor.ErrDoctorNotFound
	}
	return nil
}

func (r *DoctorRepo) List(ctx context.Context, q *doctor.ListDoctorsQuery) ([]*doctor.DirectoryEntry, error) {
	tx := r.db.WithContext(ctx).
		Table("clinical.doctors AS d").
		Select(`d.*,
			TRIM(u.first_name || ' ' || u.last_name) AS full_name,
			u.email, u.is_active`).
		Joins("JOIN auth.users u ON u.id = d.user_id").
		Order("d.created_at DESC")

	if q.ActiveOnly {
		tx = tx.Where("u.is_active = ?", true)
	}
	if q.Specialization != "" {
		tx = tx.Where("d.specialization ILIKE ?", "%"+q.Specialization+"%")
	}

	var entries []*doctor.DirectoryEntry
	if err := tx.Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *DoctorRepo) Specializations(ctx context.Context) ([]string, error) {
	var specs []string
	err := r.db.WithContext(ctx).
		Table("clinical.doctors AS d").
		Joins("JOIN auth.users u ON u.id = d.user_id").
		Where("u.is_active = ?", true).
		Distinct().
		Order("specialization").
		Pluck("d.specialization", &specs).Error
	return specs, err
}

func (r *DoctorRepo) ExistsByLicense(ctx context.Context, licenseNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&doctor.Doctor{}).
		Where("license_number = ?", licenseNumber).
		Count(&count).Error
	return count > 0, err
}

func (r *DoctorRepo) ExistsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("clinical.doctors AS d").
		Joins("JOIN auth.users u ON u.id = d.user_id").
		Where("d.id = ? AND u.is_active = ?", id, true).
		Count(&count).Error
	return count > 0, err
}

func (r *DoctorRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&doctor.Doctor{}).Count(&count).Error
	return count, err
}
