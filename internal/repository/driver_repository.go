package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type DriverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Driver, error) {
	var driver model.Driver
	err := r.db.WithContext(ctx).
		Preload("Onboarding").
		Where("id = ?", id).
		First(&driver).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

// GetActiveByMobile resolves an active driver by the onboarding mobile
// number, the identity the CSV import rows carry.
func (r *DriverRepository) GetActiveByMobile(ctx context.Context, mobile int64) (*model.Driver, error) {
	var driver model.Driver
	err := r.db.WithContext(ctx).
		Preload("Onboarding").
		Joins("JOIN onboardings ON onboardings.id = drivers.onboarding_id").
		Where("onboardings.mobile_no = ? AND drivers.is_active = ?", mobile, true).
		First(&driver).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

// Deactivate marks a driver inactive with the given date of leaving.
// Attrition uses this when detaching the driver from a roster.
func (r *DriverRepository) Deactivate(ctx context.Context, id uuid.UUID, dol time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Driver{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active": false,
			"dol":       dol,
		}).Error
}
