package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type PricingRepository struct {
	db *gorm.DB
}

func NewPricingRepository(db *gorm.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// FindActivePrice returns the price of the most recent active pricing row
// matching the roster type, vehicle model, client and store membership,
// or nil when no row matches.
func (r *PricingRepository) FindActivePrice(
	ctx context.Context,
	clientID uuid.UUID,
	clientStoreID uuid.UUID,
	vehicleModel string,
	rosterType model.RosterType,
) (*float64, error) {
	var pricing model.Pricing
	err := r.db.WithContext(ctx).
		Joins("JOIN pricing_client_stores pcs ON pcs.pricing_id = pricing_configurations.id").
		Where("pricing_configurations.type = ?", rosterType).
		Where("pricing_configurations.vehicle_model = ?", vehicleModel).
		Where("pricing_configurations.client_id = ?", clientID).
		Where("pcs.client_store_id = ?", clientStoreID).
		Where("pricing_configurations.is_active = ?", true).
		Order("pricing_configurations.created_at DESC").
		First(&pricing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pricing.Price, nil
}
