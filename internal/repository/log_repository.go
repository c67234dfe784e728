package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

// RosterLogRepository appends the roster audit rows: driver and vehicle
// reassignments plus status transitions. Rows are never updated.
type RosterLogRepository struct {
	db *gorm.DB
}

func NewRosterLogRepository(db *gorm.DB) *RosterLogRepository {
	return &RosterLogRepository{db: db}
}

func (r *RosterLogRepository) CreateDriverLog(ctx context.Context, log *model.RosterDriverLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *RosterLogRepository) CreateVehicleLog(ctx context.Context, log *model.RosterVehicleLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *RosterLogRepository) CreateStatusLog(ctx context.Context, log *model.RosterStatusLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *RosterLogRepository) ListDriverLogs(ctx context.Context, rosterID uuid.UUID) ([]model.RosterDriverLog, error) {
	var logs []model.RosterDriverLog
	err := r.db.WithContext(ctx).
		Where("roster_id = ?", rosterID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *RosterLogRepository) ListVehicleLogs(ctx context.Context, rosterID uuid.UUID) ([]model.RosterVehicleLog, error) {
	var logs []model.RosterVehicleLog
	err := r.db.WithContext(ctx).
		Where("roster_id = ?", rosterID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
