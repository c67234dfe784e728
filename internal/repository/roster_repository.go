package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet-service/internal/model"
)

type RosterRepository struct {
	db *gorm.DB
}

func NewRosterRepository(db *gorm.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) Create(ctx context.Context, roster *model.Roster) error {
	return r.db.WithContext(ctx).Create(roster).Error
}

func (r *RosterRepository) Update(ctx context.Context, roster *model.Roster) error {
	return r.db.WithContext(ctx).Save(roster).Error
}

func (r *RosterRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Roster, error) {
	var roster model.Roster
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&roster).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &roster, nil
}

// GetByIDForUpdate loads a roster holding a row lock for the duration of
// the surrounding transaction. Trip state transitions rely on this.
func (r *RosterRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Roster, error) {
	var roster model.Roster
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&roster).Error
	if err != nil {
		return nil, err
	}
	return &roster, nil
}

type RosterListFilter struct {
	Status   *model.RosterStatus
	Type     *model.RosterType
	City     *string
	ClientID *uuid.UUID
	DriverID *uuid.UUID
}

func (r *RosterRepository) List(ctx context.Context, filter RosterListFilter) ([]model.Roster, error) {
	var rosters []model.Roster
	query := r.db.WithContext(ctx).Model(&model.Roster{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.City != nil {
		query = query.Where("city = ?", *filter.City)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	}

	if err := query.Order("created_at DESC").Find(&rosters).Error; err != nil {
		return nil, err
	}
	return rosters, nil
}

// ListActiveByDriver returns every active roster holding the driver,
// optionally excluding one roster id (the one being edited). Rows are
// locked so a concurrent assignment cannot pass the same overlap scan.
func (r *RosterRepository) ListActiveByDriver(ctx context.Context, driverID uuid.UUID, exclude *uuid.UUID) ([]model.Roster, error) {
	var rosters []model.Roster
	query := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("driver_id = ? AND is_active = ?", driverID, true)
	if exclude != nil {
		query = query.Where("id <> ?", *exclude)
	}
	err := query.Find(&rosters).Error
	return rosters, err
}

// ListActiveByVehicle is the vehicle counterpart of ListActiveByDriver.
func (r *RosterRepository) ListActiveByVehicle(ctx context.Context, vehicleID uuid.UUID, exclude *uuid.UUID) ([]model.Roster, error) {
	var rosters []model.Roster
	query := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("vehicle_id = ? AND is_active = ?", vehicleID, true)
	if exclude != nil {
		query = query.Where("id <> ?", *exclude)
	}
	err := query.Find(&rosters).Error
	return rosters, err
}

// CountActiveByVehicle counts active rosters referencing a vehicle,
// excluding one roster id. Used when deciding whether a released vehicle
// goes back to FOR_DEPLOYMENT.
func (r *RosterRepository) CountActiveByVehicle(ctx context.Context, vehicleID uuid.UUID, exclude *uuid.UUID) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Roster{}).
		Where("vehicle_id = ? AND is_active = ?", vehicleID, true)
	if exclude != nil {
		query = query.Where("id <> ?", *exclude)
	}
	err := query.Count(&count).Error
	return count, err
}

// ListByVehicle returns all rosters referencing the vehicle regardless of
// status. The servicing workflow uses it to pull a vehicle off its rosters.
func (r *RosterRepository) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]model.Roster, error) {
	var rosters []model.Roster
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("vehicle_id = ?", vehicleID).
		Find(&rosters).Error
	return rosters, err
}

// FindDuplicate looks up a roster identical on the CSV import identity
// columns. Import counts such rows as skipped.
func (r *RosterRepository) FindDuplicate(ctx context.Context, roster *model.Roster, startDate, endDate time.Time) (*model.Roster, error) {
	var existing model.Roster
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", roster.DriverID).
		Where("client_store_id = ?", roster.ClientStoreID).
		Where("vehicle_id = ?", roster.VehicleID).
		Where("start_date = ? AND end_date = ?", startDate, endDate).
		Where("slot_start_time = ? AND slot_end_time = ?", roster.SlotStartTime, roster.SlotEndTime).
		Where("destination_station_id = ?", roster.DestinationStationID).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &existing, nil
}
