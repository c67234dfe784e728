package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type ServiceTicketRepository struct {
	db *gorm.DB
}

func NewServiceTicketRepository(db *gorm.DB) *ServiceTicketRepository {
	return &ServiceTicketRepository{db: db}
}

func (r *ServiceTicketRepository) Create(ctx context.Context, ticket *model.ServiceTicket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ServiceTicketRepository) Update(ctx context.Context, ticket *model.ServiceTicket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

func (r *ServiceTicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceTicket, error) {
	var ticket model.ServiceTicket
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// HasOpenByVehicle reports whether any ticket still holds the vehicle.
func (r *ServiceTicketRepository) HasOpenByVehicle(ctx context.Context, vehicleID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ServiceTicket{}).
		Where("vehicle_id = ? AND status <> ?", vehicleID, model.ServiceStatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindOpenByVehicle returns the most recent ticket still holding the
// vehicle, nil when none.
func (r *ServiceTicketRepository) FindOpenByVehicle(ctx context.Context, vehicleID uuid.UUID) (*model.ServiceTicket, error) {
	var ticket model.ServiceTicket
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND status <> ?", vehicleID, model.ServiceStatusCompleted).
		Order("created_at DESC").
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

type ServiceTicketListFilter struct {
	Status    *model.ServiceStatus
	VehicleID *uuid.UUID
}

func (r *ServiceTicketRepository) List(ctx context.Context, filter ServiceTicketListFilter) ([]model.ServiceTicket, error) {
	var tickets []model.ServiceTicket
	query := r.db.WithContext(ctx).Model(&model.ServiceTicket{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.VehicleID != nil {
		query = query.Where("vehicle_id = ?", *filter.VehicleID)
	}
	if err := query.Order("created_at DESC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ServiceTicketRepository) CreateLog(ctx context.Context, log *model.ServiceLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
