package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

// ComputeVehicleStatus derives a vehicle's status from the state around
// it. An unfinished service ticket always wins over roster state: OPEN
// maps to UNDER_MAINTENANCE, IN_PROGRESS and ON_HOLD to UNDER_SERVICING.
// Without a ticket the vehicle is ON_GROUND while any active roster
// references it, otherwise FOR_DEPLOYMENT.
func ComputeVehicleStatus(openTicket *model.ServiceStatus, activeRosters int64) model.VehicleStatus {
	if openTicket != nil {
		if *openTicket == model.ServiceStatusOpen {
			return model.VehicleStatusUnderMaintenance
		}
		return model.VehicleStatusUnderServicing
	}
	if activeRosters > 0 {
		return model.VehicleStatusOnGround
	}
	return model.VehicleStatusForDeployment
}

// projectVehicleStatus recomputes and persists the status of one vehicle
// inside the caller's transaction, holding the vehicle row lock so
// concurrent roster and service saves serialize per vehicle.
// excludeRoster drops one roster from the active count, used while that
// roster's own deactivation is being written.
func projectVehicleStatus(ctx context.Context, tx *gorm.DB, vehicleID uuid.UUID, excludeRoster *uuid.UUID) error {
	vehicles := repository.NewVehicleRepository(tx)
	vehicle, err := vehicles.GetByIDForUpdate(ctx, vehicleID)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return nil
	}

	tickets := repository.NewServiceTicketRepository(tx)
	ticket, err := tickets.FindOpenByVehicle(ctx, vehicleID)
	if err != nil {
		return err
	}

	var openStatus *model.ServiceStatus
	if ticket != nil {
		openStatus = &ticket.Status
	}

	rosters := repository.NewRosterRepository(tx)
	active, err := rosters.CountActiveByVehicle(ctx, vehicleID, excludeRoster)
	if err != nil {
		return err
	}

	status := ComputeVehicleStatus(openStatus, active)
	if status == vehicle.Status {
		return nil
	}
	return vehicles.UpdateStatus(ctx, vehicleID, status)
}

// setVehicleStatusGuarded applies a roster-driven status mark unless a
// service ticket currently holds the vehicle; ticket precedence is never
// overridden by roster saves.
func setVehicleStatusGuarded(ctx context.Context, tx *gorm.DB, vehicleID uuid.UUID, status model.VehicleStatus) error {
	tickets := repository.NewServiceTicketRepository(tx)
	held, err := tickets.HasOpenByVehicle(ctx, vehicleID)
	if err != nil {
		return err
	}
	if held {
		return nil
	}
	return repository.NewVehicleRepository(tx).UpdateStatus(ctx, vehicleID, status)
}
