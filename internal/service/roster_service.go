package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
	"fleet-service/internal/schedule"
)

// RosterService owns the roster lifecycle: validation against the
// scheduling-conflict rules, persistence with its ordered side effects
// (vehicle status, assignment audit logs, pricing), operator status
// transitions and the CSV import. Every public operation runs as one
// transaction.
type RosterService struct {
	db *gorm.DB
}

func NewRosterService(db *gorm.DB) *RosterService {
	return &RosterService{db: db}
}

type SaveRosterInput struct {
	ClientStoreID        string
	Type                 model.RosterType
	Status               model.RosterStatus
	DriverID             *string
	VehicleID            *string
	StartDate            string
	EndDate              string
	Holiday              []string
	SlotStartTime        string
	SlotEndTime          string
	DestinationStationID string
	Remarks              *string
}

func (s *RosterService) Create(ctx context.Context, principal model.Principal, input SaveRosterInput) (*model.Roster, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	roster, err := buildRoster(input)
	if err != nil {
		return nil, err
	}
	roster.CreatedByID = &principal.UserID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.save(ctx, tx, roster, nil)
	})
	if err != nil {
		return nil, err
	}
	return roster, nil
}

func (s *RosterService) Update(ctx context.Context, principal model.Principal, id string, input SaveRosterInput) (*model.Roster, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	rosterID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidInput
	}

	updated, err := buildRoster(input)
	if err != nil {
		return nil, err
	}

	var roster *model.Roster
	err = s.db.Transaction(func(tx *gorm.DB) error {
		rosters := repository.NewRosterRepository(tx)
		existing, err := rosters.GetByIDForUpdate(ctx, rosterID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// snapshot of the pre-update assignment, for change detection
		prev := *existing

		existing.ClientStoreID = updated.ClientStoreID
		existing.Type = updated.Type
		existing.Status = updated.Status
		existing.DriverID = updated.DriverID
		existing.VehicleID = updated.VehicleID
		existing.StartDate = updated.StartDate
		existing.EndDate = updated.EndDate
		existing.Holiday = updated.Holiday
		existing.SlotStartTime = updated.SlotStartTime
		existing.SlotEndTime = updated.SlotEndTime
		existing.DestinationStationID = updated.DestinationStationID
		existing.Remarks = updated.Remarks
		existing.CreatedByID = &principal.UserID

		if err := s.save(ctx, tx, existing, &prev); err != nil {
			return err
		}
		roster = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return roster, nil
}

// Validate runs the full roster validation outside a save, as exposed to
// the admin surface for pre-flight checks.
func (s *RosterService) Validate(ctx context.Context, roster *model.Roster) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		_, _, err := s.validate(ctx, tx, roster)
		return err
	})
}

// save validates and persists a roster and fires the ordered side
// effects. prev is the pre-update snapshot, nil on create. Runs inside
// the caller's transaction.
func (s *RosterService) save(ctx context.Context, tx *gorm.DB, roster *model.Roster, prev *model.Roster) error {
	stores := repository.NewClientStoreRepository(tx)
	stations := repository.NewStationRepository(tx)
	rosters := repository.NewRosterRepository(tx)
	logs := repository.NewRosterLogRepository(tx)

	if roster.ClientStoreID == uuid.Nil {
		return validationErr(reasonStoreMandatory)
	}
	store, err := stores.GetByID(ctx, roster.ClientStoreID)
	if err != nil {
		return err
	}
	if store == nil {
		return validationErr(reasonStoreMandatory)
	}

	station, err := stations.GetByID(ctx, roster.DestinationStationID)
	if err != nil {
		return err
	}
	if station == nil {
		return ErrNotFound
	}

	// denormalized from the store at save time
	roster.ClientID = store.ClientID
	roster.City = store.City
	roster.Lat = store.Lat
	roster.Long = store.Long
	roster.Address = store.Address + ", " + store.City + ", " + store.State

	roster.IsActive = roster.Status == model.RosterStatusActive

	vehicle, _, err := s.validate(ctx, tx, roster)
	if err != nil {
		return err
	}

	if err := s.resolvePricing(ctx, tx, roster, vehicle); err != nil {
		return err
	}

	created := prev == nil
	if created {
		if err := rosters.Create(ctx, roster); err != nil {
			return err
		}
	} else {
		if err := rosters.Update(ctx, roster); err != nil {
			return err
		}
	}

	// side effects, in a fixed order
	if created {
		if roster.VehicleID != nil {
			if err := setVehicleStatusGuarded(ctx, tx, *roster.VehicleID, model.VehicleStatusOnGround); err != nil {
				return err
			}
		}
		return nil
	}

	if !roster.IsActive && roster.VehicleID != nil {
		count, err := rosters.CountActiveByVehicle(ctx, *roster.VehicleID, &roster.ID)
		if err != nil {
			return err
		}
		if count == 0 {
			if err := setVehicleStatusGuarded(ctx, tx, *roster.VehicleID, model.VehicleStatusForDeployment); err != nil {
				return err
			}
		}
	}
	if roster.IsActive && roster.VehicleID != nil {
		if err := setVehicleStatusGuarded(ctx, tx, *roster.VehicleID, model.VehicleStatusOnGround); err != nil {
			return err
		}
	}

	if uuidChanged(prev.VehicleID, roster.VehicleID) {
		if prev.VehicleID != nil {
			count, err := rosters.CountActiveByVehicle(ctx, *prev.VehicleID, &roster.ID)
			if err != nil {
				return err
			}
			if count == 0 {
				if err := setVehicleStatusGuarded(ctx, tx, *prev.VehicleID, model.VehicleStatusForDeployment); err != nil {
					return err
				}
			}
		}
		err := logs.CreateVehicleLog(ctx, &model.RosterVehicleLog{
			RosterID:     roster.ID,
			OldVehicleID: prev.VehicleID,
			NewVehicleID: roster.VehicleID,
			Status:       roster.Status,
			CreatedByID:  roster.CreatedByID,
		})
		if err != nil {
			return err
		}
	}

	if uuidChanged(prev.DriverID, roster.DriverID) {
		err := logs.CreateDriverLog(ctx, &model.RosterDriverLog{
			RosterID:    roster.ID,
			OldDriverID: prev.DriverID,
			NewDriverID: roster.DriverID,
			Status:      roster.Status,
			CreatedByID: roster.CreatedByID,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// validate applies the assignment rules: basics (presence, vehicle
// availability, license) and the buffered overlap scans against every
// other active roster of the vehicle and driver. Returns the loaded
// vehicle and driver for reuse by the caller.
func (s *RosterService) validate(ctx context.Context, tx *gorm.DB, roster *model.Roster) (*model.Vehicle, *model.Driver, error) {
	vehicles := repository.NewVehicleRepository(tx)
	drivers := repository.NewDriverRepository(tx)
	rosters := repository.NewRosterRepository(tx)
	configs := repository.NewConfigRepository(tx)

	var vehicle *model.Vehicle
	if roster.VehicleID != nil {
		v, err := vehicles.GetByID(ctx, *roster.VehicleID)
		if err != nil {
			return nil, nil, err
		}
		if v == nil {
			return nil, nil, ErrNotFound
		}
		vehicle = v
	}

	var driver *model.Driver
	if roster.DriverID != nil {
		d, err := drivers.GetByID(ctx, *roster.DriverID)
		if err != nil {
			return nil, nil, err
		}
		if d == nil {
			return nil, nil, ErrNotFound
		}
		driver = d
	}

	if err := checkRosterBasics(roster, vehicle, driver); err != nil {
		return nil, nil, err
	}

	candidate, err := rosterAssignment(roster)
	if err != nil {
		return nil, nil, ErrInvalidInput
	}
	buffer, err := configs.GetTimeDelta(ctx)
	if err != nil {
		return nil, nil, err
	}

	var exclude *uuid.UUID
	if roster.ID != uuid.Nil {
		exclude = &roster.ID
	}

	if vehicle != nil {
		others, err := rosters.ListActiveByVehicle(ctx, vehicle.ID, exclude)
		if err != nil {
			return nil, nil, err
		}
		if hasScheduleConflict(candidate, others, buffer) {
			return nil, nil, validationErr(reasonVehicleOccupied)
		}
	}

	if driver != nil {
		others, err := rosters.ListActiveByDriver(ctx, driver.ID, exclude)
		if err != nil {
			return nil, nil, err
		}
		if hasScheduleConflict(candidate, others, buffer) {
			return nil, nil, validationErr(reasonDriverOccupied)
		}
	}

	return vehicle, driver, nil
}

// resolvePricing sets the roster cost from the best-matching active
// pricing row, or clears it when the roster is not active or carries no
// vehicle.
func (s *RosterService) resolvePricing(ctx context.Context, tx *gorm.DB, roster *model.Roster, vehicle *model.Vehicle) error {
	if !roster.IsActive || vehicle == nil {
		roster.Cost = nil
		return nil
	}
	pricing := repository.NewPricingRepository(tx)
	price, err := pricing.FindActivePrice(ctx, roster.ClientID, roster.ClientStoreID, vehicle.Model, roster.Type)
	if err != nil {
		return err
	}
	roster.Cost = price
	return nil
}

// ChangeStatus drives the operator status machine. SERVICE is system
// driven and cannot be selected here.
func (s *RosterService) ChangeStatus(ctx context.Context, principal model.Principal, id string, status model.RosterStatus, remarks string) (*model.Roster, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	rosterID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidInput
	}

	var roster *model.Roster
	err = s.db.Transaction(func(tx *gorm.DB) error {
		rosters := repository.NewRosterRepository(tx)
		logs := repository.NewRosterLogRepository(tx)
		drivers := repository.NewDriverRepository(tx)

		r, err := rosters.GetByIDForUpdate(ctx, rosterID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		oldStatus := r.Status
		prevDriver := r.DriverID
		prevVehicle := r.VehicleID

		var vehicle *model.Vehicle
		switch status {
		case model.RosterStatusInActive:
			if remarks == "" {
				return validationErr(reasonRemarksRequired)
			}
			r.Status = model.RosterStatusInActive
			r.IsActive = false
			r.Remarks = &remarks

		case model.RosterStatusActive:
			r.Status = model.RosterStatusActive
			v, _, err := s.validate(ctx, tx, r)
			if err != nil {
				return err
			}
			vehicle = v
			r.IsActive = true
			if remarks != "" {
				r.Remarks = &remarks
			}

		case model.RosterStatusAttrition:
			detachedDriver, _ := applyAttrition(r)
			if detachedDriver != nil {
				today := time.Now().Truncate(24 * time.Hour)
				if err := drivers.Deactivate(ctx, *detachedDriver, today); err != nil {
					return err
				}
			}

		default:
			return validationErr(reasonStatusNotSettable)
		}

		// cost follows the status like any other save
		if err := s.resolvePricing(ctx, tx, r, vehicle); err != nil {
			return err
		}

		r.CreatedByID = &principal.UserID
		if err := rosters.Update(ctx, r); err != nil {
			return err
		}

		// vehicle status follows the transition
		switch status {
		case model.RosterStatusInActive:
			if r.VehicleID != nil {
				if err := projectVehicleStatus(ctx, tx, *r.VehicleID, &r.ID); err != nil {
					return err
				}
			}
		case model.RosterStatusActive:
			if r.VehicleID != nil {
				if err := setVehicleStatusGuarded(ctx, tx, *r.VehicleID, model.VehicleStatusOnGround); err != nil {
					return err
				}
			}
		case model.RosterStatusAttrition:
			if prevVehicle != nil {
				if err := projectVehicleStatus(ctx, tx, *prevVehicle, &r.ID); err != nil {
					return err
				}
				err := logs.CreateVehicleLog(ctx, &model.RosterVehicleLog{
					RosterID:     r.ID,
					OldVehicleID: prevVehicle,
					NewVehicleID: nil,
					Status:       r.Status,
					CreatedByID:  &principal.UserID,
				})
				if err != nil {
					return err
				}
			}
			if prevDriver != nil {
				err := logs.CreateDriverLog(ctx, &model.RosterDriverLog{
					RosterID:    r.ID,
					OldDriverID: prevDriver,
					NewDriverID: nil,
					Status:      r.Status,
					CreatedByID: &principal.UserID,
				})
				if err != nil {
					return err
				}
			}
		}

		var remarksPtr *string
		if remarks != "" {
			remarksPtr = &remarks
		}
		err = logs.CreateStatusLog(ctx, &model.RosterStatusLog{
			RosterID:    r.ID,
			OldStatus:   oldStatus,
			NewStatus:   r.Status,
			Remarks:     remarksPtr,
			CreatedByID: &principal.UserID,
		})
		if err != nil {
			return err
		}

		roster = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return roster, nil
}

func (s *RosterService) Get(ctx context.Context, principal model.Principal, id string) (*model.Roster, error) {
	rosterID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidInput
	}
	roster, err := repository.NewRosterRepository(s.db).GetByID(ctx, rosterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if principal.IsDriver() {
		if principal.DriverID == nil || roster.DriverID == nil || *roster.DriverID != *principal.DriverID {
			return nil, ErrPermissionDenied
		}
	}
	return roster, nil
}

// DriverLogs returns the driver reassignment history of a roster.
func (s *RosterService) DriverLogs(ctx context.Context, principal model.Principal, id string) ([]model.RosterDriverLog, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	rosterID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidInput
	}
	return repository.NewRosterLogRepository(s.db).ListDriverLogs(ctx, rosterID)
}

// VehicleLogs returns the vehicle reassignment history of a roster.
func (s *RosterService) VehicleLogs(ctx context.Context, principal model.Principal, id string) ([]model.RosterVehicleLog, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	rosterID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidInput
	}
	return repository.NewRosterLogRepository(s.db).ListVehicleLogs(ctx, rosterID)
}

func (s *RosterService) List(ctx context.Context, principal model.Principal, filter repository.RosterListFilter) ([]model.Roster, error) {
	if principal.IsDriver() {
		if principal.DriverID == nil {
			return nil, ErrPermissionDenied
		}
		filter.DriverID = principal.DriverID
	}
	return repository.NewRosterRepository(s.db).List(ctx, filter)
}

func buildRoster(input SaveRosterInput) (*model.Roster, error) {
	storeID, err := uuid.Parse(input.ClientStoreID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	stationID, err := uuid.Parse(input.DestinationStationID)
	if err != nil {
		return nil, ErrInvalidInput
	}

	var driverID *uuid.UUID
	if input.DriverID != nil {
		parsed, err := uuid.Parse(*input.DriverID)
		if err != nil {
			return nil, ErrInvalidInput
		}
		driverID = &parsed
	}

	var vehicleID *uuid.UUID
	if input.VehicleID != nil {
		parsed, err := uuid.Parse(*input.VehicleID)
		if err != nil {
			return nil, ErrInvalidInput
		}
		vehicleID = &parsed
	}

	startDate, err := schedule.ParseDate(input.StartDate)
	if err != nil {
		return nil, ErrInvalidInput
	}
	endDate, err := schedule.ParseDate(input.EndDate)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if endDate.Before(startDate) {
		return nil, ErrInvalidInput
	}

	for _, day := range input.Holiday {
		if _, err := schedule.ParseDate(day); err != nil {
			return nil, ErrInvalidInput
		}
	}

	slotStart, err := schedule.ParseTimeOfDay(input.SlotStartTime)
	if err != nil {
		return nil, ErrInvalidInput
	}
	slotEnd, err := schedule.ParseTimeOfDay(input.SlotEndTime)
	if err != nil {
		return nil, ErrInvalidInput
	}

	rosterType := input.Type
	if rosterType == "" {
		rosterType = model.RosterTypeLogisticsFixed
	}
	status := input.Status
	if status == "" {
		status = model.RosterStatusActive
	}

	return &model.Roster{
		ClientStoreID:        storeID,
		Type:                 rosterType,
		Status:               status,
		DriverID:             driverID,
		VehicleID:            vehicleID,
		StartDate:            startDate,
		EndDate:              endDate,
		Holiday:              datatypes.NewJSONSlice(input.Holiday),
		SlotStartTime:        schedule.FormatTimeOfDay(slotStart),
		SlotEndTime:          schedule.FormatTimeOfDay(slotEnd),
		DestinationStationID: stationID,
		Remarks:              input.Remarks,
	}, nil
}

func uuidChanged(before, after *uuid.UUID) bool {
	if before == nil && after == nil {
		return false
	}
	if before == nil || after == nil {
		return true
	}
	return *before != *after
}
