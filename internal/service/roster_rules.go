package service

import (
	"time"

	"github.com/google/uuid"

	"fleet-service/internal/model"
	"fleet-service/internal/schedule"
)

// Validation reasons surfaced to the operator.
const (
	reasonStoreMandatory    = "client store is mandatory"
	reasonVehicleRequired   = "vehicle must be added for creating an active roster"
	reasonDriverRequired    = "driver is mandatory for non-rental rosters"
	reasonVehicleInactive   = "vehicle is inactive"
	reasonVehicleInService  = "vehicle is under servicing/maintenance"
	reasonVehicleOccupied   = "vehicle already occupied"
	reasonDriverOccupied    = "driver already occupied"
	reasonNoOnboarding      = "driver has no onboarding record"
	reasonNoDriverLicense   = "cannot assign high speed vehicle to driver without license"
	reasonRemarksRequired   = "remarks required if marked inactive"
	reasonStatusNotSettable = "status cannot be set by an operator"
)

// rosterAssignment extracts the scheduling footprint of a roster.
func rosterAssignment(r *model.Roster) (schedule.Assignment, error) {
	slotStart, err := schedule.ParseTimeOfDay(r.SlotStartTime)
	if err != nil {
		return schedule.Assignment{}, err
	}
	slotEnd, err := schedule.ParseTimeOfDay(r.SlotEndTime)
	if err != nil {
		return schedule.Assignment{}, err
	}
	return schedule.Assignment{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		SlotStart: slotStart,
		SlotEnd:   slotEnd,
	}, nil
}

// hasScheduleConflict reports whether the candidate footprint collides
// with any of the given rosters. Every roster is checked pairwise; rows
// with unparseable slot times are treated as conflicting rather than
// silently ignored.
func hasScheduleConflict(candidate schedule.Assignment, existing []model.Roster, buffer time.Duration) bool {
	for i := range existing {
		other, err := rosterAssignment(&existing[i])
		if err != nil {
			return true
		}
		if schedule.Conflicts(candidate, other, buffer) {
			return true
		}
	}
	return false
}

// applyAttrition moves a roster to ATTRITION, detaching whatever driver
// and vehicle it held. Returns the detached ids so the caller can
// deactivate the driver and release the vehicle. Safe on a roster with
// neither assigned.
func applyAttrition(r *model.Roster) (driverID, vehicleID *uuid.UUID) {
	driverID = r.DriverID
	vehicleID = r.VehicleID
	r.DriverID = nil
	r.VehicleID = nil
	r.Status = model.RosterStatusAttrition
	r.IsActive = false
	return driverID, vehicleID
}

// checkRosterBasics runs the validation rules that need no conflict
// scan: store presence, assignment requirements for an active roster,
// vehicle availability and the driver-license rule. Returns the first
// violation as a ValidationError.
func checkRosterBasics(roster *model.Roster, vehicle *model.Vehicle, driver *model.Driver) error {
	if roster.ClientStoreID == uuid.Nil {
		return validationErr(reasonStoreMandatory)
	}
	if roster.Status == model.RosterStatusActive {
		if roster.VehicleID == nil {
			return validationErr(reasonVehicleRequired)
		}
		if roster.Type != model.RosterTypeRental && roster.DriverID == nil {
			return validationErr(reasonDriverRequired)
		}
	}
	if vehicle != nil {
		if !vehicle.IsActive {
			return validationErr(reasonVehicleInactive)
		}
		if vehicle.UnderService() {
			return validationErr(reasonVehicleInService)
		}
	}
	if driver != nil {
		if driver.Onboarding == nil {
			return validationErr(reasonNoOnboarding)
		}
		if vehicle != nil && vehicle.Speed == model.VehicleSpeedHigh && !driver.Onboarding.HasDriverLicense {
			return validationErr(reasonNoDriverLicense)
		}
	}
	return nil
}
