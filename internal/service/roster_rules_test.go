package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-service/internal/model"
	"fleet-service/internal/schedule"
)

func activeRoster() *model.Roster {
	driverID := uuid.New()
	vehicleID := uuid.New()
	return &model.Roster{
		ID:            uuid.New(),
		ClientStoreID: uuid.New(),
		Type:          model.RosterTypeLogisticsFixed,
		Status:        model.RosterStatusActive,
		DriverID:      &driverID,
		VehicleID:     &vehicleID,
		StartDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		SlotStartTime: "09:00:00",
		SlotEndTime:   "13:00:00",
	}
}

func availableVehicle() *model.Vehicle {
	return &model.Vehicle{
		ID:       uuid.New(),
		Speed:    model.VehicleSpeedLow,
		Status:   model.VehicleStatusForDeployment,
		IsActive: true,
	}
}

func licensedDriver() *model.Driver {
	return &model.Driver{
		ID:       uuid.New(),
		IsActive: true,
		Onboarding: &model.Onboarding{
			ID:               uuid.New(),
			HasDriverLicense: true,
		},
	}
}

func TestCheckRosterBasicsPasses(t *testing.T) {
	err := checkRosterBasics(activeRoster(), availableVehicle(), licensedDriver())
	require.NoError(t, err)
}

func TestCheckRosterBasicsStoreMandatory(t *testing.T) {
	roster := activeRoster()
	roster.ClientStoreID = uuid.Nil

	err := checkRosterBasics(roster, availableVehicle(), licensedDriver())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, reasonStoreMandatory, vErr.Reason)
}

func TestCheckRosterBasicsActiveNeedsVehicle(t *testing.T) {
	roster := activeRoster()
	roster.VehicleID = nil

	err := checkRosterBasics(roster, nil, licensedDriver())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, reasonVehicleRequired, vErr.Reason)
}

func TestCheckRosterBasicsRentalWithoutDriver(t *testing.T) {
	roster := activeRoster()
	roster.Type = model.RosterTypeRental
	roster.DriverID = nil

	err := checkRosterBasics(roster, availableVehicle(), nil)
	require.NoError(t, err)
}

func TestCheckRosterBasicsNonRentalNeedsDriver(t *testing.T) {
	roster := activeRoster()
	roster.DriverID = nil

	err := checkRosterBasics(roster, availableVehicle(), nil)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, reasonDriverRequired, vErr.Reason)
}

func TestCheckRosterBasicsInactiveSkipsAssignmentRules(t *testing.T) {
	roster := activeRoster()
	roster.Status = model.RosterStatusInActive
	roster.VehicleID = nil
	roster.DriverID = nil

	err := checkRosterBasics(roster, nil, nil)
	require.NoError(t, err)
}

func TestCheckRosterBasicsVehicleUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Vehicle)
		reason string
	}{
		{
			name:   "inactive vehicle",
			mutate: func(v *model.Vehicle) { v.IsActive = false },
			reason: reasonVehicleInactive,
		},
		{
			name:   "under maintenance",
			mutate: func(v *model.Vehicle) { v.Status = model.VehicleStatusUnderMaintenance },
			reason: reasonVehicleInService,
		},
		{
			name:   "under servicing",
			mutate: func(v *model.Vehicle) { v.Status = model.VehicleStatusUnderServicing },
			reason: reasonVehicleInService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vehicle := availableVehicle()
			tt.mutate(vehicle)

			err := checkRosterBasics(activeRoster(), vehicle, licensedDriver())

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.reason, vErr.Reason)
		})
	}
}

func TestCheckRosterBasicsDriverWithoutOnboarding(t *testing.T) {
	driver := licensedDriver()
	driver.Onboarding = nil

	err := checkRosterBasics(activeRoster(), availableVehicle(), driver)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, reasonNoOnboarding, vErr.Reason)
}

func TestCheckRosterBasicsHighSpeedNeedsLicense(t *testing.T) {
	vehicle := availableVehicle()
	vehicle.Speed = model.VehicleSpeedHigh
	driver := licensedDriver()
	driver.Onboarding.HasDriverLicense = false

	err := checkRosterBasics(activeRoster(), vehicle, driver)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, reasonNoDriverLicense, vErr.Reason)
}

func TestCheckRosterBasicsLowSpeedWithoutLicense(t *testing.T) {
	driver := licensedDriver()
	driver.Onboarding.HasDriverLicense = false

	err := checkRosterBasics(activeRoster(), availableVehicle(), driver)
	require.NoError(t, err)
}

func TestHasScheduleConflict(t *testing.T) {
	candidate, err := rosterAssignment(activeRoster())
	require.NoError(t, err)

	overlapping := activeRoster()
	overlapping.SlotStartTime = "12:00:00"
	overlapping.SlotEndTime = "16:00:00"

	disjoint := activeRoster()
	disjoint.SlotStartTime = "14:00:00"
	disjoint.SlotEndTime = "18:00:00"

	otherDates := activeRoster()
	otherDates.StartDate = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	otherDates.EndDate = time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	assert.True(t, hasScheduleConflict(candidate, []model.Roster{*overlapping}, 0))
	assert.False(t, hasScheduleConflict(candidate, []model.Roster{*disjoint}, 0))
	assert.False(t, hasScheduleConflict(candidate, []model.Roster{*otherDates}, 0))
	assert.False(t, hasScheduleConflict(candidate, nil, 0))
}

func TestHasScheduleConflictWithBuffer(t *testing.T) {
	candidate, err := rosterAssignment(activeRoster())
	require.NoError(t, err)

	// back to back slot, conflicting only once the turnaround buffer
	// stretches the candidate window
	adjacent := activeRoster()
	adjacent.SlotStartTime = "13:30:00"
	adjacent.SlotEndTime = "17:00:00"

	assert.False(t, hasScheduleConflict(candidate, []model.Roster{*adjacent}, 0))
	assert.True(t, hasScheduleConflict(candidate, []model.Roster{*adjacent}, time.Hour))
}

func TestHasScheduleConflictUnparseableRow(t *testing.T) {
	candidate, err := rosterAssignment(activeRoster())
	require.NoError(t, err)

	broken := activeRoster()
	broken.SlotStartTime = "not a time"

	assert.True(t, hasScheduleConflict(candidate, []model.Roster{*broken}, 0))
}

func TestRosterAssignment(t *testing.T) {
	roster := activeRoster()

	assignment, err := rosterAssignment(roster)
	require.NoError(t, err)

	start, err := schedule.ParseTimeOfDay("09:00:00")
	require.NoError(t, err)
	assert.Equal(t, start, assignment.SlotStart)
	assert.Equal(t, roster.StartDate, assignment.StartDate)
	assert.Equal(t, roster.EndDate, assignment.EndDate)
}
