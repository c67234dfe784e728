package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-service/internal/model"
)

func TestCanStartRide(t *testing.T) {
	slotStart := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tolerance := 2 * time.Hour

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"after slot start", slotStart.Add(30 * time.Minute), true},
		{"exactly at slot start", slotStart, true},
		{"within tolerance", slotStart.Add(-90 * time.Minute), true},
		{"exactly at tolerance boundary", slotStart.Add(-tolerance), true},
		{"one second too early", slotStart.Add(-tolerance - time.Second), false},
		{"hours too early", slotStart.Add(-5 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canStartRide(tt.now, slotStart, tolerance))
		})
	}
}

func TestCanStartRideZeroTolerance(t *testing.T) {
	slotStart := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.True(t, canStartRide(slotStart, slotStart, 0))
	assert.False(t, canStartRide(slotStart.Add(-time.Second), slotStart, 0))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		current model.TripStatus
		next    model.TripStatus
		want    bool
	}{
		{model.TripStatusRideStarted, model.TripStatusCheckIn, true},
		{model.TripStatusCheckIn, model.TripStatusCheckOut, true},
		{model.TripStatusCheckOut, model.TripStatusRideCompleted, true},

		{model.TripStatusRideStarted, model.TripStatusCheckOut, false},
		{model.TripStatusRideStarted, model.TripStatusRideCompleted, false},
		{model.TripStatusCheckIn, model.TripStatusRideCompleted, false},
		{model.TripStatusCheckIn, model.TripStatusCheckIn, false},
		{model.TripStatusCheckOut, model.TripStatusCheckIn, false},
		{model.TripStatusRideCompleted, model.TripStatusCheckIn, false},
		{model.TripStatusRideCompleted, model.TripStatusRideCompleted, false},
		{model.TripStatusCheckIn, model.TripStatusRideStarted, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, canTransition(tt.current, tt.next),
			"%s -> %s", tt.current, tt.next)
	}
}

func TestAssignedToRoster(t *testing.T) {
	driverID := uuid.New()
	otherID := uuid.New()
	roster := &model.Roster{DriverID: &driverID}

	assert.True(t, assignedToRoster(model.Principal{Role: model.RoleDriver, DriverID: &driverID}, roster))
	assert.False(t, assignedToRoster(model.Principal{Role: model.RoleDriver, DriverID: &otherID}, roster))
	assert.False(t, assignedToRoster(model.Principal{Role: model.RoleDriver}, roster))
	assert.False(t, assignedToRoster(model.Principal{Role: model.RoleDriver, DriverID: &driverID}, &model.Roster{}))
}

// guardRoster is an active roster covering March 2025 with a 09:00 slot,
// matching the fixed clock used by the guard tests.
func guardRoster() *model.Roster {
	r := activeRoster()
	r.IsActive = true
	return r
}

func TestStartRideGuard(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	tolerance := 2 * time.Hour

	principalFor := func(r *model.Roster) model.Principal {
		return model.Principal{Role: model.RoleDriver, DriverID: r.DriverID}
	}

	t.Run("someone else's roster", func(t *testing.T) {
		roster := guardRoster()
		otherID := uuid.New()
		principal := model.Principal{Role: model.RoleDriver, DriverID: &otherID}

		err := startRideGuard(principal, roster, nil, 0, now, tolerance)
		require.ErrorIs(t, err, ErrNotAssigned)
	})

	t.Run("no vehicle assigned", func(t *testing.T) {
		roster := guardRoster()
		principal := principalFor(roster)
		roster.VehicleID = nil

		err := startRideGuard(principal, roster, nil, 0, now, tolerance)
		require.ErrorIs(t, err, ErrVehicleNotAssigned)
	})

	t.Run("inactive roster", func(t *testing.T) {
		roster := guardRoster()
		roster.IsActive = false

		err := startRideGuard(principalFor(roster), roster, nil, 0, now, tolerance)
		require.ErrorIs(t, err, ErrInvalidAction)
	})

	t.Run("outside date range", func(t *testing.T) {
		roster := guardRoster()
		after := time.Date(2025, 4, 10, 10, 0, 0, 0, time.UTC)

		err := startRideGuard(principalFor(roster), roster, nil, 0, after, tolerance)
		require.ErrorIs(t, err, ErrInvalidAction)
	})

	t.Run("today is a holiday", func(t *testing.T) {
		roster := guardRoster()
		roster.Holiday = append(roster.Holiday, "2025-03-10")

		err := startRideGuard(principalFor(roster), roster, nil, 0, now, tolerance)
		require.ErrorIs(t, err, ErrInvalidAction)
	})

	t.Run("too early for the slot", func(t *testing.T) {
		roster := guardRoster()
		early := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)

		err := startRideGuard(principalFor(roster), roster, nil, 0, early, tolerance)
		require.ErrorIs(t, err, ErrCannotStartYet)
	})

	t.Run("previous trip still open", func(t *testing.T) {
		roster := guardRoster()
		open := &model.Trip{ID: uuid.New(), Status: model.TripStatusCheckIn, IsActive: true}

		err := startRideGuard(principalFor(roster), roster, open, 0, now, tolerance)
		require.ErrorIs(t, err, ErrPreviousTripActive)
	})

	t.Run("second start after ending today's ride", func(t *testing.T) {
		roster := guardRoster()

		err := startRideGuard(principalFor(roster), roster, nil, 1, now, tolerance)
		require.ErrorIs(t, err, ErrAlreadyCompletedToday)
	})

	t.Run("all guards pass", func(t *testing.T) {
		roster := guardRoster()

		err := startRideGuard(principalFor(roster), roster, nil, 0, now, tolerance)
		require.NoError(t, err)
	})
}
