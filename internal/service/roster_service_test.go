package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-service/internal/model"
)

func TestApplyAttritionDetachesDriverAndVehicle(t *testing.T) {
	roster := activeRoster()
	wantDriver := *roster.DriverID
	wantVehicle := *roster.VehicleID

	driverID, vehicleID := applyAttrition(roster)

	require.NotNil(t, driverID)
	require.NotNil(t, vehicleID)
	assert.Equal(t, wantDriver, *driverID)
	assert.Equal(t, wantVehicle, *vehicleID)

	assert.Nil(t, roster.DriverID)
	assert.Nil(t, roster.VehicleID)
	assert.Equal(t, model.RosterStatusAttrition, roster.Status)
	assert.False(t, roster.IsActive)
}

func TestApplyAttritionWithNothingAssigned(t *testing.T) {
	roster := activeRoster()
	roster.DriverID = nil
	roster.VehicleID = nil

	driverID, vehicleID := applyAttrition(roster)

	assert.Nil(t, driverID)
	assert.Nil(t, vehicleID)
	assert.Equal(t, model.RosterStatusAttrition, roster.Status)
	assert.False(t, roster.IsActive)
}

// An inactive roster or one without a vehicle loses its cost without
// touching the pricing table, so a status change clears the cost the
// same way a save does.
func TestResolvePricingClearsCostWhenInactive(t *testing.T) {
	svc := &RosterService{}
	cost := 1200.0

	roster := activeRoster()
	roster.IsActive = false
	roster.Cost = &cost

	require.NoError(t, svc.resolvePricing(context.Background(), nil, roster, availableVehicle()))
	assert.Nil(t, roster.Cost)
}

func TestResolvePricingClearsCostWithoutVehicle(t *testing.T) {
	svc := &RosterService{}
	cost := 1200.0

	roster := activeRoster()
	roster.IsActive = true
	roster.Cost = &cost

	require.NoError(t, svc.resolvePricing(context.Background(), nil, roster, nil))
	assert.Nil(t, roster.Cost)
}
