package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fleet-service/internal/model"
)

func TestComputeVehicleStatus(t *testing.T) {
	open := model.ServiceStatusOpen
	inProgress := model.ServiceStatusInProgress
	onHold := model.ServiceStatusOnHold

	tests := []struct {
		name          string
		ticket        *model.ServiceStatus
		activeRosters int64
		want          model.VehicleStatus
	}{
		{"no ticket no rosters", nil, 0, model.VehicleStatusForDeployment},
		{"no ticket with roster", nil, 1, model.VehicleStatusOnGround},
		{"no ticket many rosters", nil, 3, model.VehicleStatusOnGround},
		{"open ticket wins over rosters", &open, 2, model.VehicleStatusUnderMaintenance},
		{"in progress ticket", &inProgress, 0, model.VehicleStatusUnderServicing},
		{"on hold ticket", &onHold, 1, model.VehicleStatusUnderServicing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeVehicleStatus(tt.ticket, tt.activeRosters))
		})
	}
}
