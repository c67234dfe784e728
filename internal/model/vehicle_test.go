package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRegistrationLowSpeed(t *testing.T) {
	assert.True(t, ValidRegistration("PI 12345", VehicleSpeedLow))
	assert.True(t, ValidRegistration("PI 99999", VehicleSpeedLow))

	assert.False(t, ValidRegistration("PI 01234", VehicleSpeedLow), "leading zero")
	assert.False(t, ValidRegistration("PI 1234", VehicleSpeedLow), "too short")
	assert.False(t, ValidRegistration("PI 123456", VehicleSpeedLow), "too long")
	assert.False(t, ValidRegistration("PX 12345", VehicleSpeedLow), "wrong prefix")
	assert.False(t, ValidRegistration("", VehicleSpeedLow))
}

func TestValidRegistrationHighSpeed(t *testing.T) {
	assert.True(t, ValidRegistration("KA 05 AB 1234", VehicleSpeedHigh))
	assert.True(t, ValidRegistration("DL 01 C 1", VehicleSpeedHigh))
	assert.True(t, ValidRegistration("ABC 1234", VehicleSpeedHigh))

	assert.False(t, ValidRegistration("", VehicleSpeedHigh))
	assert.False(t, ValidRegistration("ka 05 ab 1234", VehicleSpeedHigh), "lowercase")
}

func TestVehicleUnderService(t *testing.T) {
	v := Vehicle{Status: VehicleStatusUnderMaintenance}
	assert.True(t, v.UnderService())

	v.Status = VehicleStatusUnderServicing
	assert.True(t, v.UnderService())

	v.Status = VehicleStatusOnGround
	assert.False(t, v.UnderService())

	v.Status = VehicleStatusForDeployment
	assert.False(t, v.UnderService())
}
