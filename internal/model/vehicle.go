package model

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleStatus string

const (
	VehicleStatusForDeployment    VehicleStatus = "FOR_DEPLOYMENT"
	VehicleStatusOnGround         VehicleStatus = "ON_GROUND"
	VehicleStatusUnderMaintenance VehicleStatus = "UNDER_MAINTENANCE"
	VehicleStatusUnderServicing   VehicleStatus = "UNDER_SERVICING"
)

type VehicleSpeed string

const (
	VehicleSpeedLow  VehicleSpeed = "LOW"
	VehicleSpeedHigh VehicleSpeed = "HIGH"
)

type VehicleType string

const (
	VehicleTypeL0 VehicleType = "L0"
	VehicleTypeL1 VehicleType = "L1"
	VehicleTypeL2 VehicleType = "L2"
	VehicleTypeL3 VehicleType = "L3"
	VehicleTypeL5 VehicleType = "L5"
)

var (
	lowSpeedRegistration  = regexp.MustCompile(`^PI [1-9][0-9]{4}$`)
	highSpeedRegistration = regexp.MustCompile(`^([A-Z]{2}\s\d{2}\s[A-Z]{1,2}\s\d{1,4})?([A-Z]{3}\s\d{1,4})?$`)
)

type Vehicle struct {
	ID                   uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	RegistrationNumber   string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"registration_number"`
	Model                string        `gorm:"type:varchar(50);not null" json:"model"`
	Type                 VehicleType   `gorm:"type:vehicle_type;not null;default:L1" json:"type"`
	Status               VehicleStatus `gorm:"type:vehicle_status;not null;default:FOR_DEPLOYMENT" json:"status"`
	Speed                VehicleSpeed  `gorm:"type:vehicle_speed;not null" json:"speed"`
	StationID            uuid.UUID     `gorm:"type:uuid;not null;index" json:"station_id"`
	ChassisNumber        string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"chassis_number"`
	EngineNumber         *string       `gorm:"type:varchar(50)" json:"engine_number"`
	RCDocument           *string       `gorm:"type:text" json:"rc_document"`
	InsuranceDocument    *string       `gorm:"type:text" json:"insurance_document"`
	InsuranceStartDate   *time.Time    `gorm:"type:date" json:"insurance_start_date"`
	InsuranceRenewalDate *time.Time    `gorm:"type:date" json:"insurance_renewal_date"`
	IsBackup             bool          `gorm:"not null;default:false" json:"is_backup"`
	IsActive             bool          `gorm:"not null;default:true" json:"is_active"`
	UpdatedByID          *uuid.UUID    `gorm:"type:uuid" json:"updated_by_id"`
	CreatedAt            time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// ValidRegistration reports whether a registration number matches the
// plate format required for the given speed class.
func ValidRegistration(registration string, speed VehicleSpeed) bool {
	switch speed {
	case VehicleSpeedLow:
		return lowSpeedRegistration.MatchString(registration)
	case VehicleSpeedHigh:
		return registration != "" && highSpeedRegistration.MatchString(registration)
	}
	return false
}

// UnderService reports whether the vehicle is held by the servicing
// workflow and must not be attached to a roster.
func (v *Vehicle) UnderService() bool {
	return v.Status == VehicleStatusUnderMaintenance || v.Status == VehicleStatusUnderServicing
}
