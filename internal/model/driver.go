package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OnboardingStatus string

const (
	OnboardingStatusRegistered    OnboardingStatus = "REGISTERED"
	OnboardingStatusUnderApproval OnboardingStatus = "UNDER_APPROVAL"
	OnboardingStatusApproved      OnboardingStatus = "APPROVED"
	OnboardingStatusRejected      OnboardingStatus = "REJECTED"
)

// Onboarding is the KYC record captured before a driver is activated.
type Onboarding struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	FullName            string           `gorm:"type:varchar(50);not null" json:"full_name"`
	DOB                 time.Time        `gorm:"type:date;not null" json:"dob"`
	MobileNo            int64            `gorm:"uniqueIndex;not null" json:"mobile_no"`
	City                string           `gorm:"type:varchar(50)" json:"city"`
	State               string           `gorm:"type:varchar(50)" json:"state"`
	Photo               *string          `gorm:"type:text" json:"photo"`
	DriverLicenseNumber *string          `gorm:"type:varchar(50)" json:"driver_license_number"`
	HasDriverLicense    bool             `gorm:"not null" json:"has_driver_license"`
	Status              OnboardingStatus `gorm:"type:onboarding_status;not null;default:REGISTERED" json:"status"`
	Remarks             *string          `gorm:"type:varchar(250)" json:"remarks"`
	IsActive            bool             `gorm:"not null;default:true" json:"is_active"`
	CreatedAt           time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Onboarding) TableName() string {
	return "onboardings"
}

func (o *Onboarding) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type Driver struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID       *uuid.UUID  `gorm:"type:uuid" json:"user_id"`
	OnboardingID *uuid.UUID  `gorm:"type:uuid;uniqueIndex" json:"onboarding_id"`
	Onboarding   *Onboarding `gorm:"foreignKey:OnboardingID" json:"onboarding,omitempty"`
	DOJ          time.Time   `gorm:"type:date;not null" json:"doj"`
	DOL          *time.Time  `gorm:"type:date" json:"dol"`
	VendorID     *uuid.UUID  `gorm:"type:uuid" json:"vendor_id"`
	Remarks      *string     `gorm:"type:varchar(250)" json:"remarks"`
	AppVersion   *string     `gorm:"type:varchar(8)" json:"app_version"`
	IsActive     bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Driver) TableName() string {
	return "drivers"
}

func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
