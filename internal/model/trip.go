package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TripStatus string

const (
	TripStatusRideStarted   TripStatus = "RIDE_STARTED"
	TripStatusCheckIn       TripStatus = "CHECK_IN"
	TripStatusCheckOut      TripStatus = "CHECK_OUT"
	TripStatusRideCompleted TripStatus = "RIDE_COMPLETED"
)

// Trip is one day's execution of a roster, driven by the assigned driver
// through start-ride, check-in, check-out and end-ride. IsActive stays
// true until end-ride.
type Trip struct {
	ID             uuid.UUID                  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	RosterID       uuid.UUID                  `gorm:"type:uuid;not null;index" json:"roster_id"`
	Status         TripStatus                 `gorm:"type:trip_status;not null;default:RIDE_STARTED" json:"status"`
	CheckinTime    *time.Time                 `json:"checkin_time"`
	CheckoutTime   *time.Time                 `json:"checkout_time"`
	EndedAt        *time.Time                 `json:"ended_at"`
	StartKm        *float64                   `json:"start_km"`
	EndKm          *float64                   `json:"end_km"`
	InLatitude     *float64                   `json:"in_latitude"`
	InLongitude    *float64                   `json:"in_longitude"`
	OutLatitude    *float64                   `json:"out_latitude"`
	OutLongitude   *float64                   `json:"out_longitude"`
	TripSheetPhoto *string                    `gorm:"type:text" json:"trip_sheet_photo"`
	VehiclePhotos  datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"vehicle_photos"`
	IsActive       bool                       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time                  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time                  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Trip) TableName() string {
	return "trips"
}

func (t *Trip) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
