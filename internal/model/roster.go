package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RosterStatus string

const (
	RosterStatusInActive  RosterStatus = "IN_ACTIVE"
	RosterStatusActive    RosterStatus = "ACTIVE"
	RosterStatusAttrition RosterStatus = "ATTRITION"
	RosterStatusService   RosterStatus = "SERVICE"
)

type RosterType string

const (
	RosterTypeRental            RosterType = "RENTAL"
	RosterTypeLogisticsFixed    RosterType = "LOGISTICS_FIXED"
	RosterTypeLogisticsTrip     RosterType = "LOGISTICS_TRIP"
	RosterTypeLogisticsDelivery RosterType = "LOGISTICS_DELIVERY"
)

// Roster is a recurring assignment of a driver and vehicle to a client
// store: a time-of-day slot repeated over a date range. Slot times are
// stored as "15:04:05" strings; holiday dates as "2006-01-02" strings.
type Roster struct {
	ID                   uuid.UUID                  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ClientID             uuid.UUID                  `gorm:"type:uuid;not null;index" json:"client_id"`
	ClientStoreID        uuid.UUID                  `gorm:"type:uuid;not null;index" json:"client_store_id"`
	Type                 RosterType                 `gorm:"type:roster_type;not null;default:LOGISTICS_FIXED" json:"type"`
	Status               RosterStatus               `gorm:"type:roster_status;not null;default:ACTIVE" json:"status"`
	City                 string                     `gorm:"type:varchar(50)" json:"city"`
	DriverID             *uuid.UUID                 `gorm:"type:uuid;index" json:"driver_id"`
	VehicleID            *uuid.UUID                 `gorm:"type:uuid;index" json:"vehicle_id"`
	StartDate            time.Time                  `gorm:"type:date;not null" json:"start_date"`
	EndDate              time.Time                  `gorm:"type:date;not null" json:"end_date"`
	Holiday              datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"holiday"`
	SlotStartTime        string                     `gorm:"type:varchar(8);not null" json:"slot_start_time"`
	SlotEndTime          string                     `gorm:"type:varchar(8);not null" json:"slot_end_time"`
	Lat                  float64                    `json:"lat"`
	Long                 float64                    `json:"long"`
	Address              string                     `gorm:"type:varchar(200)" json:"address"`
	DestinationStationID uuid.UUID                  `gorm:"type:uuid;not null" json:"destination_station_id"`
	Remarks              *string                    `gorm:"type:varchar(250)" json:"remarks"`
	Cost                 *float64                   `json:"cost"`
	CreatedByID          *uuid.UUID                 `gorm:"type:uuid" json:"created_by_id"`
	IsActive             bool                       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt            time.Time                  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time                  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Roster) TableName() string {
	return "rosters"
}

func (r *Roster) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// WithinDates reports whether the roster's date range covers the given day.
func (r *Roster) WithinDates(day time.Time) bool {
	d := day.Truncate(24 * time.Hour)
	return !d.Before(r.StartDate) && !d.After(r.EndDate)
}

// RosterDriverLog is an append-only audit row written whenever the driver
// reference changes on an existing roster.
type RosterDriverLog struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	RosterID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"roster_id"`
	OldDriverID *uuid.UUID   `gorm:"type:uuid" json:"old_driver_id"`
	NewDriverID *uuid.UUID   `gorm:"type:uuid" json:"new_driver_id"`
	Status      RosterStatus `gorm:"type:roster_status;not null" json:"status"`
	CreatedByID *uuid.UUID   `gorm:"type:uuid" json:"created_by_id"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (RosterDriverLog) TableName() string {
	return "roster_driver_logs"
}

func (l *RosterDriverLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// RosterVehicleLog is the vehicle counterpart of RosterDriverLog.
type RosterVehicleLog struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	RosterID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"roster_id"`
	OldVehicleID *uuid.UUID   `gorm:"type:uuid" json:"old_vehicle_id"`
	NewVehicleID *uuid.UUID   `gorm:"type:uuid" json:"new_vehicle_id"`
	Status       RosterStatus `gorm:"type:roster_status;not null" json:"status"`
	CreatedByID  *uuid.UUID   `gorm:"type:uuid" json:"created_by_id"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (RosterVehicleLog) TableName() string {
	return "roster_vehicle_logs"
}

func (l *RosterVehicleLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// RosterStatusLog records operator status transitions with their remarks.
type RosterStatusLog struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	RosterID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"roster_id"`
	OldStatus   RosterStatus `gorm:"type:roster_status;not null" json:"old_status"`
	NewStatus   RosterStatus `gorm:"type:roster_status;not null" json:"new_status"`
	Remarks     *string      `gorm:"type:varchar(250)" json:"remarks"`
	CreatedByID *uuid.UUID   `gorm:"type:uuid" json:"created_by_id"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (RosterStatusLog) TableName() string {
	return "roster_status_logs"
}

func (l *RosterStatusLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
