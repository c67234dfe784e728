package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ServiceStatus string

const (
	ServiceStatusOpen       ServiceStatus = "OPEN"
	ServiceStatusInProgress ServiceStatus = "IN_PROGRESS"
	ServiceStatusOnHold     ServiceStatus = "ON_HOLD"
	ServiceStatusCompleted  ServiceStatus = "COMPLETED"
)

type ServiceIssueType string

const (
	ServiceIssueOther      ServiceIssueType = "OTHER_ISSUE"
	ServiceIssueElectrical ServiceIssueType = "ELECTRICAL"
	ServiceIssueMechanical ServiceIssueType = "MECHANICAL"
)

type ServicePriority string

const (
	ServicePriorityMedium ServicePriority = "MEDIUM"
	ServicePriorityHigh   ServicePriority = "HIGH"
)

// ServiceTicket tracks a vehicle through the servicing workflow. An open
// ticket takes precedence over roster state when the vehicle status is
// projected.
type ServiceTicket struct {
	ID           uuid.UUID                  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VehicleID    uuid.UUID                  `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	Status       ServiceStatus              `gorm:"type:service_status;not null;default:OPEN" json:"status"`
	IssueType    ServiceIssueType           `gorm:"type:service_issue_type;not null" json:"issue_type"`
	IssueSubtype string                     `gorm:"type:varchar(50)" json:"issue_subtype"`
	Address      string                     `gorm:"type:varchar(250)" json:"address"`
	Latitude     *float64                   `json:"latitude"`
	Longitude    *float64                   `json:"longitude"`
	Description  string                     `gorm:"type:varchar(250)" json:"description"`
	Remarks      *string                    `gorm:"type:varchar(250)" json:"remarks"`
	Priority     ServicePriority            `gorm:"type:service_priority;not null;default:MEDIUM" json:"priority"`
	Photos       datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"photos"`
	ReporteeID   *uuid.UUID                 `gorm:"type:uuid" json:"reportee_id"`
	CreatedByID  *uuid.UUID                 `gorm:"type:uuid" json:"created_by_id"`
	IsActive     bool                       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time                  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time                  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ServiceTicket) TableName() string {
	return "service_tickets"
}

func (s *ServiceTicket) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Open reports whether the ticket still holds the vehicle.
func (s *ServiceTicket) Open() bool {
	return s.Status != ServiceStatusCompleted
}

type ServiceLog struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ServiceID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"service_id"`
	OldStatus   ServiceStatus `gorm:"type:service_status;not null" json:"old_status"`
	NewStatus   ServiceStatus `gorm:"type:service_status;not null" json:"new_status"`
	Remarks     *string       `gorm:"type:varchar(250)" json:"remarks"`
	CreatedByID *uuid.UUID    `gorm:"type:uuid" json:"created_by_id"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (ServiceLog) TableName() string {
	return "service_logs"
}

func (l *ServiceLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
