package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "ACTIVE"
	ClientStatusInactive ClientStatus = "INACTIVE"
	ClientStatusOnHold   ClientStatus = "ON_HOLD"
)

type Client struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name          string       `gorm:"type:varchar(50);not null" json:"name"`
	GST           string       `gorm:"type:varchar(15)" json:"gst"`
	Address       string       `gorm:"type:varchar(200)" json:"address"`
	City          string       `gorm:"type:varchar(50)" json:"city"`
	State         string       `gorm:"type:varchar(50)" json:"state"`
	ContactPerson string       `gorm:"type:varchar(50)" json:"contact_person"`
	ContactNumber int64        `json:"contact_number"`
	Status        ClientStatus `gorm:"type:client_status;not null;default:ACTIVE" json:"status"`
	IsActive      bool         `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type ClientStore struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ClientID      uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Name          string    `gorm:"type:varchar(50);not null" json:"name"`
	Lat           float64   `json:"lat"`
	Long          float64   `json:"long"`
	Address       string    `gorm:"type:varchar(100)" json:"address"`
	City          string    `gorm:"type:varchar(50)" json:"city"`
	Locality      string    `gorm:"type:varchar(50)" json:"locality"`
	State         string    `gorm:"type:varchar(50)" json:"state"`
	ContactNumber int64     `json:"contact_number"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ClientStore) TableName() string {
	return "client_stores"
}

func (s *ClientStore) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Pricing maps (roster type, vehicle model, client, stores) to a price.
// The most recently created active row wins.
type Pricing struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Title        string        `gorm:"type:varchar(50);not null" json:"title"`
	Description  string        `gorm:"type:varchar(250)" json:"description"`
	ClientID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"client_id"`
	ClientStores []ClientStore `gorm:"many2many:pricing_client_stores" json:"client_stores,omitempty"`
	Type         RosterType    `gorm:"type:roster_type;not null;default:LOGISTICS_FIXED" json:"type"`
	VehicleModel string        `gorm:"type:varchar(50);not null" json:"vehicle_model"`
	Price        float64       `gorm:"not null" json:"price"`
	IsActive     bool          `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Pricing) TableName() string {
	return "pricing_configurations"
}

func (p *Pricing) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
