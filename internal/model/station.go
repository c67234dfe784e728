package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Station struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	Code      string    `gorm:"type:varchar(7);uniqueIndex;not null" json:"code"`
	City      string    `gorm:"type:varchar(50);not null" json:"city"`
	State     string    `gorm:"type:varchar(50);not null" json:"state"`
	Address   string    `gorm:"type:varchar(100);not null" json:"address"`
	Area      string    `gorm:"type:varchar(50)" json:"area"`
	Pincode   int       `gorm:"not null" json:"pincode"`
	Lat       float64   `json:"lat"`
	Long      float64   `json:"long"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Station) TableName() string {
	return "stations"
}

func (s *Station) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
