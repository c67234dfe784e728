package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ConfigEntry is a runtime key-value knob editable without a deploy,
// e.g. roster_timedelta (buffer hours between slots) and
// roster_start_ride (minutes a ride may start before its slot).
type ConfigEntry struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Key       string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null" json:"value"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ConfigEntry) TableName() string {
	return "config_entries"
}

func (c *ConfigEntry) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

const (
	ConfigKeyRosterTimedelta = "roster_timedelta"
	ConfigKeyRosterStartRide = "roster_start_ride"
)
