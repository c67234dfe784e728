package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"fleet-service/internal/model"
)

// ConfigRepository reads the runtime key-value knobs. Values are JSON;
// missing keys fall back to the caller's default.
type ConfigRepository struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

func (r *ConfigRepository) GetValue(ctx context.Context, key string) (json.RawMessage, error) {
	var entry model.ConfigEntry
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return json.RawMessage(entry.Value), nil
}

// GetTimeDelta returns the roster turnaround buffer. The stored value is
// a number of hours; absent or malformed values mean no buffer.
func (r *ConfigRepository) GetTimeDelta(ctx context.Context) (time.Duration, error) {
	raw, err := r.GetValue(ctx, model.ConfigKeyRosterTimedelta)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, nil
	}
	var hours float64
	if err := json.Unmarshal(raw, &hours); err != nil {
		return 0, nil
	}
	return time.Duration(hours * float64(time.Hour)), nil
}

// GetMinutes reads an integer minute value, falling back to def when the
// key is absent or not a number.
func (r *ConfigRepository) GetMinutes(ctx context.Context, key string, def int) (int, error) {
	raw, err := r.GetValue(ctx, key)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return def, nil
	}
	var minutes int
	if err := json.Unmarshal(raw, &minutes); err != nil {
		return def, nil
	}
	return minutes, nil
}
