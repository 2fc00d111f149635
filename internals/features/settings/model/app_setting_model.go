package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// AppSettingModel is the single mutable settings row: the category
// allow-list Creators maintain, and the everyone-group id pinned at
// bootstrap so "share with all" never depends on a display name.
type AppSettingModel struct {
	AppSettingID         uint           `gorm:"column:app_setting_id;primaryKey" json:"app_setting_id"`
	AppSettingCategories pq.StringArray `gorm:"column:app_setting_categories;type:text[]" json:"categories"`
	EveryoneGroupID      *uuid.UUID     `gorm:"column:app_setting_everyone_group_id;type:uuid" json:"everyone_group_id"`
	AppSettingExtras     datatypes.JSON `gorm:"column:app_setting_extras" json:"extras,omitempty"`
	UpdatedAt            time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (AppSettingModel) TableName() string {
	return "app_settings"
}

func (s *AppSettingModel) HasCategory(category string) bool {
	for _, c := range s.AppSettingCategories {
		if c == category {
			return true
		}
	}
	return false
}
