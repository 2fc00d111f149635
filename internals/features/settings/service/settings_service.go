package service

import (
	"errors"
	"log"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"skillshots_backend/internals/configs"
	groupModel "skillshots_backend/internals/features/groups/model"
	"skillshots_backend/internals/features/settings/model"
)

// DefaultCategories is the category allow-list a fresh settings row
// starts with. It must cover every seeded sample topic, or re-saving
// starter content would fail category validation.
var DefaultCategories = pq.StringArray{
	"General",
	"Onboarding",
	"Health & Safety",
	"Product Training",
	"Soft Skills",
	"Compliance",
	"Engineering",
}

// EnsureSettings loads the singleton settings row, creating it with
// defaults when absent. The everyone-group id is resolved from the
// configured label once and pinned; authoring never matches on the
// group name after this point.
func EnsureSettings(db *gorm.DB, cfg configs.BootstrapConfig) (*model.AppSettingModel, error) {
	var settings model.AppSettingModel
	err := db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = model.AppSettingModel{
			AppSettingCategories: DefaultCategories,
		}
		if err := db.Create(&settings).Error; err != nil {
			return nil, err
		}
		log.Println("[SEED] app settings created with default categories")
	} else if err != nil {
		return nil, err
	}

	if settings.EveryoneGroupID == nil {
		var group groupModel.GroupModel
		err := db.Where("group_name = ?", cfg.EveryoneGroupLabel).First(&group).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] everyone group %q not found; 'share with all' saves will be rejected until it exists", cfg.EveryoneGroupLabel)
			return &settings, nil
		}
		if err != nil {
			return nil, err
		}
		settings.EveryoneGroupID = &group.GroupID
		if err := db.Save(&settings).Error; err != nil {
			return nil, err
		}
		log.Printf("[SEED] everyone group pinned: %s (%s)", group.GroupName, group.GroupID)
	}
	return &settings, nil
}

// Load fetches the current settings row.
func Load(db *gorm.DB) (*model.AppSettingModel, error) {
	var settings model.AppSettingModel
	if err := db.First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}
