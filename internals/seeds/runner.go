package seeds

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"skillshots_backend/internals/configs"
	settingsService "skillshots_backend/internals/features/settings/service"
	userModel "skillshots_backend/internals/features/users/user/model"
	groupSeeds "skillshots_backend/internals/seeds/groups"
	topicSeeds "skillshots_backend/internals/seeds/topics"
	userSeeds "skillshots_backend/internals/seeds/users"
)

// RunAllSeeds brings a database to a usable state and repairs the
// pieces the app cannot run without. Every step is idempotent, so it
// runs on each startup. Order matters: groups must exist before
// settings can pin the everyone group, and the everyone group plus the
// default creator must exist before sample topics can be shared.
func RunAllSeeds(db *gorm.DB, cfg configs.BootstrapConfig) error {
	if err := groupSeeds.SeedDefaultGroups(db, cfg.EveryoneGroupLabel); err != nil {
		return fmt.Errorf("seed groups: %w", err)
	}

	settings, err := settingsService.EnsureSettings(db, cfg)
	if err != nil {
		return fmt.Errorf("ensure settings: %w", err)
	}

	if err := userSeeds.EnsureDefaultCreator(db, cfg); err != nil {
		return fmt.Errorf("ensure default creator: %w", err)
	}

	var creator userModel.UserModel
	if err := db.Where("email = ?", strings.ToLower(cfg.DefaultCreatorEmail)).
		First(&creator).Error; err != nil {
		return fmt.Errorf("load default creator: %w", err)
	}

	if err := topicSeeds.SeedSampleTopics(db, creator.ID, settings.EveryoneGroupID); err != nil {
		return fmt.Errorf("seed sample topics: %w", err)
	}
	return nil
}
