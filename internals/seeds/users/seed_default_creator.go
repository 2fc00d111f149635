package users

import (
	"log"
	"strings"

	"gorm.io/gorm"

	"skillshots_backend/internals/configs"
	"skillshots_backend/internals/constants"
	authHelper "skillshots_backend/internals/features/users/auth/helper"
	"skillshots_backend/internals/features/users/user/model"
)

// EnsureDefaultCreator guarantees the app always has at least one
// working Creator account. It runs on every startup: a missing account
// is recreated, and an existing one that lost the Creator role is
// promoted back. Without this, deleting the last Creator would lock
// everyone out of authoring.
func EnsureDefaultCreator(db *gorm.DB, cfg configs.BootstrapConfig) error {
	email := strings.ToLower(strings.TrimSpace(cfg.DefaultCreatorEmail))

	var existing model.UserModel
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if existing.Role != constants.RoleCreator {
			log.Printf("🛠  Restoring Creator role on %s", email)
			return db.Model(&existing).Update("role", constants.RoleCreator).Error
		}
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := authHelper.HashPassword(cfg.DefaultCreatorPassword)
	if err != nil {
		return err
	}
	creator := model.UserModel{
		FullName:     cfg.DefaultCreatorName,
		Email:        email,
		PasswordHash: hash,
		Role:         constants.RoleCreator,
	}
	if err := db.Create(&creator).Error; err != nil {
		return err
	}
	log.Printf("🌱 Seeded default creator %s", email)
	return nil
}
