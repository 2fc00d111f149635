package groups

import (
	"log"

	"gorm.io/gorm"

	"skillshots_backend/internals/features/groups/model"
)

// defaultDepartments seeds the group picker on a fresh database. The
// everyone-group label is passed in separately because its id gets
// pinned in app settings afterwards.
var defaultDepartments = []string{
	"Engineering",
	"Sales",
	"Human Resources",
	"Operations",
}

func SeedDefaultGroups(db *gorm.DB, everyoneLabel string) error {
	names := append([]string{everyoneLabel}, defaultDepartments...)
	for _, name := range names {
		var existing model.GroupModel
		err := db.Where("group_name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&model.GroupModel{GroupName: name}).Error; err != nil {
			return err
		}
		log.Printf("🌱 Seeded group %q", name)
	}
	return nil
}
