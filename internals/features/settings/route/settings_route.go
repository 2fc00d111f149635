package route

import (
	"skillshots_backend/internals/constants"
	controller "skillshots_backend/internals/features/settings/controller"
	authMiddleware "skillshots_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SettingsRoutes(api fiber.Router, db *gorm.DB) {
	settingsController := controller.NewSettingsController(db)

	settings := api.Group("/settings")
	settings.Get("/", settingsController.Get)
	settings.Put("/categories",
		authMiddleware.OnlyRoles(
			constants.RoleErrorCreator("update app settings"),
			constants.CreatorOnly...,
		),
		settingsController.UpdateCategories,
	)
}
