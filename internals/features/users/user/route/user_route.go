package route

import (
	"skillshots_backend/internals/constants"
	controller "skillshots_backend/internals/features/users/user/controller"
	authMiddleware "skillshots_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserRoutes mounts account administration. Everything here is
// Creator-only.
func UserRoutes(api fiber.Router, db *gorm.DB) {
	userController := controller.NewUserController(db)

	users := api.Group("/users",
		authMiddleware.OnlyRoles(
			constants.RoleErrorCreator("manage user accounts"),
			constants.CreatorOnly...,
		),
	)

	users.Get("/", userController.GetAll)
	users.Post("/", userController.Create)
	users.Put("/:id", userController.Update)
	users.Delete("/:id", userController.Delete)
}
