package route

import (
	"skillshots_backend/internals/constants"
	controller "skillshots_backend/internals/features/groups/controller"
	authMiddleware "skillshots_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GroupRoutes mounts group management. Listing is open to every
// signed-in user (pickers in the sharing UI need it); changes are
// Creator-only.
func GroupRoutes(api fiber.Router, db *gorm.DB) {
	groupController := controller.NewGroupController(db)

	groups := api.Group("/groups")
	groups.Get("/", groupController.GetAll)

	creatorOnly := authMiddleware.OnlyRoles(
		constants.RoleErrorCreator("manage groups"),
		constants.CreatorOnly...,
	)
	groups.Post("/", creatorOnly, groupController.Create)
	groups.Delete("/:id", creatorOnly, groupController.Delete)
}
