package route

import (
	"skillshots_backend/internals/constants"
	progressService "skillshots_backend/internals/features/progress/service"
	controller "skillshots_backend/internals/features/topics/controller"
	"skillshots_backend/internals/features/topics/service"
	authMiddleware "skillshots_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TopicRoutes mounts the catalog. Reads respect per-user visibility
// inside the handlers; authoring endpoints are Creator-only.
func TopicRoutes(api fiber.Router, db *gorm.DB, progress *progressService.ProgressService) {
	topicController := controller.NewTopicController(db, service.NewAuthoringService(db), progress)

	topics := api.Group("/topics")
	topics.Get("/dashboard", topicController.Dashboard)
	topics.Get("/:id", topicController.GetByID)

	creatorOnly := authMiddleware.OnlyRoles(
		constants.RoleErrorCreator("author topics"),
		constants.CreatorOnly...,
	)
	topics.Get("/", creatorOnly, topicController.GetAllForCreator)
	topics.Post("/", creatorOnly, topicController.Create)
	topics.Put("/:id", creatorOnly, topicController.Update)
	topics.Delete("/:id", creatorOnly, topicController.Delete)
	topics.Post("/cover", creatorOnly, topicController.UploadCover)
}
