package route

import (
	controller "skillshots_backend/internals/features/progress/controller"
	"skillshots_backend/internals/features/progress/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ProgressRoutes(api fiber.Router, db *gorm.DB, svc *service.ProgressService) {
	progressController := controller.NewProgressController(db, svc)

	progress := api.Group("/progress")
	progress.Get("/me", progressController.GetMine)
	progress.Post("/topics/:id/complete", progressController.MarkComplete)
}
