package route

import (
	"skillshots_backend/internals/constants"
	controller "skillshots_backend/internals/features/genai/controller"
	"skillshots_backend/internals/features/genai/service"
	rateLimiter "skillshots_backend/internals/middlewares"
	authMiddleware "skillshots_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AIRoutes(api fiber.Router, db *gorm.DB, genai *service.Service) {
	aiController := controller.NewAIController(db, genai)

	ai := api.Group("/ai", rateLimiter.GenAIRateLimiter())
	ai.Post("/chat", aiController.Chat)
	ai.Post("/video-summary", aiController.VideoSummary)
	ai.Post("/speech", aiController.Speech)
	ai.Post("/course-draft",
		authMiddleware.OnlyRoles(
			constants.RoleErrorCreator("generate course drafts"),
			constants.CreatorOnly...,
		),
		aiController.CourseDraft,
	)

	// Grounded Q&A lives under the topic it reads from.
	api.Post("/topics/:id/ask", rateLimiter.GenAIRateLimiter(), aiController.AskQuestion)
}
