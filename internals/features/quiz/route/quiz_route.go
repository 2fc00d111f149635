package route

import (
	genaiService "skillshots_backend/internals/features/genai/service"
	controller "skillshots_backend/internals/features/quiz/controller"
	"skillshots_backend/internals/features/quiz/service"
	rateLimiter "skillshots_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func QuizRoutes(api fiber.Router, db *gorm.DB, genai *genaiService.Service, attempts *service.AttemptStore) {
	quizController := controller.NewQuizController(db, genai, attempts)

	// Generation hits the AI boundary, so it gets the tighter limiter.
	api.Post("/topics/:id/quiz", rateLimiter.GenAIRateLimiter(), quizController.Generate)
	api.Post("/topics/:id/quiz/answer", quizController.Answer)
	api.Get("/topics/:id/quiz/result", quizController.Result)
	api.Delete("/topics/:id/quiz", quizController.Discard)
}
