// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	genaiService "skillshots_backend/internals/features/genai/service"
	progressService "skillshots_backend/internals/features/progress/service"
	quizService "skillshots_backend/internals/features/quiz/service"

	genaiRoute "skillshots_backend/internals/features/genai/route"
	groupRoute "skillshots_backend/internals/features/groups/route"
	leaderboardRoute "skillshots_backend/internals/features/leaderboard/route"
	progressRoute "skillshots_backend/internals/features/progress/route"
	quizRoute "skillshots_backend/internals/features/quiz/route"
	settingsRoute "skillshots_backend/internals/features/settings/route"
	topicRoute "skillshots_backend/internals/features/topics/route"
	authRoute "skillshots_backend/internals/features/users/auth/route"
	userRoute "skillshots_backend/internals/features/users/user/route"

	authMiddleware "skillshots_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

// Deps carries the shared service singletons the route tree needs
// beyond the DB handle. GenAI may be nil when no API key is
// configured; the AI handlers answer 503 in that case.
type Deps struct {
	GenAI    *genaiService.Service
	Attempts *quizService.AttemptStore
	Progress *progressService.ProgressService
}

func SetupRoutes(app *fiber.App, db *gorm.DB, deps Deps) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH (public + self-service) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	// ===================== SIGNED-IN API =====================
	// Everything below requires a valid token; role checks are applied
	// per route group.
	log.Println("[INFO] Setting up authenticated /api group...")
	api := app.Group("/api", authMiddleware.AuthMiddleware(db))

	log.Println("[INFO] Mounting User routes...")
	userRoute.UserRoutes(api, db)

	log.Println("[INFO] Mounting Group routes...")
	groupRoute.GroupRoutes(api, db)

	log.Println("[INFO] Mounting Settings routes...")
	settingsRoute.SettingsRoutes(api, db)

	log.Println("[INFO] Mounting Topic routes...")
	topicRoute.TopicRoutes(api, db, deps.Progress)

	log.Println("[INFO] Mounting Progress routes...")
	progressRoute.ProgressRoutes(api, db, deps.Progress)

	log.Println("[INFO] Mounting Quiz routes...")
	quizRoute.QuizRoutes(api, db, deps.GenAI, deps.Attempts)

	log.Println("[INFO] Mounting AI routes...")
	genaiRoute.AIRoutes(api, db, deps.GenAI)

	log.Println("[INFO] Mounting Leaderboard routes...")
	leaderboardRoute.LeaderboardRoutes(api, db)
}
