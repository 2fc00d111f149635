package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMiddleware "skillshots_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain.
// Auth and role checks are attached per route group, not here.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMiddleware.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
