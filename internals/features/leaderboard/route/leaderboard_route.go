package route

import (
	controller "skillshots_backend/internals/features/leaderboard/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func LeaderboardRoutes(api fiber.Router, db *gorm.DB) {
	leaderboardController := controller.NewLeaderboardController(db)

	leaderboard := api.Group("/leaderboard")
	leaderboard.Get("/", leaderboardController.GetAll)
	leaderboard.Get("/me", leaderboardController.GetMine)
}
