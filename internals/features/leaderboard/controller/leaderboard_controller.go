package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helpers "skillshots_backend/internals/helpers"
)

type LeaderboardController struct {
	DB *gorm.DB
}

func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{DB: db}
}

// GET /api/leaderboard
// Ranked by total points; completed-topic counts ride along so the UI
// can show "N topics" next to the score.
func (ctrl *LeaderboardController) GetAll(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var rows []struct {
		UserID    uuid.UUID `gorm:"column:user_id"`
		FullName  string    `gorm:"column:full_name"`
		Points    int       `gorm:"column:points"`
		Completed int       `gorm:"column:completed"`
	}
	err := ctrl.DB.Raw(`
		SELECT u.id AS user_id,
		       u.full_name,
		       up.user_point_total AS points,
		       COALESCE(tp.completed, 0) AS completed
		FROM user_points up
		JOIN users u ON u.id = up.user_point_user_id
		LEFT JOIN (
			SELECT topic_progress_user_id, COUNT(*) AS completed
			FROM topic_progress
			WHERE topic_progress_status = 'Completed'
			GROUP BY topic_progress_user_id
		) tp ON tp.topic_progress_user_id = up.user_point_user_id
		ORDER BY up.user_point_total DESC, u.full_name ASC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to load leaderboard")
	}

	out := make([]fiber.Map, 0, len(rows))
	for i, r := range rows {
		out = append(out, fiber.Map{
			"rank":             i + 1,
			"user_id":          r.UserID,
			"full_name":        r.FullName,
			"points":           r.Points,
			"completed_topics": r.Completed,
		})
	}
	return helpers.Success(c, "OK", out)
}

// GET /api/leaderboard/me: the caller's own points and rank.
func (ctrl *LeaderboardController) GetMine(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var row struct {
		Points int `gorm:"column:points"`
		Rank   int `gorm:"column:rank"`
	}
	err = ctrl.DB.Raw(`
		SELECT points, rank FROM (
			SELECT user_point_user_id,
			       user_point_total AS points,
			       RANK() OVER (ORDER BY user_point_total DESC) AS rank
			FROM user_points
		) ranked
		WHERE user_point_user_id = ?`, userID).Scan(&row).Error
	if err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to load points")
	}
	if row.Rank == 0 {
		// no points row yet
		return helpers.Success(c, "OK", fiber.Map{"points": 0, "rank": nil})
	}
	return helpers.Success(c, "OK", fiber.Map{"points": row.Points, "rank": row.Rank})
}
