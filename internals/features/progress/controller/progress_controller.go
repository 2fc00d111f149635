package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	progressModel "skillshots_backend/internals/features/progress/model"
	"skillshots_backend/internals/features/progress/service"
	helpers "skillshots_backend/internals/helpers"
)

type ProgressController struct {
	DB      *gorm.DB
	Service *service.ProgressService
}

func NewProgressController(db *gorm.DB, svc *service.ProgressService) *ProgressController {
	return &ProgressController{DB: db, Service: svc}
}

// GET /api/progress/me: the caller's own progress rows.
func (ctrl *ProgressController) GetMine(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var rows []progressModel.TopicProgressModel
	if err := ctrl.DB.Where("topic_progress_user_id = ?", userID).Find(&rows).Error; err != nil {
		log.Println("[ERROR] failed to fetch progress:", err)
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to fetch progress")
	}
	return helpers.Success(c, "OK", rows)
}

// POST /api/progress/topics/:id/complete
// Requires a passed quiz attempt; idempotent on repeat calls.
func (ctrl *ProgressController) MarkComplete(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	topicID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid topic id")
	}

	progress, err := ctrl.Service.MarkComplete(userID, topicID)
	switch {
	case errors.Is(err, service.ErrTopicNotFound):
		return helpers.Error(c, fiber.StatusNotFound, "Topic not found")
	case errors.Is(err, service.ErrQuizNotPassed):
		return helpers.ErrorWithKind(c, fiber.StatusForbidden, helpers.KindForbidden,
			"Pass the quiz before marking this topic complete")
	case err != nil:
		log.Println("[ERROR] mark complete failed:", err)
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to update progress")
	}

	return helpers.Success(c, "Topic completed", progress)
}
