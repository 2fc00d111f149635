package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"skillshots_backend/internals/constants"
	progressModel "skillshots_backend/internals/features/progress/model"
	progressService "skillshots_backend/internals/features/progress/service"
	settingsService "skillshots_backend/internals/features/settings/service"
	"skillshots_backend/internals/features/topics/dto"
	topicModel "skillshots_backend/internals/features/topics/model"
	"skillshots_backend/internals/features/topics/service"
	userModel "skillshots_backend/internals/features/users/user/model"
	helpers "skillshots_backend/internals/helpers"
)

type TopicController struct {
	DB        *gorm.DB
	Authoring *service.AuthoringService
	Progress  *progressService.ProgressService
}

func NewTopicController(db *gorm.DB, authoring *service.AuthoringService, progress *progressService.ProgressService) *TopicController {
	return &TopicController{DB: db, Authoring: authoring, Progress: progress}
}

/* ==========================
   Learner surface
========================== */

// GET /api/topics/dashboard
// Visible topics split into pending/completed, plus group context.
func (ctrl *TopicController) Dashboard(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	topics, err := service.QueryVisibleTopics(ctrl.DB, userID)
	if err != nil {
		log.Println("[ERROR] dashboard query failed:", err)
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	statuses, err := ctrl.Progress.StatusByTopic(userID)
	if err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to load progress")
	}

	pending := make([]fiber.Map, 0, len(topics))
	completed := make([]fiber.Map, 0)
	for i := range topics {
		status := progressModel.StatusPending
		if s, ok := statuses[topics[i].TopicID]; ok {
			status = s
		}
		entry := topicWithStatus(&topics[i], status)
		if status == progressModel.StatusCompleted {
			completed = append(completed, entry)
		} else {
			pending = append(pending, entry)
		}
	}

	return helpers.Success(c, "OK", fiber.Map{
		"pending_topics":   pending,
		"completed_topics": completed,
	})
}

// GET /api/topics/:id
// Learners only see topics shared with them; Creators see everything.
func (ctrl *TopicController) GetByID(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	topicID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid topic id")
	}

	topic, err := ctrl.loadTopic(topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.Error(c, fiber.StatusNotFound, "Topic not found")
		}
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to load topic")
	}

	role, _ := helpers.GetUserRoleFromToken(c)
	if role != constants.RoleCreator {
		var user userModel.UserModel
		if err := ctrl.DB.Preload("Groups").First(&user, "id = ?", userID).Error; err != nil {
			return helpers.Error(c, fiber.StatusNotFound, "User not found")
		}
		if !service.IsVisible(&user, topic) {
			// hidden topics are indistinguishable from missing ones
			return helpers.Error(c, fiber.StatusNotFound, "Topic not found")
		}
	}

	return helpers.Success(c, "OK", topic)
}

/* ==========================
   Creator surface
========================== */

// GET /api/topics: the full catalog, share channels included.
func (ctrl *TopicController) GetAllForCreator(c *fiber.Ctx) error {
	var topics []topicModel.TopicModel
	err := ctrl.DB.
		Preload("Blocks", func(tx *gorm.DB) *gorm.DB { return tx.Order("block_order ASC") }).
		Preload("SharedGroups").
		Preload("SharedUsers").
		Order("created_at DESC").
		Find(&topics).Error
	if err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to fetch topics")
	}
	return helpers.Success(c, "OK", topics)
}

// POST /api/topics
func (ctrl *TopicController) Create(c *fiber.Ctx) error {
	return ctrl.save(c, uuid.Nil)
}

// PUT /api/topics/:id
func (ctrl *TopicController) Update(c *fiber.Ctx) error {
	topicID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid topic id")
	}
	var count int64
	if err := ctrl.DB.Model(&topicModel.TopicModel{}).Where("topic_id = ?", topicID).Count(&count).Error; err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to load topic")
	}
	if count == 0 {
		return helpers.Error(c, fiber.StatusNotFound, "Topic not found")
	}
	return ctrl.save(c, topicID)
}

func (ctrl *TopicController) save(c *fiber.Ctx, topicID uuid.UUID) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SaveTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := dto.Validate.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	settings, err := settingsService.Load(ctrl.DB)
	if err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to load settings")
	}

	topic, err := ctrl.Authoring.SaveTopic(req.ToDraft(topicID, userID), settings)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return helpers.Error(c, fiber.StatusBadRequest, err.Error())
		}
		log.Println("[ERROR] topic save failed:", err)
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to save topic")
	}

	code := fiber.StatusOK
	if topicID == uuid.Nil {
		code = fiber.StatusCreated
	}
	return helpers.SuccessWithCode(c, code, "Topic saved", topic)
}

// DELETE /api/topics/:id
func (ctrl *TopicController) Delete(c *fiber.Ctx) error {
	topicID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid topic id")
	}
	if err := ctrl.Authoring.DeleteTopic(topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.Error(c, fiber.StatusNotFound, "Topic not found")
		}
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to delete topic")
	}
	return helpers.Success(c, "Topic deleted", nil)
}

// POST /api/topics/cover
// Multipart upload; the stored URL goes into the save payload.
func (ctrl *TopicController) UploadCover(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Missing image file")
	}
	url, err := helpers.SaveCoverImage("./uploads/covers", "/uploads/covers", fileHeader)
	if err != nil {
		log.Println("[ERROR] cover upload failed:", err)
		return helpers.Error(c, fiber.StatusBadRequest, "Could not process image")
	}
	return helpers.SuccessWithCode(c, fiber.StatusCreated, "Cover uploaded", fiber.Map{"image_url": url})
}

/* ==========================
   Internals
========================== */

func (ctrl *TopicController) loadTopic(topicID uuid.UUID) (*topicModel.TopicModel, error) {
	var topic topicModel.TopicModel
	err := ctrl.DB.
		Preload("Blocks", func(tx *gorm.DB) *gorm.DB { return tx.Order("block_order ASC") }).
		Preload("SharedGroups").
		Preload("SharedUsers").
		First(&topic, "topic_id = ?", topicID).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func topicWithStatus(t *topicModel.TopicModel, status string) fiber.Map {
	return fiber.Map{
		"topic_id":       t.TopicID,
		"topic_title":    t.TopicTitle,
		"topic_category": t.TopicCategory,
		"topic_author_id": t.TopicAuthorID,
		"topic_read_time": t.TopicReadTime,
		"topic_image_url": t.TopicImageURL,
		"topic_is_sop":   t.TopicIsSOP,
		"content":        t.Blocks,
		"shared_groups":  t.SharedGroups,
		"status":         status,
	}
}
