package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"skillshots_backend/internals/features/groups/model"
	helpers "skillshots_backend/internals/helpers"
)

type GroupController struct {
	DB *gorm.DB
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{DB: db}
}

type groupRequest struct {
	GroupName string `json:"group_name"`
}

// GET /api/groups: readable by every signed-in user (the dashboard
// shows group names on topic cards).
func (ctrl *GroupController) GetAll(c *fiber.Ctx) error {
	var groups []model.GroupModel
	if err := ctrl.DB.Order("created_at ASC").Find(&groups).Error; err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to fetch groups")
	}
	return helpers.Success(c, "OK", groups)
}

// POST /api/groups
func (ctrl *GroupController) Create(c *fiber.Ctx) error {
	var req groupRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	name := strings.TrimSpace(req.GroupName)
	if name == "" {
		return helpers.Error(c, fiber.StatusBadRequest, "Group name must not be empty")
	}

	group := model.GroupModel{GroupName: name}
	if err := ctrl.DB.Create(&group).Error; err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to create group")
	}
	return helpers.SuccessWithCode(c, fiber.StatusCreated, "Group created", group)
}

// DELETE /api/groups/:id
func (ctrl *GroupController) Delete(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid group id")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM user_groups WHERE group_id = ?", groupID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM topic_group_shares WHERE group_id = ?", groupID).Error; err != nil {
			return err
		}
		res := tx.Where("group_id = ?", groupID).Delete(&model.GroupModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helpers.Error(c, fiber.StatusNotFound, "Group not found")
	}
	if err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to delete group")
	}
	return helpers.Success(c, "Group deleted", nil)
}
