package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	groupModel "skillshots_backend/internals/features/groups/model"
	authHelper "skillshots_backend/internals/features/users/auth/helper"
	"skillshots_backend/internals/features/users/user/dto"
	"skillshots_backend/internals/features/users/user/model"
	helpers "skillshots_backend/internals/helpers"
)

// UserController is the Creator-facing user administration surface.
type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GET /api/users
func (ctrl *UserController) GetAll(c *fiber.Ctx) error {
	paging := helpers.ResolvePaging(c, 50, 200)

	var total int64
	if err := ctrl.DB.Model(&model.UserModel{}).Count(&total).Error; err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var users []model.UserModel
	if err := ctrl.DB.Preload("Groups").
		Order("created_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&users).Error; err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	return helpers.Success(c, "OK", fiber.Map{
		"users":      users,
		"pagination": helpers.BuildPagination(paging, total, len(users)),
	})
}

// POST /api/users
func (ctrl *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := dto.Validate.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var existing model.UserModel
	if err := ctrl.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return helpers.ErrorWithKind(c, fiber.StatusConflict, helpers.KindConflict, "Email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helpers.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}

	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}

	user := model.UserModel{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return setUserGroups(tx, user.ID, req.GroupIDs)
	})
	if err != nil {
		log.Println("[ERROR] create user failed:", err)
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helpers.SuccessWithCode(c, fiber.StatusCreated, "User created", user)
}

// PUT /api/users/:id
func (ctrl *UserController) Update(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := dto.Validate.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helpers.Error(c, fiber.StatusNotFound, "User not found")
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Password != nil {
		hash, err := authHelper.HashPassword(*req.Password)
		if err != nil {
			return helpers.Error(c, fiber.StatusInternalServerError, "Internal server error")
		}
		updates["password_hash"] = hash
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&user).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.GroupIDs != nil {
			return setUserGroups(tx, user.ID, *req.GroupIDs)
		}
		return nil
	})
	if err != nil {
		log.Println("[ERROR] update user failed:", err)
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to update user")
	}

	return helpers.Success(c, "User updated", nil)
}

// DELETE /api/users/:id
func (ctrl *UserController) Delete(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM user_groups WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM topic_user_shares WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", userID).Delete(&model.UserModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helpers.Error(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		log.Println("[ERROR] delete user failed:", err)
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to delete user")
	}

	return helpers.Success(c, "User deleted", nil)
}

func setUserGroups(tx *gorm.DB, userID uuid.UUID, groupIDs []uuid.UUID) error {
	if err := tx.Exec("DELETE FROM user_groups WHERE user_id = ?", userID).Error; err != nil {
		return err
	}
	for _, gid := range groupIDs {
		var count int64
		if err := tx.Model(&groupModel.GroupModel{}).Where("group_id = ?", gid).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			continue // silently skip unknown group references
		}
		if err := tx.Exec(
			"INSERT INTO user_groups (user_id, group_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			userID, gid,
		).Error; err != nil {
			return err
		}
	}
	return nil
}
