package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"skillshots_backend/internals/features/settings/service"
	helpers "skillshots_backend/internals/helpers"
)

type SettingsController struct {
	DB *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

// GET /api/settings
func (ctrl *SettingsController) Get(c *fiber.Ctx) error {
	settings, err := service.Load(ctrl.DB)
	if err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to load settings")
	}
	return helpers.Success(c, "OK", settings)
}

type updateCategoriesRequest struct {
	Categories []string `json:"categories"`
}

// PUT /api/settings/categories: replaces the allow-list.
func (ctrl *SettingsController) UpdateCategories(c *fiber.Ctx) error {
	var req updateCategoriesRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	cleaned := make([]string, 0, len(req.Categories))
	seen := make(map[string]struct{}, len(req.Categories))
	for _, cat := range req.Categories {
		cat = strings.TrimSpace(cat)
		if cat == "" {
			continue
		}
		if _, dup := seen[cat]; dup {
			continue
		}
		seen[cat] = struct{}{}
		cleaned = append(cleaned, cat)
	}
	if len(cleaned) == 0 {
		return helpers.Error(c, fiber.StatusBadRequest, "At least one category is required")
	}

	settings, err := service.Load(ctrl.DB)
	if err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to load settings")
	}
	settings.AppSettingCategories = pq.StringArray(cleaned)
	if err := ctrl.DB.Save(settings).Error; err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to update categories")
	}
	return helpers.Success(c, "Categories updated", settings)
}
