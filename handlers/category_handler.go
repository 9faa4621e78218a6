package handlers

import (
	"errors"
	"net/http"
	"strings"

	"eathub/cache"
	"eathub/models"
	"eathub/respond"
	"eathub/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type categoryRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	SortOrder int    `json:"sortOrder"`
}

func GetCategoryListHandler(c *gin.Context, db *gorm.DB, store *cache.Cache) {
	var categories []models.Category
	if store.GetJSON(c, cache.KeyCategories, &categories) {
		respond.OK(c, http.StatusOK, categories)
		return
	}

	if err := db.WithContext(c).Order("sort_order, name").Find(&categories).Error; err != nil {
		respond.Err(c, err)
		return
	}
	store.SetJSON(c, cache.KeyCategories, categories)
	respond.OK(c, http.StatusOK, categories)
}

func categoryNameTaken(c *gin.Context, db *gorm.DB, name string, exceptID uint) (bool, error) {
	var count int64
	err := db.WithContext(c).Model(&models.Category{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&count).Error
	return count > 0, err
}

func CreateCategoryHandler(c *gin.Context, db *gorm.DB, store *cache.Cache) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respond.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "category name is required")
		return
	}

	taken, err := categoryNameTaken(c, db, name, 0)
	if err != nil {
		respond.Err(c, err)
		return
	}
	if taken {
		respond.Fail(c, http.StatusConflict, "DUPLICATE_CATEGORY", "category already exists")
		return
	}

	category := models.Category{Name: name, Icon: req.Icon, Color: req.Color, SortOrder: req.SortOrder}
	if err := db.WithContext(c).Create(&category).Error; err != nil {
		respond.Err(c, err)
		return
	}
	store.Invalidate(c, cache.KeyCategories)
	respond.OK(c, http.StatusCreated, category)
}

// UpdateCategoryHandler renames in place; menu items keep the old name.
func UpdateCategoryHandler(c *gin.Context, db *gorm.DB, store *cache.Cache) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name      *string `json:"name"`
		Icon      *string `json:"icon"`
		Color     *string `json:"color"`
		SortOrder *int    `json:"sortOrder"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	var category models.Category
	if err := db.WithContext(c).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Fail(c, http.StatusNotFound, "NOT_FOUND", "category not found")
			return
		}
		respond.Err(c, err)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			respond.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "category name is required")
			return
		}
		taken, err := categoryNameTaken(c, db, name, category.ID)
		if err != nil {
			respond.Err(c, err)
			return
		}
		if taken {
			respond.Fail(c, http.StatusConflict, "DUPLICATE_CATEGORY", "category already exists")
			return
		}
		category.Name = name
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if err := db.WithContext(c).Save(&category).Error; err != nil {
		respond.Err(c, err)
		return
	}
	store.Invalidate(c, cache.KeyCategories)
	respond.OK(c, http.StatusOK, category)
}

func DeleteCategoryHandler(c *gin.Context, db *gorm.DB, store *cache.Cache) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteCategory(c, db, id); err != nil {
		respond.Err(c, err)
		return
	}
	store.Invalidate(c, cache.KeyCategories)
	respond.OK(c, http.StatusOK, gin.H{"id": id})
}
