package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"eathub/models"

	"gorm.io/gorm"
)

// DeleteCategory refuses while any menu item still names the category.
// Items reference categories by name, so only that string is checked.
func DeleteCategory(ctx context.Context, db *gorm.DB, id uint) error {
	var category models.Category
	if err := db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("category not found")
		}
		return Internal("failed to load category", err)
	}

	var inUse int64
	err := db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("category = ?", category.Name).
		Count(&inUse).Error
	if err != nil {
		return Internal("failed to check category usage", err)
	}
	if inUse > 0 {
		return newError(http.StatusConflict, "CATEGORY_IN_USE",
			fmt.Sprintf("%d menu items still use category %s", inUse, category.Name))
	}

	if err := db.WithContext(ctx).Delete(&category).Error; err != nil {
		return Internal("failed to delete category", err)
	}
	return nil
}
