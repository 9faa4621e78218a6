package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eathub/cache"
	"eathub/models"
	"eathub/respond"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type menuItemRequest struct {
	Name          string   `json:"name" binding:"required,max=200"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	DiscountPrice *float64 `json:"discountPrice" binding:"omitempty,gt=0"`
	Category      string   `json:"category" binding:"required"`
	Ingredients   []string `json:"ingredients"`
	Available     *bool    `json:"available"`
	Image         string   `json:"image"`
	Featured      bool     `json:"featured"`
	FeaturedOrder int      `json:"featuredOrder"`
}

type menuItemUpdate struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	DiscountPrice *float64 `json:"discountPrice"`
	ClearDiscount bool     `json:"clearDiscount"`
	Category      *string  `json:"category"`
	Ingredients   []string `json:"ingredients"`
	Available     *bool    `json:"available"`
	Image         *string  `json:"image"`
	Featured      *bool    `json:"featured"`
	FeaturedOrder *int     `json:"featuredOrder"`
}

func checkDiscountPrice(price float64, discount *float64) bool {
	return discount == nil || *discount < price
}

//GetMenuHandler lists the menu
// Any Authorization header, verified or not, lifts the availability filter.
func GetMenuHandler(c *gin.Context, db *gorm.DB, store *cache.Cache) {
	category := strings.TrimSpace(c.Query("category"))
	includeUnavailable := hasAuthorizationHeader(c)
	cacheable := !includeUnavailable && category == ""

	var items []models.MenuItem
	if cacheable && store.GetJSON(c, cache.KeyPublicMenu, &items) {
		respond.OK(c, http.StatusOK, items)
		return
	}

	query := db.WithContext(c).Model(&models.MenuItem{})
	if !includeUnavailable {
		query = query.Where("available = ?", true)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("category, name").Find(&items).Error; err != nil {
		respond.Err(c, err)
		return
	}

	if cacheable {
		store.SetJSON(c, cache.KeyPublicMenu, items)
	}
	respond.OK(c, http.StatusOK, items)
}

func GetFeaturedMenuHandler(c *gin.Context, db *gorm.DB, store *cache.Cache) {
	if items, ok := store.Featured(c); ok {
		respond.OK(c, http.StatusOK, items)
		return
	}

	var items []models.MenuItem
	err := db.WithContext(c).
		Where("featured = ? AND available = ?", true, true).
		Order("featured_order, id").
		Find(&items).Error
	if err != nil {
		respond.Err(c, err)
		return
	}
	store.PutFeatured(c, items)
	respond.OK(c, http.StatusOK, items)
}

//GetAnnouncementHandler degrades to null when the lookup fails
func GetAnnouncementHandler(c *gin.Context, db *gorm.DB) {
	var announcement models.Announcement
	err := db.WithContext(c).
		Where("active = ?", true).
		Order("created_at DESC, id DESC").
		First(&announcement).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Warn("menu.announcement_failed", "error", err)
		}
		respond.OK(c, http.StatusOK, nil)
		return
	}
	respond.OK(c, http.StatusOK, announcement)
}

// SetAnnouncementHandler replaces the active announcement; an empty message clears it.
func SetAnnouncementHandler(c *gin.Context, db *gorm.DB) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	err := db.WithContext(c).Model(&models.Announcement{}).
		Where("active = ?", true).
		Update("active", false).Error
	if err != nil {
		respond.Err(c, err)
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		respond.OK(c, http.StatusOK, nil)
		return
	}
	announcement := models.Announcement{Message: message, Active: true}
	if err := db.WithContext(c).Create(&announcement).Error; err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, http.StatusOK, announcement)
}

func GetMenuItemHandler(c *gin.Context, db *gorm.DB) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var item models.MenuItem
	err := db.WithContext(c).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Fail(c, http.StatusNotFound, "NOT_FOUND", "menu item not found")
			return
		}
		respond.Err(c, err)
		return
	}
	if !item.Available && !hasAuthorizationHeader(c) {
		respond.Fail(c, http.StatusNotFound, "NOT_FOUND", "menu item not found")
		return
	}
	respond.OK(c, http.StatusOK, item)
}

func CreateMenuItemHandler(c *gin.Context, db *gorm.DB, store *cache.Cache) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	if !checkDiscountPrice(req.Price, req.DiscountPrice) {
		respond.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "discount price must be lower than price")
		return
	}

	item := models.MenuItem{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Category:      strings.TrimSpace(req.Category),
		Ingredients:   req.Ingredients,
		Available:     req.Available == nil || *req.Available,
		Image:         req.Image,
		Featured:      req.Featured,
		FeaturedOrder: req.FeaturedOrder,
	}
	if item.Ingredients == nil {
		item.Ingredients = []string{}
	}
	if err := db.WithContext(c).Create(&item).Error; err != nil {
		respond.Err(c, err)
		return
	}

	store.InvalidateMenu(c)
	respond.OK(c, http.StatusCreated, item)
}

func UpdateMenuItemHandler(c *gin.Context, db *gorm.DB, store *cache.Cache) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req menuItemUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	var item models.MenuItem
	if err := db.WithContext(c).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Fail(c, http.StatusNotFound, "NOT_FOUND", "menu item not found")
			return
		}
		respond.Err(c, err)
		return
	}

	//only overwrite provided fields
	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.DiscountPrice != nil {
		item.DiscountPrice = req.DiscountPrice
	}
	if req.ClearDiscount {
		item.DiscountPrice = nil
	}
	if req.Category != nil {
		item.Category = strings.TrimSpace(*req.Category)
	}
	if req.Ingredients != nil {
		item.Ingredients = req.Ingredients
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	if req.Image != nil {
		item.Image = *req.Image
	}
	if req.Featured != nil {
		item.Featured = *req.Featured
	}
	if req.FeaturedOrder != nil {
		item.FeaturedOrder = *req.FeaturedOrder
	}

	if item.Name == "" || item.Category == "" || item.Price <= 0 {
		respond.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "name, category and a positive price are required")
		return
	}
	if !checkDiscountPrice(item.Price, item.DiscountPrice) {
		respond.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "discount price must be lower than price")
		return
	}

	if err := db.WithContext(c).Save(&item).Error; err != nil {
		respond.Err(c, err)
		return
	}

	store.InvalidateMenu(c)
	respond.OK(c, http.StatusOK, item)
}

func DeleteMenuItemHandler(c *gin.Context, db *gorm.DB, store *cache.Cache) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	result := db.WithContext(c).Delete(&models.MenuItem{}, id)
	if result.Error != nil {
		respond.Err(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respond.Fail(c, http.StatusNotFound, "NOT_FOUND", "menu item not found")
		return
	}

	store.InvalidateMenu(c)
	respond.OK(c, http.StatusOK, gin.H{"id": id})
}
