package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"eathub/models"
	"eathub/respond"
	"eathub/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type voucherRequest struct {
	Code           string     `json:"code" binding:"required,max=64"`
	Description    string     `json:"description"`
	DiscountType   string     `json:"discountType" binding:"required"`
	DiscountValue  float64    `json:"discountValue" binding:"required,gt=0"`
	MinOrderAmount float64    `json:"minOrderAmount" binding:"gte=0"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	UsageLimit     *int       `json:"usageLimit" binding:"omitempty,gt=0"`
	IsActive       *bool      `json:"isActive"`
}

type voucherUpdate struct {
	Description    *string    `json:"description"`
	DiscountType   *string    `json:"discountType"`
	DiscountValue  *float64   `json:"discountValue"`
	MinOrderAmount *float64   `json:"minOrderAmount"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	UsageLimit     *int       `json:"usageLimit"`
	IsActive       *bool      `json:"isActive"`
}

func checkVoucherShape(discountType string, value, minOrder float64) string {
	switch {
	case !services.ValidDiscountType(discountType):
		return "discount type must be percentage or fixed"
	case value <= 0:
		return "discount value must be positive"
	case discountType == models.DiscountPercentage && value > 100:
		return "percentage discount must be at most 100"
	case minOrder < 0:
		return "minimum order amount must not be negative"
	}
	return ""
}

// GetVoucherListHandler shows redeemable active vouchers, or every voucher to a verified admin.
func GetVoucherListHandler(c *gin.Context, db *gorm.DB) {
	admin := isVerifiedAdmin(c)
	query := db.WithContext(c).Order("created_at DESC, id DESC")
	if !admin {
		query = query.Where("is_active = ?", true)
	}

	var vouchers []models.Voucher
	if err := query.Find(&vouchers).Error; err != nil {
		respond.Err(c, err)
		return
	}
	if !admin {
		vouchers = services.Redeemable(vouchers, time.Now())
	}
	respond.OK(c, http.StatusOK, vouchers)
}

func ValidateVoucherHandler(c *gin.Context, db *gorm.DB) {
	var req struct {
		Code       string   `json:"code" binding:"required"`
		OrderTotal *float64 `json:"orderTotal" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	voucher, discount, err := services.ValidateVoucher(c, db, req.Code, *req.OrderTotal, time.Now())
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{
		"voucher":    voucher,
		"discount":   discount.Amount,
		"finalTotal": discount.FinalTotal,
	})
}

func ApplyVoucherHandler(c *gin.Context, db *gorm.DB) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	voucher, err := services.ApplyVoucher(c, db, req.Code)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, http.StatusOK, voucher)
}

func CreateVoucherHandler(c *gin.Context, db *gorm.DB) {
	var req voucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	if msg := checkVoucherShape(req.DiscountType, req.DiscountValue, req.MinOrderAmount); msg != "" {
		respond.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	voucher := models.Voucher{
		Code:           services.NormalizeCode(req.Code),
		Description:    req.Description,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		ExpiresAt:      req.ExpiresAt,
		UsageLimit:     req.UsageLimit,
		IsActive:       req.IsActive == nil || *req.IsActive,
	}
	if voucher.Code == "" {
		respond.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "voucher code is required")
		return
	}

	var count int64
	if err := db.WithContext(c).Model(&models.Voucher{}).Where("code = ?", voucher.Code).Count(&count).Error; err != nil {
		respond.Err(c, err)
		return
	}
	if count > 0 {
		respond.Fail(c, http.StatusConflict, "DUPLICATE_CODE", "voucher code already exists")
		return
	}

	if err := db.WithContext(c).Create(&voucher).Error; err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, http.StatusCreated, voucher)
}

func UpdateVoucherHandler(c *gin.Context, db *gorm.DB) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req voucherUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	var voucher models.Voucher
	if err := db.WithContext(c).First(&voucher, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Fail(c, http.StatusNotFound, "NOT_FOUND", "voucher not found")
			return
		}
		respond.Err(c, err)
		return
	}

	if req.Description != nil {
		voucher.Description = *req.Description
	}
	if req.DiscountType != nil {
		voucher.DiscountType = strings.TrimSpace(*req.DiscountType)
	}
	if req.DiscountValue != nil {
		voucher.DiscountValue = *req.DiscountValue
	}
	if req.MinOrderAmount != nil {
		voucher.MinOrderAmount = *req.MinOrderAmount
	}
	if req.ExpiresAt != nil {
		voucher.ExpiresAt = req.ExpiresAt
	}
	if req.UsageLimit != nil {
		voucher.UsageLimit = req.UsageLimit
	}
	if req.IsActive != nil {
		voucher.IsActive = *req.IsActive
	}
	if msg := checkVoucherShape(voucher.DiscountType, voucher.DiscountValue, voucher.MinOrderAmount); msg != "" {
		respond.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	if err := db.WithContext(c).Save(&voucher).Error; err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, http.StatusOK, voucher)
}

func DeleteVoucherHandler(c *gin.Context, db *gorm.DB) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	result := db.WithContext(c).Delete(&models.Voucher{}, id)
	if result.Error != nil {
		respond.Err(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respond.Fail(c, http.StatusNotFound, "NOT_FOUND", "voucher not found")
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"id": id})
}
