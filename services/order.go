package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eathub/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DeliveryEstimate = 45 * time.Minute
	minPhoneDigits   = 10
)

type CustomerInfo struct {
	Name    string `json:"name" validate:"required,max=100"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"required"`
}

type OrderItemInput struct {
	ItemID   uint `json:"itemId" validate:"required"`
	Quantity int  `json:"quantity"`
}

type CreateOrderInput struct {
	Customer    CustomerInfo     `json:"customerInfo"`
	Items       []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	VoucherCode string           `json:"voucherCode"`
	Notes       string           `json:"notes" validate:"max=500"`
	// UserID is taken from request headers, never from the body.
	UserID string `json:"-"`
}

type CreateOrderResult struct {
	Order        *models.Order `json:"order"`
	PointsEarned int           `json:"pointsEarned"`
}

// NewOrderNumber builds a readable number from the time plus a random suffix.
// Uniqueness is not checked.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102150405"), suffix)
}

func validateOrderInput(in CreateOrderInput) error {
	if err := checkStruct(in); err != nil {
		return err
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return newError(http.StatusBadRequest, "INVALID_QUANTITY",
				fmt.Sprintf("quantity for item %d must be at least 1", item.ItemID))
		}
	}
	if DigitCount(in.Customer.Phone) < minPhoneDigits {
		return newError(http.StatusBadRequest, "INVALID_PHONE", "phone number must contain at least 10 digits")
	}
	return nil
}

// priceItems loads every referenced menu item and prices the lines from storage.
func priceItems(ctx context.Context, db *gorm.DB, inputs []OrderItemInput) ([]models.OrderItem, decimal.Decimal, error) {
	ids := make([]uint, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ItemID)
	}

	var menuItems []models.MenuItem
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&menuItems).Error; err != nil {
		return nil, decimal.Zero, Internal("failed to load menu items", err)
	}
	byID := make(map[uint]models.MenuItem, len(menuItems))
	for _, m := range menuItems {
		byID[m.ID] = m
	}

	lines := make([]models.OrderItem, 0, len(inputs))
	total := decimal.Zero
	for _, in := range inputs {
		item, ok := byID[in.ItemID]
		if !ok {
			return nil, decimal.Zero, newError(http.StatusBadRequest, "ITEM_NOT_FOUND",
				fmt.Sprintf("menu item %d does not exist", in.ItemID))
		}
		if !item.Available {
			return nil, decimal.Zero, newError(http.StatusBadRequest, "ITEM_UNAVAILABLE",
				fmt.Sprintf("%s is not available", item.Name))
		}
		line := LineTotal(item.Price, in.Quantity)
		total = total.Add(line)
		lines = append(lines, models.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   in.Quantity,
			LineTotal:  RoundMoney(line),
		})
	}
	return lines, total, nil
}

// CreateOrder prices, persists and rewards an order.
// Header and lines are separate writes; a failed line write removes the header.
func CreateOrder(ctx context.Context, db *gorm.DB, in CreateOrderInput, now time.Time) (*CreateOrderResult, error) {
	if err := validateOrderInput(in); err != nil {
		return nil, err
	}

	lines, subtotal, err := priceItems(ctx, db, in.Items)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNumber:       NewOrderNumber(now),
		UserID:            in.UserID,
		CustomerName:      strings.TrimSpace(in.Customer.Name),
		CustomerPhone:     strings.TrimSpace(in.Customer.Phone),
		CustomerEmail:     strings.TrimSpace(in.Customer.Email),
		DeliveryAddress:   strings.TrimSpace(in.Customer.Address),
		Notes:             in.Notes,
		Subtotal:          RoundMoney(subtotal),
		TotalAmount:       RoundMoney(subtotal),
		Status:            models.OrderStatusReceived,
		EstimatedDelivery: now.Add(DeliveryEstimate),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if in.VoucherCode != "" {
		v, discount, err := ValidateVoucher(ctx, db, in.VoucherCode, order.Subtotal, now)
		if err != nil {
			return nil, err
		}
		order.VoucherCode = v.Code
		order.DiscountAmount = discount.Amount
		order.TotalAmount = discount.FinalTotal
	}

	if err := db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, Internal("failed to create order", err)
	}

	for i := range lines {
		lines[i].OrderID = order.ID
	}
	if err := db.WithContext(ctx).Create(&lines).Error; err != nil {
		if delErr := db.WithContext(ctx).Delete(&models.Order{}, order.ID).Error; delErr != nil {
			slog.Error("order.rollback_failed", "order_number", order.OrderNumber, "error", delErr)
		}
		return nil, Internal("failed to create order items", err)
	}
	order.Items = lines

	if order.VoucherCode != "" {
		if _, err := ApplyVoucher(ctx, db, order.VoucherCode); err != nil {
			slog.Warn("order.voucher_apply_failed", "order_number", order.OrderNumber, "code", order.VoucherCode, "error", err)
		}
	}

	result := &CreateOrderResult{Order: order}
	if in.UserID != "" {
		points, err := AwardPoints(ctx, db, in.UserID, order.OrderNumber, order.TotalAmount)
		if err != nil {
			slog.Warn("order.points_failed", "order_number", order.OrderNumber, "user_id", in.UserID, "error", err)
		} else {
			result.PointsEarned = points
		}
	}
	return result, nil
}

func GetOrder(ctx context.Context, db *gorm.DB, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("order not found")
		}
		return nil, Internal("failed to load order", err)
	}
	return &order, nil
}

type OrderFilter struct {
	Status string
	Limit  int
	Offset int
}

func ListOrders(ctx context.Context, db *gorm.DB, f OrderFilter) ([]models.Order, int64, error) {
	if f.Status != "" && !ValidStatus(f.Status) {
		return nil, 0, invalidStatus(f.Status)
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	query := db.WithContext(ctx).Model(&models.Order{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, Internal("failed to count orders", err)
	}

	var orders []models.Order
	err := query.
		Preload("Items").
		Order("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, Internal("failed to list orders", err)
	}
	return orders, total, nil
}

func ValidStatus(status string) bool {
	for _, s := range models.OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func invalidStatus(status string) *Error {
	return newError(http.StatusBadRequest, "INVALID_STATUS",
		fmt.Sprintf("status %q must be one of %s", status, strings.Join(models.OrderStatuses, ", ")))
}

// UpdateOrderStatus sets any known status; moving backwards is allowed so staff can correct mistakes.
func UpdateOrderStatus(ctx context.Context, db *gorm.DB, orderNumber, status string) (*models.Order, error) {
	if !ValidStatus(status) {
		return nil, invalidStatus(status)
	}
	order, err := GetOrder(ctx, db, orderNumber)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(order).Update("status", status).Error; err != nil {
		return nil, Internal("failed to update order status", err)
	}
	order.Status = status
	return order, nil
}
