package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"eathub/models"
	"eathub/testdb"

	"gorm.io/gorm"
)

func seedMenu(t *testing.T, db *gorm.DB) (burger, soup models.MenuItem) {
	t.Helper()
	burger = models.MenuItem{Name: "Burger", Price: 12.99, Category: "Mains", Available: true}
	soup = models.MenuItem{Name: "Soup", Price: 6.5, Category: "Starters", Available: false}
	if err := db.Create(&burger).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&soup).Error; err != nil {
		t.Fatal(err)
	}
	return burger, soup
}

func customer() CustomerInfo {
	return CustomerInfo{Name: "Ada", Phone: "(555) 123-4567", Email: "ada@example.com", Address: "1 Main St"}
}

func countOrders(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Order{}).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	got := NewOrderNumber(now)
	if !regexp.MustCompile(`^ORD-20260304050607-[0-9A-F]{4}$`).MatchString(got) {
		t.Errorf("NewOrderNumber() = %q", got)
	}
}

func TestCreateOrderUsesStoredPrices(t *testing.T) {
	db := testdb.Open(t)
	burger, _ := seedMenu(t, db)
	now := time.Now()

	res, err := CreateOrder(context.Background(), db, CreateOrderInput{
		Customer: customer(),
		Items:    []OrderItemInput{{ItemID: burger.ID, Quantity: 2}},
		UserID:   "user-1",
	}, now)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	order := res.Order
	if order.TotalAmount != 25.98 || order.Subtotal != 25.98 {
		t.Errorf("total = %v subtotal = %v, want 25.98", order.TotalAmount, order.Subtotal)
	}
	if order.Status != models.OrderStatusReceived {
		t.Errorf("status = %q", order.Status)
	}
	if !order.EstimatedDelivery.Equal(now.Add(DeliveryEstimate)) {
		t.Errorf("estimated delivery = %v", order.EstimatedDelivery)
	}
	if res.PointsEarned != 2 {
		t.Errorf("points = %d, want 2", res.PointsEarned)
	}

	stored, err := GetOrder(context.Background(), db, order.OrderNumber)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if len(stored.Items) != 1 || stored.Items[0].Price != 12.99 || stored.Items[0].Quantity != 2 {
		t.Errorf("stored items = %+v", stored.Items)
	}

	balance, err := GetUserRewards(context.Background(), db, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if balance.Points != 2 || balance.LifetimeEarned != 2 {
		t.Errorf("balance = %+v", balance)
	}
}

func TestCreateOrderWithoutUserEarnsNothing(t *testing.T) {
	db := testdb.Open(t)
	burger, _ := seedMenu(t, db)

	res, err := CreateOrder(context.Background(), db, CreateOrderInput{
		Customer: customer(),
		Items:    []OrderItemInput{{ItemID: burger.ID, Quantity: 2}},
	}, time.Now())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if res.PointsEarned != 0 {
		t.Errorf("points = %d, want 0", res.PointsEarned)
	}
	var n int64
	db.Model(&models.RewardTransaction{}).Count(&n)
	if n != 0 {
		t.Errorf("reward transactions = %d, want 0", n)
	}
}

func TestCreateOrderRejections(t *testing.T) {
	db := testdb.Open(t)
	burger, soup := seedMenu(t, db)

	tests := []struct {
		name string
		in   CreateOrderInput
		code string
	}{
		{"short phone", CreateOrderInput{
			Customer: CustomerInfo{Name: "Ada", Phone: "555-1234", Address: "1 Main St"},
			Items:    []OrderItemInput{{ItemID: burger.ID, Quantity: 1}},
		}, "INVALID_PHONE"},
		{"zero quantity", CreateOrderInput{
			Customer: customer(),
			Items:    []OrderItemInput{{ItemID: burger.ID, Quantity: 0}},
		}, "INVALID_QUANTITY"},
		{"unavailable item", CreateOrderInput{
			Customer: customer(),
			Items:    []OrderItemInput{{ItemID: burger.ID, Quantity: 1}, {ItemID: soup.ID, Quantity: 1}},
		}, "ITEM_UNAVAILABLE"},
		{"missing item", CreateOrderInput{
			Customer: customer(),
			Items:    []OrderItemInput{{ItemID: 9999, Quantity: 1}},
		}, "ITEM_NOT_FOUND"},
		{"no items", CreateOrderInput{Customer: customer()}, "VALIDATION_ERROR"},
		{"no name", CreateOrderInput{
			Customer: CustomerInfo{Phone: "5551234567", Address: "1 Main St"},
			Items:    []OrderItemInput{{ItemID: burger.ID, Quantity: 1}},
		}, "VALIDATION_ERROR"},
		{"bad voucher", CreateOrderInput{
			Customer:    customer(),
			Items:       []OrderItemInput{{ItemID: burger.ID, Quantity: 1}},
			VoucherCode: "GHOST",
		}, "VOUCHER_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateOrder(context.Background(), db, tt.in, time.Now())
			if got := CodeOf(err); got != tt.code {
				t.Errorf("code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
	if n := countOrders(t, db); n != 0 {
		t.Errorf("orders persisted = %d, want 0", n)
	}
}

func TestCreateOrderAppliesVoucher(t *testing.T) {
	db := testdb.Open(t)
	burger, _ := seedMenu(t, db)
	v := models.Voucher{Code: "TENOFF", DiscountType: models.DiscountPercentage, DiscountValue: 10, MinOrderAmount: 25, IsActive: true}
	if err := db.Create(&v).Error; err != nil {
		t.Fatal(err)
	}

	res, err := CreateOrder(context.Background(), db, CreateOrderInput{
		Customer:    customer(),
		Items:       []OrderItemInput{{ItemID: burger.ID, Quantity: 4}},
		VoucherCode: "tenoff",
		UserID:      "user-9",
	}, time.Now())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	// 4 × 12.99 = 51.96, 10% = 5.196 -> 5.20
	if res.Order.Subtotal != 51.96 || res.Order.DiscountAmount != 5.2 || res.Order.TotalAmount != 46.76 {
		t.Errorf("order totals = %v / %v / %v", res.Order.Subtotal, res.Order.DiscountAmount, res.Order.TotalAmount)
	}
	if res.Order.VoucherCode != "TENOFF" {
		t.Errorf("voucher code = %q", res.Order.VoucherCode)
	}
	if res.PointsEarned != 4 {
		t.Errorf("points = %d, want 4", res.PointsEarned)
	}

	var reloaded models.Voucher
	db.First(&reloaded, v.ID)
	if reloaded.UsedCount != 1 {
		t.Errorf("used count = %d, want 1", reloaded.UsedCount)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	db := testdb.Open(t)
	burger, _ := seedMenu(t, db)
	ctx := context.Background()
	res, err := CreateOrder(ctx, db, CreateOrderInput{
		Customer: customer(),
		Items:    []OrderItemInput{{ItemID: burger.ID, Quantity: 1}},
	}, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	for _, status := range []string{models.OrderStatusPreparing, models.OrderStatusOutForDelivery, models.OrderStatusDelivered} {
		order, err := UpdateOrderStatus(ctx, db, res.Order.OrderNumber, status)
		if err != nil {
			t.Fatalf("UpdateOrderStatus(%s): %v", status, err)
		}
		if order.Status != status {
			t.Errorf("status = %q, want %q", order.Status, status)
		}
	}

	if _, err := UpdateOrderStatus(ctx, db, res.Order.OrderNumber, "cancelled"); CodeOf(err) != "INVALID_STATUS" {
		t.Errorf("unknown status: %v", err)
	}
	if _, err := UpdateOrderStatus(ctx, db, "ORD-missing", models.OrderStatusPreparing); CodeOf(err) != "NOT_FOUND" {
		t.Errorf("missing order: %v", err)
	}

	orders, total, err := ListOrders(ctx, db, OrderFilter{Status: models.OrderStatusDelivered})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(orders) != 1 || len(orders[0].Items) != 1 {
		t.Errorf("ListOrders = %d orders (total %d)", len(orders), total)
	}
}
