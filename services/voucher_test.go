package services

import (
	"context"
	"testing"
	"time"

	"eathub/models"
	"eathub/testdb"
)

func intPtr(n int) *int { return &n }

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"save10", "SAVE10"},
		{"  Welcome5 ", "WELCOME5"},
		{"ｓａｖｅ１０", "SAVE10"},
	}
	for _, tt := range tests {
		if got := NormalizeCode(tt.in); got != tt.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name    string
		voucher models.Voucher
		total   float64
		want    Discount
	}{
		{"ten percent of fifty", models.Voucher{DiscountType: models.DiscountPercentage, DiscountValue: 10}, 50, Discount{5, 45}},
		{"fixed amount", models.Voucher{DiscountType: models.DiscountFixed, DiscountValue: 7.5}, 30, Discount{7.5, 22.5}},
		{"fixed clamped", models.Voucher{DiscountType: models.DiscountFixed, DiscountValue: 40}, 25.5, Discount{25.5, 0}},
		{"percentage clamped", models.Voucher{DiscountType: models.DiscountPercentage, DiscountValue: 150}, 20, Discount{20, 0}},
		{"rounded to cents", models.Voucher{DiscountType: models.DiscountPercentage, DiscountValue: 15}, 33.33, Discount{5, 28.33}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDiscount(&tt.voucher, tt.total)
			if got != tt.want {
				t.Errorf("ComputeDiscount() = %+v, want %+v", got, tt.want)
			}
			if got.Amount > tt.total {
				t.Errorf("discount %v exceeds total %v", got.Amount, tt.total)
			}
		})
	}
}

func TestCheckVoucher(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		voucher models.Voucher
		total   float64
		code    string
	}{
		{"valid", models.Voucher{ExpiresAt: &future, UsageLimit: intPtr(5), UsedCount: 4, MinOrderAmount: 25}, 50, ""},
		{"expired", models.Voucher{ExpiresAt: &past}, 50, "VOUCHER_EXPIRED"},
		{"exhausted", models.Voucher{UsageLimit: intPtr(3), UsedCount: 3}, 50, "VOUCHER_EXHAUSTED"},
		{"below minimum", models.Voucher{MinOrderAmount: 25}, 24.99, "MIN_ORDER_NOT_MET"},
		{"no limits", models.Voucher{}, 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckVoucher(&tt.voucher, tt.total, now)
			if got := CodeOf(err); got != tt.code {
				t.Errorf("CheckVoucher() code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestValidateAndApplyVoucher(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	now := time.Now()
	expiry := now.Add(24 * time.Hour)

	v := models.Voucher{
		Code:           "SAVE10",
		DiscountType:   models.DiscountPercentage,
		DiscountValue:  10,
		MinOrderAmount: 25,
		ExpiresAt:      &expiry,
		UsageLimit:     intPtr(1),
		IsActive:       true,
	}
	if err := db.Create(&v).Error; err != nil {
		t.Fatal(err)
	}

	_, discount, err := ValidateVoucher(ctx, db, "save10", 50, now)
	if err != nil {
		t.Fatalf("ValidateVoucher: %v", err)
	}
	if discount.Amount != 5 || discount.FinalTotal != 45 {
		t.Errorf("discount = %+v, want 5/45", discount)
	}

	if _, _, err := ValidateVoucher(ctx, db, "SAVE10", 20, now); CodeOf(err) != "MIN_ORDER_NOT_MET" {
		t.Errorf("below minimum: got %v", err)
	}
	if _, _, err := ValidateVoucher(ctx, db, "NOPE", 50, now); CodeOf(err) != "VOUCHER_NOT_FOUND" {
		t.Errorf("unknown code: got %v", err)
	}

	applied, err := ApplyVoucher(ctx, db, "save10")
	if err != nil {
		t.Fatalf("ApplyVoucher: %v", err)
	}
	if applied.UsedCount != 1 {
		t.Errorf("used count = %d, want 1", applied.UsedCount)
	}
	if _, _, err := ValidateVoucher(ctx, db, "SAVE10", 50, now); CodeOf(err) != "VOUCHER_EXHAUSTED" {
		t.Errorf("after limit: got %v", err)
	}

	if _, _, err := ValidateVoucher(ctx, db, "SAVE10", 50, expiry.Add(time.Minute)); CodeOf(err) != "VOUCHER_EXPIRED" {
		t.Errorf("after expiry: got %v", err)
	}
}

func TestValidateVoucherIgnoresInactive(t *testing.T) {
	db := testdb.Open(t)
	v := models.Voucher{Code: "OLD", DiscountType: models.DiscountFixed, DiscountValue: 5, IsActive: true}
	if err := db.Create(&v).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Model(&v).Update("is_active", false).Error; err != nil {
		t.Fatal(err)
	}
	_, _, err := ValidateVoucher(context.Background(), db, "old", 50, time.Now())
	if CodeOf(err) != "VOUCHER_NOT_FOUND" {
		t.Errorf("inactive voucher: got %v", err)
	}
}

func TestRedeemable(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	vouchers := []models.Voucher{
		{Code: "OK"},
		{Code: "EXPIRED", ExpiresAt: &past},
		{Code: "USED", UsageLimit: intPtr(2), UsedCount: 2},
		{Code: "LEFT", UsageLimit: intPtr(2), UsedCount: 1},
	}
	got := Redeemable(vouchers, now)
	if len(got) != 2 || got[0].Code != "OK" || got[1].Code != "LEFT" {
		t.Errorf("Redeemable() = %+v", got)
	}
}
