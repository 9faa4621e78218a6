package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"eathub/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

type Discount struct {
	Amount     float64 `json:"discount"`
	FinalTotal float64 `json:"finalTotal"`
}

// NormalizeCode folds full-width characters and case so codes compare equal however typed.
func NormalizeCode(code string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(norm.NFKC.String(code)))
}

// CheckVoucher applies expiry, usage limit and minimum order rules.
func CheckVoucher(v *models.Voucher, orderTotal float64, now time.Time) error {
	if v.Expired(now) {
		return newError(http.StatusBadRequest, "VOUCHER_EXPIRED", "voucher has expired")
	}
	if v.Exhausted() {
		return newError(http.StatusBadRequest, "VOUCHER_EXHAUSTED", "voucher usage limit reached")
	}
	if orderTotal < v.MinOrderAmount {
		return newError(http.StatusBadRequest, "MIN_ORDER_NOT_MET", "order total is below the voucher minimum")
	}
	return nil
}

// ComputeDiscount never returns a discount larger than the total.
func ComputeDiscount(v *models.Voucher, total float64) Discount {
	t := decimal.NewFromFloat(total)
	var amount decimal.Decimal
	if v.DiscountType == models.DiscountPercentage {
		amount = decimal.NewFromFloat(v.DiscountValue).Mul(t).Div(hundred)
	} else {
		amount = decimal.NewFromFloat(v.DiscountValue)
	}
	if amount.GreaterThan(t) {
		amount = t
	}
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	amount = amount.Round(2)
	return Discount{
		Amount:     RoundMoney(amount),
		FinalTotal: RoundMoney(t.Sub(amount)),
	}
}

func findActiveVoucher(ctx context.Context, db *gorm.DB, code string) (*models.Voucher, error) {
	var v models.Voucher
	err := db.WithContext(ctx).
		Where("code = ? AND is_active = ?", NormalizeCode(code), true).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(http.StatusNotFound, "VOUCHER_NOT_FOUND", "voucher not found")
		}
		return nil, Internal("failed to look up voucher", err)
	}
	return &v, nil
}

// ValidateVoucher looks up an active voucher and prices it against orderTotal.
func ValidateVoucher(ctx context.Context, db *gorm.DB, code string, orderTotal float64, now time.Time) (*models.Voucher, Discount, error) {
	if strings.TrimSpace(code) == "" {
		return nil, Discount{}, Validation("voucher code is required")
	}
	if orderTotal < 0 {
		return nil, Discount{}, Validation("order total must not be negative")
	}
	v, err := findActiveVoucher(ctx, db, code)
	if err != nil {
		return nil, Discount{}, err
	}
	if err := CheckVoucher(v, orderTotal, now); err != nil {
		return v, Discount{}, err
	}
	return v, ComputeDiscount(v, orderTotal), nil
}

// ApplyVoucher records one use. The count is read and written back without a lock,
// so two concurrent applies can both pass a limit of one.
func ApplyVoucher(ctx context.Context, db *gorm.DB, code string) (*models.Voucher, error) {
	v, err := findActiveVoucher(ctx, db, code)
	if err != nil {
		return nil, err
	}
	v.UsedCount++
	if err := db.WithContext(ctx).Model(v).Update("used_count", v.UsedCount).Error; err != nil {
		return nil, Internal("failed to apply voucher", err)
	}
	return v, nil
}

// Redeemable filters out expired and used-up vouchers.
func Redeemable(vouchers []models.Voucher, now time.Time) []models.Voucher {
	out := make([]models.Voucher, 0, len(vouchers))
	for _, v := range vouchers {
		if v.Expired(now) || v.Exhausted() {
			continue
		}
		out = append(out, v)
	}
	return out
}

func ValidDiscountType(t string) bool {
	return t == models.DiscountPercentage || t == models.DiscountFixed
}
