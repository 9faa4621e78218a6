package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eathub/models"
	"eathub/services"

	"gorm.io/gorm"
)

type CleanupResult struct {
	Scanned     int
	Normalized  int
	Deactivated int
	Conflicts   []string
}

// CleanupVouchers rewrites codes to their canonical form and switches off
// vouchers that can no longer be redeemed. A code whose canonical form is
// already taken is deactivated and reported instead of renamed.
func CleanupVouchers(ctx context.Context, db *gorm.DB, now time.Time) (CleanupResult, error) {
	var res CleanupResult
	var vouchers []models.Voucher
	if err := db.WithContext(ctx).Order("id").Find(&vouchers).Error; err != nil {
		return res, fmt.Errorf("load vouchers: %w", err)
	}
	res.Scanned = len(vouchers)

	taken := make(map[string]uint, len(vouchers))
	for _, v := range vouchers {
		taken[v.Code] = v.ID
	}

	for _, v := range vouchers {
		updates := map[string]any{}

		code := services.NormalizeCode(v.Code)
		if code != v.Code {
			if owner, ok := taken[code]; ok && owner != v.ID {
				res.Conflicts = append(res.Conflicts, v.Code)
				if v.IsActive {
					updates["is_active"] = false
				}
			} else {
				delete(taken, v.Code)
				taken[code] = v.ID
				updates["code"] = code
				res.Normalized++
			}
		}

		if v.IsActive && (v.Expired(now) || v.Exhausted()) {
			updates["is_active"] = false
		}
		if len(updates) == 0 {
			continue
		}
		if _, off := updates["is_active"]; off {
			res.Deactivated++
		}

		if err := db.WithContext(ctx).Model(&models.Voucher{}).Where("id = ?", v.ID).Updates(updates).Error; err != nil {
			return res, fmt.Errorf("update voucher %d: %w", v.ID, err)
		}
	}

	slog.Info("vouchers.cleanup_done",
		"scanned", res.Scanned,
		"normalized", res.Normalized,
		"deactivated", res.Deactivated,
		"conflicts", len(res.Conflicts),
	)
	return res, nil
}
