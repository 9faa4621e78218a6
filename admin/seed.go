// Package admin holds the maintenance tasks run from the command line.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"eathub/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SeedResult struct {
	Categories int
	MenuItems  int
	Vouchers   int
	Rewards    int
	AdminUser  bool
}

func ptr[T any](v T) *T { return &v }

var seedCategories = []models.Category{
	{Name: "Burgers", Icon: "🍔", Color: "#f97316", SortOrder: 1},
	{Name: "Pizza", Icon: "🍕", Color: "#ef4444", SortOrder: 2},
	{Name: "Sides", Icon: "🍟", Color: "#eab308", SortOrder: 3},
	{Name: "Drinks", Icon: "🥤", Color: "#3b82f6", SortOrder: 4},
	{Name: "Desserts", Icon: "🍰", Color: "#ec4899", SortOrder: 5},
}

var seedMenu = []models.MenuItem{
	{Name: "Classic Burger", Description: "Beef patty, cheddar, pickles", Price: 12.99, Category: "Burgers",
		Ingredients: []string{"beef", "cheddar", "pickles", "bun"}, Available: true, Featured: true, FeaturedOrder: 1},
	{Name: "Veggie Burger", Description: "Black bean patty with avocado", Price: 11.49, Category: "Burgers",
		Ingredients: []string{"black beans", "avocado", "lettuce", "bun"}, Available: true},
	{Name: "Margherita", Description: "Tomato, mozzarella, basil", Price: 14.5, DiscountPrice: ptr(12.5), Category: "Pizza",
		Ingredients: []string{"tomato", "mozzarella", "basil"}, Available: true, Featured: true, FeaturedOrder: 2},
	{Name: "Fries", Description: "Sea salt fries", Price: 3.5, Category: "Sides",
		Ingredients: []string{"potato", "salt"}, Available: true},
	{Name: "Lemonade", Description: "Fresh squeezed", Price: 2.75, Category: "Drinks",
		Ingredients: []string{"lemon", "sugar", "water"}, Available: true},
	{Name: "Cheesecake", Description: "New York style", Price: 5.25, Category: "Desserts",
		Ingredients: []string{"cream cheese", "biscuit"}, Available: true, Featured: true, FeaturedOrder: 3},
}

var seedVouchers = []models.Voucher{
	{Code: "WELCOME10", Description: "10% off your first order", DiscountType: models.DiscountPercentage,
		DiscountValue: 10, MinOrderAmount: 20, IsActive: true},
	{Code: "FIVEOFF", Description: "$5 off orders over $30", DiscountType: models.DiscountFixed,
		DiscountValue: 5, MinOrderAmount: 30, UsageLimit: ptr(100), IsActive: true},
}

var seedRewards = []models.Reward{
	{Name: "Free Fries", Description: "A side of fries on us", PointsCost: 5, IsActive: true},
	{Name: "Free Dessert", Description: "Any dessert", PointsCost: 10, IsActive: true},
	{Name: "Free Burger", Description: "Any burger", PointsCost: 25, IsActive: true},
}

// createIfMissing inserts row unless a row matching query already exists.
func createIfMissing[T any](ctx context.Context, db *gorm.DB, row *T, query string, args ...any) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(new(T)).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	return true, db.WithContext(ctx).Create(row).Error
}

// Seed inserts the starter catalog and the admin account. Rows that already exist are left alone.
func Seed(ctx context.Context, db *gorm.DB, adminEmail, adminPassword string) (SeedResult, error) {
	var res SeedResult

	for _, c := range seedCategories {
		created, err := createIfMissing(ctx, db, &c, "name = ?", c.Name)
		if err != nil {
			return res, fmt.Errorf("seed category %s: %w", c.Name, err)
		}
		if created {
			res.Categories++
		}
	}
	for _, item := range seedMenu {
		created, err := createIfMissing(ctx, db, &item, "name = ?", item.Name)
		if err != nil {
			return res, fmt.Errorf("seed menu item %s: %w", item.Name, err)
		}
		if created {
			res.MenuItems++
		}
	}
	for _, v := range seedVouchers {
		created, err := createIfMissing(ctx, db, &v, "code = ?", v.Code)
		if err != nil {
			return res, fmt.Errorf("seed voucher %s: %w", v.Code, err)
		}
		if created {
			res.Vouchers++
		}
	}
	for _, r := range seedRewards {
		created, err := createIfMissing(ctx, db, &r, "name = ?", r.Name)
		if err != nil {
			return res, fmt.Errorf("seed reward %s: %w", r.Name, err)
		}
		if created {
			res.Rewards++
		}
	}

	created, err := seedAdmin(ctx, db, adminEmail, adminPassword)
	if err != nil {
		return res, err
	}
	res.AdminUser = created

	slog.Info("seed.done",
		"categories", res.Categories,
		"menu_items", res.MenuItems,
		"vouchers", res.Vouchers,
		"rewards", res.Rewards,
		"admin_created", res.AdminUser,
	)
	return res, nil
}

func seedAdmin(ctx context.Context, db *gorm.DB, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		slog.Warn("seed.admin_skipped", "reason", "no admin email configured")
		return false, nil
	}
	if password == "" {
		return false, errors.New("seed admin: password is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	admin := models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: string(hashed),
		Name:     "Administrator",
		Role:     models.RoleAdmin,
	}
	created, err := createIfMissing(ctx, db, &admin, "email = ?", email)
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return created, nil
}
