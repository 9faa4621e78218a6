// Package reports runs the admin dashboard aggregates as plain SQL.
package reports

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type StatusSummary struct {
	Status  string  `db:"status" json:"status"`
	Orders  int     `db:"orders" json:"orders"`
	Revenue float64 `db:"revenue" json:"revenue"`
}

type TopItem struct {
	Name     string  `db:"name" json:"name"`
	Quantity int     `db:"quantity" json:"quantity"`
	Revenue  float64 `db:"revenue" json:"revenue"`
}

type Dashboard struct {
	TotalOrders   int             `json:"totalOrders"`
	TotalRevenue  float64         `json:"totalRevenue"`
	AverageOrder  float64         `json:"averageOrder"`
	ByStatus      []StatusSummary `json:"byStatus"`
	TopItems      []TopItem       `json:"topItems"`
	PointsIssued  int             `json:"pointsIssued"`
	VouchersInUse int             `json:"vouchersInUse"`
}

type Reporter struct {
	db *sqlx.DB
}

// sqlx needs the driver name to pick placeholders.
func driverName(dialect string) string {
	switch dialect {
	case "sqlite":
		return "sqlite3"
	case "postgres":
		return "postgres"
	default:
		return "mysql"
	}
}

// New shares the gorm connection pool.
func New(gdb *gorm.DB) (*Reporter, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("reports: %w", err)
	}
	return &Reporter{db: sqlx.NewDb(sqlDB, driverName(gdb.Dialector.Name()))}, nil
}

func (r *Reporter) OrdersByStatus(ctx context.Context) ([]StatusSummary, error) {
	const q = `
		SELECT status, COUNT(*) AS orders, COALESCE(SUM(total_amount), 0) AS revenue
		FROM orders
		GROUP BY status
		ORDER BY status`
	var rows []StatusSummary
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("OrdersByStatus failed: %w", err)
	}
	return rows, nil
}

func (r *Reporter) TopItems(ctx context.Context, limit int) ([]TopItem, error) {
	if limit <= 0 {
		limit = 5
	}
	q := r.db.Rebind(`
		SELECT name, SUM(quantity) AS quantity, COALESCE(SUM(line_total), 0) AS revenue
		FROM order_items
		GROUP BY name
		ORDER BY quantity DESC, name
		LIMIT ?`)
	var rows []TopItem
	if err := r.db.SelectContext(ctx, &rows, q, limit); err != nil {
		return nil, fmt.Errorf("TopItems failed: %w", err)
	}
	return rows, nil
}

func (r *Reporter) Dashboard(ctx context.Context) (*Dashboard, error) {
	byStatus, err := r.OrdersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	top, err := r.TopItems(ctx, 5)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{ByStatus: byStatus, TopItems: top}
	for _, s := range byStatus {
		d.TotalOrders += s.Orders
		d.TotalRevenue += s.Revenue
	}
	if d.TotalOrders > 0 {
		d.AverageOrder = float64(int(d.TotalRevenue/float64(d.TotalOrders)*100+0.5)) / 100
	}

	err = r.db.GetContext(ctx, &d.PointsIssued,
		r.db.Rebind(`SELECT COALESCE(SUM(points), 0) FROM reward_transactions WHERE type = ?`), "earn")
	if err != nil {
		return nil, fmt.Errorf("points issued failed: %w", err)
	}
	err = r.db.GetContext(ctx, &d.VouchersInUse,
		r.db.Rebind(`SELECT COUNT(*) FROM vouchers WHERE is_active = ? AND used_count > 0`), true)
	if err != nil {
		return nil, fmt.Errorf("vouchers in use failed: %w", err)
	}
	return d, nil
}
