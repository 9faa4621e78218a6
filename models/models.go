package models

// All lists every table for auto-migration.
func All() []any {
	return []any{
		&User{},
		&LoginToken{},
		&Category{},
		&MenuItem{},
		&Announcement{},
		&Order{},
		&OrderItem{},
		&Voucher{},
		&Reward{},
		&UserRewards{},
		&RewardTransaction{},
		&Feedback{},
	}
}
