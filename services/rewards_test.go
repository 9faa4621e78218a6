package services

import (
	"context"
	"testing"

	"eathub/models"
	"eathub/testdb"
)

func TestAwardPointsAccumulates(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	for _, total := range []float64{25.98, 104.5, 9.99} {
		if _, err := AwardPoints(ctx, db, "u1", "ORD-1", total); err != nil {
			t.Fatalf("AwardPoints(%v): %v", total, err)
		}
	}
	balance, err := GetUserRewards(ctx, db, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if balance.Points != 12 || balance.LifetimeEarned != 12 {
		t.Errorf("balance = %+v, want 12/12", balance)
	}

	txs, err := ListTransactions(ctx, db, "u1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 2 {
		t.Errorf("transactions = %d, want 2 (zero-point orders are not recorded)", len(txs))
	}
}

func TestRedeemReward(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	reward := models.Reward{Name: "Free Drink", PointsCost: 5, IsActive: true}
	if err := db.Create(&reward).Error; err != nil {
		t.Fatal(err)
	}

	if _, _, err := RedeemReward(ctx, db, "u2", reward.ID); CodeOf(err) != "INSUFFICIENT_POINTS" {
		t.Fatalf("empty balance: %v", err)
	}

	if _, err := AwardPoints(ctx, db, "u2", "ORD-2", 70); err != nil {
		t.Fatal(err)
	}
	balance, tx, err := RedeemReward(ctx, db, "u2", reward.ID)
	if err != nil {
		t.Fatalf("RedeemReward: %v", err)
	}
	if balance.Points != 2 || balance.LifetimeEarned != 7 {
		t.Errorf("balance = %+v, want 2 points, 7 lifetime", balance)
	}
	if tx.Type != models.RewardTransactionRedeem || tx.Points != -5 {
		t.Errorf("transaction = %+v", tx)
	}

	if _, _, err := RedeemReward(ctx, db, "u2", 999); CodeOf(err) != "NOT_FOUND" {
		t.Errorf("missing reward: %v", err)
	}
	if _, _, err := RedeemReward(ctx, db, "", reward.ID); CodeOf(err) != "VALIDATION_ERROR" {
		t.Errorf("missing user: %v", err)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	mains := models.Category{Name: "Mains"}
	sides := models.Category{Name: "Sides"}
	db.Create(&mains)
	db.Create(&sides)
	db.Create(&models.MenuItem{Name: "Burger", Price: 10, Category: "Mains", Available: true})

	if err := DeleteCategory(ctx, db, mains.ID); CodeOf(err) != "CATEGORY_IN_USE" {
		t.Errorf("in use: %v", err)
	}
	if err := DeleteCategory(ctx, db, sides.ID); err != nil {
		t.Errorf("unused: %v", err)
	}
	if err := DeleteCategory(ctx, db, sides.ID); CodeOf(err) != "NOT_FOUND" {
		t.Errorf("deleted twice: %v", err)
	}
}
