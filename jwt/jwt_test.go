package jwt

import (
	"errors"
	"testing"
	"time"

	"eathub/models"
	"eathub/testdb"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", models.RoleAdmin, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	userID, role, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if userID != "user-1" || role != models.RoleAdmin {
		t.Errorf("got %q/%q", userID, role)
	}

	if _, _, err := ParseToken("other-secret", token); err == nil {
		t.Error("wrong secret accepted")
	}
}

func TestParseExpired(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", models.RoleUser, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := ParseToken("secret", token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestGenerateRequiresSecret(t *testing.T) {
	if _, err := GenerateToken("", "user-1", models.RoleUser, time.Now().Add(time.Hour)); err == nil {
		t.Error("empty secret accepted")
	}
}

func TestVerifyTokenChecksRevocation(t *testing.T) {
	db := testdb.Open(t)
	exp := time.Now().Add(time.Hour)
	token, err := GenerateToken("secret", "user-2", models.RoleUser, exp)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := VerifyToken("secret", token, db); !errors.Is(err, ErrRevoked) {
		t.Fatalf("unstored token: got %v, want ErrRevoked", err)
	}

	record := models.LoginToken{Token: token, ExpirationTime: exp, UserID: "user-2", Role: models.RoleUser}
	if err := db.Create(&record).Error; err != nil {
		t.Fatal(err)
	}
	userID, _, err := VerifyToken("secret", token, db)
	if err != nil || userID != "user-2" {
		t.Fatalf("VerifyToken = %q, %v", userID, err)
	}

	db.Delete(&models.LoginToken{}, "token = ?", token)
	if _, _, err := VerifyToken("secret", token, db); !errors.Is(err, ErrRevoked) {
		t.Errorf("after logout: got %v", err)
	}
}
