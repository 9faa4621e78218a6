package jwt

import (
	"errors"
	"fmt"
	"time"

	"eathub/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var ErrRevoked = errors.New("token has been revoked")

// GenerateToken signs an HS256 token carrying the user id and role.
func GenerateToken(secret, userID, role string, expTime time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userID": userID,
		"role":   role,
		"exp":    expTime.Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseToken checks signature and expiry only.
func ParseToken(secret, tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", "", err
	}
	if !token.Valid {
		return "", "", jwt.ErrTokenSignatureInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", jwt.ErrTokenInvalidClaims
	}
	userID, _ := claims["userID"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return "", "", fmt.Errorf("%w: missing userID", jwt.ErrTokenInvalidClaims)
	}
	return userID, role, nil
}

// VerifyToken validates the token and makes sure it has not been logged out.
func VerifyToken(secret, tokenString string, db *gorm.DB) (string, string, error) {
	userID, role, err := ParseToken(secret, tokenString)
	if err != nil {
		return "", "", err
	}

	//Logout deletes the stored token
	var loginToken models.LoginToken
	err = db.Where("token = ?", tokenString).First(&loginToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrRevoked
		}
		return "", "", err
	}

	return userID, role, nil
}
