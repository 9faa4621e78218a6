package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode"

	"eathub/config"
	"eathub/jwt"
	"eathub/models"
	"eathub/respond"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// ValidateEmail checks the address shape only.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword requires 8-50 characters mixing upper, lower, digit and symbol, without spaces.
func ValidatePassword(password string) bool {
	if len(password) < 8 || len(password) > 50 {
		return false
	}

	var (
		isUpper   = false
		isLower   = false
		isNumber  = false
		isSpecial = false
		isSpace   = false
	)

	for _, s := range password {
		switch {
		case unicode.IsSpace(s):
			isSpace = true
		case unicode.IsUpper(s):
			isUpper = true
		case unicode.IsLower(s):
			isLower = true
		case unicode.IsDigit(s):
			isNumber = true
		case unicode.IsPunct(s) || unicode.IsSymbol(s):
			isSpecial = true
		default:
		}
	}

	return isUpper && isLower && isNumber && isSpecial && !isSpace
}

func isUserEmailExists(c *gin.Context, db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.WithContext(c).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// issueToken signs a token for user and stores it so logout can revoke it.
func issueToken(c *gin.Context, db *gorm.DB, auth config.AuthConfig, user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(auth.TokenTTL)
	token, err := jwt.GenerateToken(auth.JWTSecret, user.ID, user.Role, expiresAt)
	if err != nil {
		return "", time.Time{}, err
	}

	loginToken := models.LoginToken{
		Token:          token,
		ExpirationTime: expiresAt,
		UserID:         user.ID,
		Role:           user.Role,
	}
	if err := db.WithContext(c).Create(&loginToken).Error; err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func sessionResponse(c *gin.Context, status int, user *models.User, token string, expiresAt time.Time) {
	c.Header("Authorization", "Bearer "+token)
	respond.OK(c, status, gin.H{
		"user":      user,
		"token":     token,
		"expiresAt": expiresAt,
	})
}

func SignupHandler(c *gin.Context, db *gorm.DB, auth config.AuthConfig) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"max=100"`
		Phone    string `json:"phone" binding:"max=32"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !ValidateEmail(email) {
		respond.Fail(c, http.StatusBadRequest, "INVALID_EMAIL", "email address is not valid")
		return
	}
	if !ValidatePassword(req.Password) {
		respond.Fail(c, http.StatusBadRequest, "WEAK_PASSWORD",
			"password needs 8-50 characters with upper and lower case letters, a digit and a symbol")
		return
	}

	exists, err := isUserEmailExists(c, db, email)
	if err != nil {
		respond.Err(c, err)
		return
	}
	if exists {
		respond.Fail(c, http.StatusConflict, "EMAIL_TAKEN", "email is already registered")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respond.Err(c, err)
		return
	}

	user := models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: string(hashedPassword),
		Name:     strings.TrimSpace(req.Name),
		Phone:    strings.TrimSpace(req.Phone),
		Role:     models.RoleUser,
	}
	if err := db.WithContext(c).Create(&user).Error; err != nil {
		respond.Err(c, err)
		return
	}

	token, expiresAt, err := issueToken(c, db, auth, &user)
	if err != nil {
		respond.Err(c, err)
		return
	}
	sessionResponse(c, http.StatusCreated, &user, token, expiresAt)
}

func LoginHandler(c *gin.Context, db *gorm.DB, auth config.AuthConfig) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	var user models.User
	err := db.WithContext(c).Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "email or password is incorrect")
			return
		}
		respond.Err(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		respond.Fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "email or password is incorrect")
		return
	}

	token, expiresAt, err := issueToken(c, db, auth, &user)
	if err != nil {
		respond.Err(c, err)
		return
	}
	sessionResponse(c, http.StatusOK, &user, token, expiresAt)
}

// VerifyHandler checks a token from the body, or from the Authorization header when the body is empty.
func VerifyHandler(c *gin.Context, db *gorm.DB, auth config.AuthConfig) {
	var req struct {
		Token string `json:"token"`
	}
	_ = c.ShouldBindJSON(&req)
	token := strings.TrimSpace(req.Token)
	if token == "" {
		token = strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	}
	if token == "" {
		respond.Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "token is required")
		return
	}

	userID, _, err := jwt.VerifyToken(auth.JWTSecret, token, db.WithContext(c))
	if err != nil {
		respond.Fail(c, http.StatusUnauthorized, "INVALID_TOKEN", "token is invalid or expired")
		return
	}

	var user models.User
	if err := db.WithContext(c).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Fail(c, http.StatusUnauthorized, "INVALID_TOKEN", "account no longer exists")
			return
		}
		respond.Err(c, err)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"user": &user})
}

func LogOutHandler(c *gin.Context, db *gorm.DB) {
	token, exists := c.Get("Token")
	if !exists {
		respond.Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	result := db.WithContext(c).Where("token = ?", token).Delete(&models.LoginToken{})
	if result.Error != nil {
		respond.Err(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respond.Fail(c, http.StatusBadRequest, "ALREADY_LOGGED_OUT", "token not found or already logged out")
		return
	}

	c.Header("Authorization", "")
	respond.OK(c, http.StatusOK, nil)
}
