package handlers

import (
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"eathub/cache"
	"eathub/models"
	"eathub/reports"
	"eathub/respond"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxImageBytes = 2 << 20

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

func isValidImageExtensions(file *multipart.FileHeader) bool {
	allowExtensions := []string{".jpg", ".jpeg", ".png", ".webp"}
	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowExt := range allowExtensions {
		if fileExt == allowExt {
			return true
		}
	}
	return false
}

// ImageDataURI sniffs the content type and encodes data as a data URI.
func ImageDataURI(data []byte) (string, error) {
	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return "", errors.New("unsupported image type " + mtype.String())
	}
	return "data:" + mtype.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// UploadImageHandler converts an uploaded image into a data URI.
// With an itemId form field the image is stored on that menu item.
func UploadImageHandler(c *gin.Context, db *gorm.DB, store *cache.Cache) {
	file, err := c.FormFile("image")
	if err != nil {
		respond.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "image file is required")
		return
	}
	if !isValidImageExtensions(file) {
		respond.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "image must be jpg, png or webp")
		return
	}
	if file.Size > maxImageBytes {
		respond.Fail(c, http.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE", "image must be at most 2MB")
		return
	}

	f, err := file.Open()
	if err != nil {
		respond.Err(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		respond.Err(c, err)
		return
	}
	if len(data) > maxImageBytes {
		respond.Fail(c, http.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE", "image must be at most 2MB")
		return
	}

	uri, err := ImageDataURI(data)
	if err != nil {
		respond.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rawID := c.PostForm("itemId")
	if rawID == "" {
		respond.OK(c, http.StatusCreated, gin.H{"image": uri})
		return
	}
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		respond.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid itemId")
		return
	}
	result := db.WithContext(c).Model(&models.MenuItem{}).Where("id = ?", id).Update("image", uri)
	if result.Error != nil {
		respond.Err(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respond.Fail(c, http.StatusNotFound, "NOT_FOUND", "menu item not found")
		return
	}
	store.InvalidateMenu(c)
	respond.OK(c, http.StatusCreated, gin.H{"image": uri, "itemId": id})
}

func GetFeedbackListHandler(c *gin.Context, db *gorm.DB) {
	limit, ok := queryInt(c, "limit", 50)
	if !ok {
		return
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var list []models.Feedback
	err := db.WithContext(c).Order("created_at DESC, id DESC").Limit(limit).Find(&list).Error
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, http.StatusOK, list)
}

func GetStatsHandler(c *gin.Context, reporter *reports.Reporter) {
	dashboard, err := reporter.Dashboard(c)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, http.StatusOK, dashboard)
}
