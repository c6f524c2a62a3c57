package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/soraien/raidhall/config"
	"github.com/soraien/raidhall/models"
	"github.com/soraien/raidhall/utils"
)

// maxUploadSize caps image uploads at 10MB.
const maxUploadSize = 10 * 1024 * 1024

// UploadController stores opaque image payloads on local disk and records
// them for later cleanup.
type UploadController struct {
	db *gorm.DB
}

// NewUploadController creates a new UploadController instance.
func NewUploadController(db *gorm.DB) *UploadController {
	return &UploadController{db: db}
}

// UploadImage saves a multipart file and returns its public URL. The
// payload is passed through untouched.
func (u *UploadController) UploadImage(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "no file uploaded")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		utils.Error(ctx, http.StatusBadRequest, 40051, "file size exceeds 10MB")
		return
	}

	cfg := config.Get()
	now := time.Now()
	baseDir := filepath.Join(cfg.UploadDir, now.Format("2006"), now.Format("01"))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to create upload directory")
		return
	}

	fname := filepath.Base(header.Filename)
	if fname == "." || fname == "" {
		fname = fmt.Sprintf("file_%d", now.UnixNano())
	}
	safeName := fmt.Sprintf("%d_%s", now.UnixNano(), fname)
	dstPath := filepath.Join(baseDir, safeName)

	out, err := os.Create(dstPath)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to save file")
		return
	}
	defer out.Close()

	lr := &io.LimitedReader{R: file, N: maxUploadSize + 1}
	written, err := io.Copy(out, lr)
	if err != nil || written > maxUploadSize {
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusBadRequest, 40051, "failed to store file")
		return
	}

	ttl := cfg.UploadTTLMinutes
	if ttl <= 0 {
		ttl = 60
	}

	url := "/" + filepath.ToSlash(dstPath)
	record := models.UploadedFile{
		FilePath: dstPath,
		URL:      url,
		ExpireAt: now.Add(time.Duration(ttl) * time.Minute),
	}
	if err := u.db.Create(&record).Error; err != nil {
		utils.Sugar.Warnf("failed to record upload %s: %v", dstPath, err)
	}

	ctx.JSON(http.StatusOK, gin.H{"url": url})
}
