package utils

import (
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/soraien/raidhall/config"
	"github.com/soraien/raidhall/models"
)

const uploadSweepBatch = 100

// StartUploadCleaner launches a background goroutine that periodically
// removes expired uploads from disk and from the record table. Best-effort:
// failures are logged and retried on the next tick.
func StartUploadCleaner(interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		for {
			// sleep first so startup never races the sweep
			time.Sleep(interval)
			if !config.Get().UploadCleanupEnabled {
				continue
			}
			SweepExpiredUploads(config.DB(), time.Now())
		}
	}()
}

// SweepExpiredUploads deletes uploads whose expiry has passed, at most one
// batch per call. The row is removed even when the file is already gone.
// Returns the number of rows swept.
func SweepExpiredUploads(db *gorm.DB, now time.Time) int {
	var items []models.UploadedFile
	if err := db.Where("expire_at <= ?", now).Limit(uploadSweepBatch).Find(&items).Error; err != nil {
		Sugar.Warnf("upload cleaner query failed: %v", err)
		return 0
	}

	swept := 0
	for _, it := range items {
		if it.FilePath != "" {
			_ = os.Remove(it.FilePath)
		}
		if err := db.Delete(&models.UploadedFile{}, it.ID).Error; err != nil {
			Sugar.Warnf("upload cleaner delete row failed: %v", err)
			continue
		}
		swept++
	}
	return swept
}
