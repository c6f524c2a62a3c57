package utils_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soraien/raidhall/models"
	"github.com/soraien/raidhall/testutil"
	"github.com/soraien/raidhall/utils"
)

func TestSweepExpiredUploads_RemovesExpiredFilesAndRows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	dir := t.TempDir()

	expiredPath := filepath.Join(dir, "old.png")
	require.NoError(t, os.WriteFile(expiredPath, []byte("x"), 0o644))
	freshPath := filepath.Join(dir, "new.png")
	require.NoError(t, os.WriteFile(freshPath, []byte("x"), 0o644))

	now := time.Now()
	expired := models.UploadedFile{FilePath: expiredPath, URL: "/static/uploads/old.png", ExpireAt: now.Add(-time.Minute)}
	fresh := models.UploadedFile{FilePath: freshPath, URL: "/static/uploads/new.png", ExpireAt: now.Add(time.Hour)}
	require.NoError(t, db.Create(&expired).Error)
	require.NoError(t, db.Create(&fresh).Error)

	swept := utils.SweepExpiredUploads(db, now)
	assert.Equal(t, 1, swept)

	_, err := os.Stat(expiredPath)
	assert.True(t, os.IsNotExist(err), "expired file must be removed")
	_, err = os.Stat(freshPath)
	assert.NoError(t, err, "unexpired file must survive")

	var count int64
	require.NoError(t, db.Model(&models.UploadedFile{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSweepExpiredUploads_MissingFileStillDropsRow(t *testing.T) {
	db := testutil.SetupTestDB(t)

	gone := models.UploadedFile{
		FilePath: filepath.Join(t.TempDir(), "never-written.png"),
		URL:      "/static/uploads/never-written.png",
		ExpireAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, db.Create(&gone).Error)

	swept := utils.SweepExpiredUploads(db, time.Now())
	assert.Equal(t, 1, swept)

	var count int64
	require.NoError(t, db.Model(&models.UploadedFile{}).Count(&count).Error)
	assert.Zero(t, count)
}
