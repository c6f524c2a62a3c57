package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/soraien/raidhall/models"
	"github.com/soraien/raidhall/utils"
)

// SettingsController serves the site's key-value configuration store.
type SettingsController struct {
	db *gorm.DB
}

// NewSettingsController creates a new SettingsController instance.
func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{db: db}
}

// GetSettings returns the full key→value mapping.
func (s *SettingsController) GetSettings(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes("cache:settings:all"); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	mapping, err := s.load()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load settings")
		return
	}

	utils.CacheSetJSON("cache:settings:all", mapping, 0)
	ctx.JSON(http.StatusOK, mapping)
}

// SetSettings upserts each supplied key. Keys absent from the request are
// untouched, so concurrent writers of disjoint keys never clobber each
// other.
func (s *SettingsController) SetSettings(ctx *gin.Context) {
	var mapping map[string]string
	if err := ctx.ShouldBindJSON(&mapping); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}
	if len(mapping) == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40031, "no settings supplied")
		return
	}

	for key, value := range mapping {
		row := models.Setting{Key: key, Value: value}
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&row).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to save settings")
			return
		}
	}

	utils.InvalidateByPrefix("cache:settings:")
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// GetSite returns the typed site metadata read through the settings
// accessors, for page chrome that does not need the raw mapping.
func (s *SettingsController) GetSite(ctx *gin.Context) {
	mapping, err := s.load()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to load settings")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"name":        mapping.SiteName(),
		"description": mapping.SiteDescription(),
		"theme_color": mapping.ThemeColor(),
		"grades":      mapping.Grades(),
	})
}

func (s *SettingsController) load() (models.SettingsMap, error) {
	var rows []models.Setting
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	mapping := make(models.SettingsMap, len(rows))
	for _, row := range rows {
		mapping[row.Key] = row.Value
	}
	return mapping, nil
}
