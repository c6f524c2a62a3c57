package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/soraien/raidhall/models"
	"github.com/soraien/raidhall/testutil"
)

func setupSettingsRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.SetupTestDB(t)

	r := gin.New()
	sc := NewSettingsController(db)
	r.GET("/api/settings", sc.GetSettings)
	r.POST("/api/settings", sc.SetSettings)
	r.GET("/api/site", sc.GetSite)
	return r, db
}

func getSettings(t *testing.T, db *gorm.DB) models.SettingsMap {
	t.Helper()
	var rows []models.Setting
	require.NoError(t, db.Find(&rows).Error)
	m := make(models.SettingsMap, len(rows))
	for _, row := range rows {
		m[row.Key] = row.Value
	}
	return m
}

func TestGetSettings_ContainsSeededDefaults(t *testing.T) {
	r, _ := setupSettingsRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/settings", "")
	require.Equal(t, http.StatusOK, w.Code)

	var mapping map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mapping))
	assert.Equal(t, "Raid Hall", mapping[models.SettingSiteName])
	assert.Equal(t, "[]", mapping[models.SettingRaidCatalog])
	assert.NotEmpty(t, mapping[models.SettingGradeList])
}

func TestSetSettings_DisjointKeysDoNotClobber(t *testing.T) {
	r, db := setupSettingsRouter(t)

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/api/settings", `{"a":"1"}`).Code)
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/api/settings", `{"b":"2"}`).Code)

	mapping := getSettings(t, db)
	assert.Equal(t, "1", mapping["a"])
	assert.Equal(t, "2", mapping["b"])
}

func TestSetSettings_ReplacesExistingKey(t *testing.T) {
	r, db := setupSettingsRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/settings", `{"siteName":"New Name"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	mapping := getSettings(t, db)
	assert.Equal(t, "New Name", mapping.SiteName())
	// unrelated seeded keys untouched
	assert.Equal(t, "#7c3aed", mapping.ThemeColor())
}

func TestSetSettings_EmptyMappingRejected(t *testing.T) {
	r, _ := setupSettingsRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/settings", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSite_TypedAccessors(t *testing.T) {
	r, _ := setupSettingsRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/site", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Name       string   `json:"name"`
		ThemeColor string   `json:"theme_color"`
		Grades     []string `json:"grades"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Raid Hall", resp.Name)
	assert.Equal(t, "#7c3aed", resp.ThemeColor)
	assert.Equal(t, []string{"Master", "Officer", "Member", "Guest"}, resp.Grades)
}
