package models

import "encoding/json"

// Setting is one named configuration entry. Values are always text;
// some encode JSON arrays the store treats as opaque strings.
type Setting struct {
	Key   string `gorm:"primaryKey;size:64" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`
}

// Well-known setting keys.
const (
	SettingSiteName        = "siteName"
	SettingSiteDescription = "siteDescription"
	SettingThemeColor      = "themeColor"
	SettingRaidCatalog     = "raidCatalog"
	SettingGuardianCatalog = "guardianCatalog"
	SettingClassCatalog    = "classCatalog"
	SettingGradeList       = "gradeList"
	SettingBossRecords     = "bossRecords"
)

// SettingsMap is the full key→value mapping with typed accessors for the
// known keys, layered over the raw string store.
type SettingsMap map[string]string

func (m SettingsMap) SiteName() string        { return m[SettingSiteName] }
func (m SettingsMap) SiteDescription() string { return m[SettingSiteDescription] }
func (m SettingsMap) ThemeColor() string      { return m[SettingThemeColor] }

// StringList decodes a JSON-array-valued setting. Unknown keys and
// malformed values both yield an empty list.
func (m SettingsMap) StringList(key string) []string {
	var out []string
	if raw, ok := m[key]; ok {
		_ = json.Unmarshal([]byte(raw), &out)
	}
	return out
}

// Grades returns the ordered grade names configured for the site.
func (m SettingsMap) Grades() []string { return m.StringList(SettingGradeList) }
