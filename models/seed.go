package models

import "gorm.io/gorm"

// DefaultGrade is assigned to profiles created through login.
const DefaultGrade = "Member"

// BootstrapAdminNickname identifies the seeded admin profile.
const BootstrapAdminNickname = "admin"

// defaultSettings are the rows seeded on first boot. Catalog values are
// JSON arrays stored as opaque text; admins fill them in via the
// settings endpoint.
var defaultSettings = []Setting{
	{Key: SettingSiteName, Value: "Raid Hall"},
	{Key: SettingSiteDescription, Value: "Guild community and raid scheduling board"},
	{Key: SettingThemeColor, Value: "#7c3aed"},
	{Key: SettingRaidCatalog, Value: "[]"},
	{Key: SettingGuardianCatalog, Value: "[]"},
	{Key: SettingClassCatalog, Value: "[]"},
	{Key: SettingGradeList, Value: `["Master","Officer","Member","Guest"]`},
	{Key: SettingBossRecords, Value: `[{"name":"Valtan","difficulty":"Hard","cleared":false},{"name":"Vykas","difficulty":"Hard","cleared":false},{"name":"Kakul-Saydon","difficulty":"Normal","cleared":false}]`},
}

// Seed inserts default settings and the bootstrap admin profile using
// insert-if-absent semantics, so repeated boots never duplicate or
// overwrite rows an admin has since edited.
func Seed(db *gorm.DB) error {
	for _, s := range defaultSettings {
		if err := db.Where(Setting{Key: s.Key}).Attrs(Setting{Value: s.Value}).FirstOrCreate(&Setting{}).Error; err != nil {
			return err
		}
	}

	admin := Profile{
		Nickname:          BootstrapAdminNickname,
		Grade:             "Master",
		CanManagePosts:    true,
		CanManageMembers:  true,
		CanManageSettings: true,
	}
	return db.Where(Profile{Nickname: BootstrapAdminNickname}).Attrs(admin).FirstOrCreate(&Profile{}).Error
}
