package models

// RaidParticipant is one roster slot on a schedule. Duplicate character
// names and rosters above the schedule's capacity are allowed. Rows are
// removed by the database cascade when the parent schedule is deleted.
type RaidParticipant struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ScheduleID    uint   `gorm:"index;not null" json:"schedule_id"`
	CharacterName string `gorm:"size:64;not null" json:"character_name"`
	Position      string `gorm:"size:32;not null" json:"position"`
	ItemLevel     string `gorm:"size:16;not null" json:"item_level"`
	ClassName     string `gorm:"size:32;not null" json:"class_name"`
	Synergy       string `gorm:"size:64;not null" json:"synergy"`
}
