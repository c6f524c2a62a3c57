package models

import "time"

// DefaultMaxParticipants is the advisory roster capacity applied when a
// schedule is created without one. It is display-only and never enforced.
const DefaultMaxParticipants = 8

// RaidSchedule is a single planned raid event. Date and time are stored
// verbatim as opaque strings; ordering compares them lexically.
type RaidSchedule struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	RaidName        string            `gorm:"size:64;not null" json:"raid_name"`
	Date            string            `gorm:"size:16;not null;index:idx_schedule_slot" json:"date"`
	Time            string            `gorm:"size:16;not null;index:idx_schedule_slot" json:"time"`
	Difficulty      string            `gorm:"size:32;not null" json:"difficulty"`
	MaxParticipants int               `gorm:"not null;default:8" json:"max_participants"`
	CreatedAt       time.Time         `json:"created_at"`
	Participants    []RaidParticipant `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE;" json:"participants"`
}
