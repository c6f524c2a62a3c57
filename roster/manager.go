// Package roster owns the raid schedule and participant lifecycle.
package roster

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/soraien/raidhall/models"
)

// Manager provides schedule and participant operations over the store.
// Capacity is advisory: nothing here rejects a roster that exceeds
// max_participants, and duplicate character names are allowed.
type Manager struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewManager creates a roster Manager.
func NewManager(db *gorm.DB, logger *zap.Logger) *Manager {
	return &Manager{db: db, logger: logger}
}

// CreateScheduleInput carries the fields for a new schedule. Date and time
// are opaque strings stored verbatim. MaxParticipants falls back to the
// default when zero or negative.
type CreateScheduleInput struct {
	RaidName        string
	Date            string
	Time            string
	Difficulty      string
	MaxParticipants int
}

// AddParticipantInput carries the fields for a new roster slot.
type AddParticipantInput struct {
	ScheduleID    uint
	CharacterName string
	Position      string
	ItemLevel     string
	ClassName     string
	Synergy       string
}

// ListSchedules returns all schedules ordered by (date, time), stable by
// insertion order for equal slots, each composed with its full participant
// list via a second read keyed by schedule id. Participant order within a
// schedule is whatever the store returns.
func (m *Manager) ListSchedules() ([]models.RaidSchedule, error) {
	var schedules []models.RaidSchedule
	if err := m.db.Order("date ASC, time ASC, id ASC").Find(&schedules).Error; err != nil {
		return nil, err
	}
	for i := range schedules {
		var participants []models.RaidParticipant
		if err := m.db.Where("schedule_id = ?", schedules[i].ID).Find(&participants).Error; err != nil {
			return nil, err
		}
		schedules[i].Participants = participants
	}
	return schedules, nil
}

// CreateSchedule inserts a schedule and returns its id.
func (m *Manager) CreateSchedule(in CreateScheduleInput) (uint, error) {
	if in.MaxParticipants <= 0 {
		in.MaxParticipants = models.DefaultMaxParticipants
	}
	schedule := models.RaidSchedule{
		RaidName:        in.RaidName,
		Date:            in.Date,
		Time:            in.Time,
		Difficulty:      in.Difficulty,
		MaxParticipants: in.MaxParticipants,
	}
	if err := m.db.Create(&schedule).Error; err != nil {
		return 0, err
	}
	m.logger.Info("raid schedule created",
		zap.Uint("schedule_id", schedule.ID),
		zap.String("raid", schedule.RaidName),
		zap.String("date", schedule.Date),
		zap.String("time", schedule.Time))
	return schedule.ID, nil
}

// DeleteSchedule removes a schedule. The database cascade removes its
// participants.
func (m *Manager) DeleteSchedule(id uint) error {
	if err := m.db.Delete(&models.RaidSchedule{}, id).Error; err != nil {
		return err
	}
	m.logger.Info("raid schedule deleted", zap.Uint("schedule_id", id))
	return nil
}

// AddParticipant inserts a roster slot and returns its id.
func (m *Manager) AddParticipant(in AddParticipantInput) (uint, error) {
	p := models.RaidParticipant{
		ScheduleID:    in.ScheduleID,
		CharacterName: in.CharacterName,
		Position:      in.Position,
		ItemLevel:     in.ItemLevel,
		ClassName:     in.ClassName,
		Synergy:       in.Synergy,
	}
	if err := m.db.Create(&p).Error; err != nil {
		return 0, err
	}
	return p.ID, nil
}

// RemoveParticipant removes a single roster slot. The parent schedule is
// untouched.
func (m *Manager) RemoveParticipant(id uint) error {
	return m.db.Delete(&models.RaidParticipant{}, id).Error
}
