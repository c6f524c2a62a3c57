package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soraien/raidhall/roster"
	"github.com/soraien/raidhall/utils"
)

// RaidController exposes the roster manager over HTTP.
type RaidController struct {
	roster *roster.Manager
}

// NewRaidController creates a new RaidController instance.
func NewRaidController(m *roster.Manager) *RaidController {
	return &RaidController{roster: m}
}

// ListSchedules returns all schedules ordered by (date, time), each with
// its embedded participant list.
func (r *RaidController) ListSchedules(ctx *gin.Context) {
	schedules, err := r.roster.ListSchedules()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to list schedules")
		return
	}
	ctx.JSON(http.StatusOK, schedules)
}

// CreateSchedule inserts a schedule and returns its id.
func (r *RaidController) CreateSchedule(ctx *gin.Context) {
	var req struct {
		RaidName        string `json:"raid_name" binding:"required"`
		Date            string `json:"date" binding:"required"`
		Time            string `json:"time" binding:"required"`
		Difficulty      string `json:"difficulty" binding:"required"`
		MaxParticipants int    `json:"max_participants"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid request payload")
		return
	}

	id, err := r.roster.CreateSchedule(roster.CreateScheduleInput{
		RaidName:        req.RaidName,
		Date:            req.Date,
		Time:            req.Time,
		Difficulty:      req.Difficulty,
		MaxParticipants: req.MaxParticipants,
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to create schedule")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"id": id})
}

// DeleteSchedule removes a schedule and, via cascade, its participants.
func (r *RaidController) DeleteSchedule(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40061, "invalid schedule id")
		return
	}
	if err := r.roster.DeleteSchedule(uint(id)); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to delete schedule")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// AddParticipant inserts a roster slot and returns its id.
func (r *RaidController) AddParticipant(ctx *gin.Context) {
	scheduleID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40062, "invalid schedule id")
		return
	}

	var req struct {
		CharacterName string `json:"character_name" binding:"required"`
		Position      string `json:"position" binding:"required"`
		ItemLevel     string `json:"item_level" binding:"required"`
		ClassName     string `json:"class_name" binding:"required"`
		Synergy       string `json:"synergy" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40063, "invalid request payload")
		return
	}

	id, err := r.roster.AddParticipant(roster.AddParticipantInput{
		ScheduleID:    uint(scheduleID),
		CharacterName: req.CharacterName,
		Position:      req.Position,
		ItemLevel:     req.ItemLevel,
		ClassName:     req.ClassName,
		Synergy:       req.Synergy,
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to add participant")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"id": id})
}

// RemoveParticipant removes a single roster slot.
func (r *RaidController) RemoveParticipant(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40064, "invalid participant id")
		return
	}
	if err := r.roster.RemoveParticipant(uint(id)); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50064, "failed to remove participant")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
