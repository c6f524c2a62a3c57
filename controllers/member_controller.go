package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/soraien/raidhall/models"
	"github.com/soraien/raidhall/utils"
)

// MemberController manages member profiles and the find-or-create login.
// Grades and permission flags are stored and returned but never checked
// against request identity; enforcement belongs to a future layer.
type MemberController struct {
	db *gorm.DB
}

// NewMemberController creates a new MemberController instance.
func NewMemberController(db *gorm.DB) *MemberController {
	return &MemberController{db: db}
}

// Login finds the profile for a nickname or creates one with the default
// grade and no permissions. A second login with the same nickname returns
// the same profile. The issued token is informational only.
func (m *MemberController) Login(ctx *gin.Context) {
	var req struct {
		Nickname string `json:"nickname" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}
	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		utils.Error(ctx, http.StatusBadRequest, 40041, "nickname cannot be empty")
		return
	}

	var profile models.Profile
	err := m.db.Where("nickname = ?", nickname).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{Nickname: nickname, Grade: models.DefaultGrade}
		err = m.db.Create(&profile).Error
		if err == nil {
			utils.Sugar.Infof("new member registered nickname=%s id=%s", nickname, profile.ID)
		}
	}
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "login failed")
		return
	}

	token, err := utils.GenerateToken(profile.ID, profile.Nickname, 24*time.Hour)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to issue token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"profile": profile, "token": token})
}

// ListMembers returns all profiles, oldest first.
func (m *MemberController) ListMembers(ctx *gin.Context) {
	var profiles []models.Profile
	if err := m.db.Order("created_at ASC").Find(&profiles).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to list members")
		return
	}
	ctx.JSON(http.StatusOK, profiles)
}

// UpdateMember applies a partial update of grade and permission flags.
// Absent fields are left unchanged.
func (m *MemberController) UpdateMember(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	if id == "" {
		utils.Error(ctx, http.StatusBadRequest, 40042, "missing member id")
		return
	}

	var req struct {
		Grade             *string `json:"grade"`
		CanManagePosts    *bool   `json:"can_manage_posts"`
		CanManageMembers  *bool   `json:"can_manage_members"`
		CanManageSettings *bool   `json:"can_manage_settings"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40043, "invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	if req.Grade != nil {
		updates["grade"] = *req.Grade
	}
	if req.CanManagePosts != nil {
		updates["can_manage_posts"] = *req.CanManagePosts
	}
	if req.CanManageMembers != nil {
		updates["can_manage_members"] = *req.CanManageMembers
	}
	if req.CanManageSettings != nil {
		updates["can_manage_settings"] = *req.CanManageSettings
	}

	if len(updates) > 0 {
		if err := m.db.Model(&models.Profile{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to update member")
			return
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteMember removes a profile.
func (m *MemberController) DeleteMember(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	if id == "" {
		utils.Error(ctx, http.StatusBadRequest, 40044, "missing member id")
		return
	}
	if err := m.db.Where("id = ?", id).Delete(&models.Profile{}).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to delete member")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
