package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is a persistent member identity. The id is an opaque token
// generated once at creation, stable for the lifetime of the member.
// Grade and the permission flags are display/bookkeeping state: no
// request path checks them before mutating anything.
type Profile struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	Nickname          string    `gorm:"size:64;not null;index" json:"nickname"`
	Grade             string    `gorm:"size:32;not null" json:"grade"`
	CanManagePosts    bool      `gorm:"default:false" json:"can_manage_posts"`
	CanManageMembers  bool      `gorm:"default:false" json:"can_manage_members"`
	CanManageSettings bool      `gorm:"default:false" json:"can_manage_settings"`
	CreatedAt         time.Time `json:"created_at"`
}

// BeforeCreate assigns the opaque id when the caller has not.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
