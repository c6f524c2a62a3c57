package models

import "time"

// Post represents an announcement or board post. The author is a display
// name, not a foreign key: identity is owned by whoever logged in with it.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Category    string    `gorm:"size:32;not null" json:"category"`
	SubCategory string    `gorm:"size:32" json:"sub_category"`
	Author      string    `gorm:"size:64;not null" json:"author"`
	CreatedAt   time.Time `json:"created_at"`
	Comments    []Comment `gorm:"constraint:OnDelete:CASCADE;" json:"comments,omitempty"`
}
