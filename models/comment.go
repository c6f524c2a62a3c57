package models

import "time"

// Comment is a reply to a post. Rows are removed by the database cascade
// when the parent post is deleted.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Author    string    `gorm:"size:64;not null" json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
