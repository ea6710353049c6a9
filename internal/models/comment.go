package models

import "time"

// Comment is an unauthenticated visitor comment on a post.
// Comments are append-only from the public API's perspective.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	AuthorName string    `gorm:"size:120;not null" json:"author_name"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
