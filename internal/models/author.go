package models

import (
	"time"

	"gorm.io/gorm"
)

// Author represents an account that can write and manage posts.
// Referenced by Post.AuthorID and joined at read time, never embedded.
type Author struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	FullName  string         `gorm:"size:120;not null" json:"full_name"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Bio       string         `gorm:"type:text" json:"bio,omitempty"`
	Password  string         `gorm:"not null" json:"-"`
	IsAdmin   bool           `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Author) TableName() string {
	return "authors"
}
