// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TagList is a set of tag strings stored as a JSON array column.
type TagList []string

// Value implements driver.Valuer for database serialization.
func (t TagList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for database deserialization.
func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported tag list source type %T", value)
	}
	if len(raw) == 0 {
		*t = nil
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(t))
}

// Post represents a published or draft article on BioAi Nexus.
//
// Slug is derived from the title once at creation time and never changes
// afterwards; it is the sole public lookup key for the detail page.
type Post struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Title           string  `gorm:"not null" json:"title"`
	Slug            string  `gorm:"size:300;not null;uniqueIndex" json:"slug"`
	Content         string  `gorm:"type:text;not null" json:"content"`
	Excerpt         string  `gorm:"type:text;not null" json:"excerpt"`
	FeaturedImage   string  `json:"featured_image,omitempty"`
	AuthorID        uint    `gorm:"not null;index" json:"author_id"`
	Author          Author  `gorm:"foreignKey:AuthorID" json:"author"`
	Published       bool    `gorm:"not null;default:false;index" json:"published"`
	Featured        bool    `gorm:"not null;default:false" json:"featured"`
	Tags            TagList `gorm:"type:text" json:"tags"`
	Views           int     `gorm:"not null;default:0" json:"views"`
	MetaTitle       string  `json:"meta_title,omitempty"`
	MetaDescription string  `json:"meta_description,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the requesting visitor liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
