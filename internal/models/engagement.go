package models

import "time"

// Like records that a visitor liked a post. The (post_id, visitor_id) pair is
// unique, so repeated likes by the same identity are idempotent.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_visitor" json:"post_id"`
	VisitorID string    `gorm:"size:64;not null;uniqueIndex:idx_likes_post_visitor" json:"visitor_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Bookmark records that a visitor bookmarked a post. Presence = bookmarked;
// the row is hard-deleted when the bookmark is toggled off.
type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_bookmarks_post_visitor" json:"post_id"`
	VisitorID string    `gorm:"size:64;not null;uniqueIndex:idx_bookmarks_post_visitor" json:"visitor_id"`
	CreatedAt time.Time `json:"created_at"`
}
