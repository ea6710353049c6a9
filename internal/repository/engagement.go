package repository

import (
	"context"

	"bioainexus/internal/cache"
	"bioainexus/internal/models"

	"gorm.io/gorm"
)

// EngagementRepository covers likes and bookmarks, both keyed by
// (post_id, visitor_id).
type EngagementRepository interface {
	IsLiked(ctx context.Context, postID uint, visitorID string) (bool, error)
	Like(ctx context.Context, postID uint, visitorID string) error
	Unlike(ctx context.Context, postID uint, visitorID string) error
	LikeCount(ctx context.Context, postID uint) (int64, error)
	IsBookmarked(ctx context.Context, postID uint, visitorID string) (bool, error)
	Bookmark(ctx context.Context, postID uint, visitorID string) error
	Unbookmark(ctx context.Context, postID uint, visitorID string) error
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new EngagementRepository
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) IsLiked(ctx context.Context, postID uint, visitorID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ? AND visitor_id = ?", postID, visitorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *engagementRepository) Like(ctx context.Context, postID uint, visitorID string) error {
	// INSERT ... ON CONFLICT DO NOTHING is atomic and absorbs double-submits
	// racing each other.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (post_id, visitor_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (post_id, visitor_id) DO NOTHING`,
		postID, visitorID,
	)
	if result.Error == nil {
		r.invalidatePost(ctx, postID)
	}
	return result.Error
}

func (r *engagementRepository) Unlike(ctx context.Context, postID uint, visitorID string) error {
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND visitor_id = ?", postID, visitorID).
		Delete(&models.Like{}).Error
	if err == nil {
		r.invalidatePost(ctx, postID)
	}
	return err
}

func (r *engagementRepository) LikeCount(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *engagementRepository) IsBookmarked(ctx context.Context, postID uint, visitorID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("post_id = ? AND visitor_id = ?", postID, visitorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *engagementRepository) Bookmark(ctx context.Context, postID uint, visitorID string) error {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO bookmarks (post_id, visitor_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (post_id, visitor_id) DO NOTHING`,
		postID, visitorID,
	)
	return result.Error
}

func (r *engagementRepository) Unbookmark(ctx context.Context, postID uint, visitorID string) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND visitor_id = ?", postID, visitorID).
		Delete(&models.Bookmark{}).Error
}

// invalidatePost drops the cached detail entry so like counts stay fresh for
// anonymous readers.
func (r *engagementRepository) invalidatePost(ctx context.Context, postID uint) {
	var slug string
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		Pluck("slug", &slug).Error; err == nil && slug != "" {
		cache.InvalidatePost(ctx, slug)
	}
}
