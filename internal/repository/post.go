// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"bioainexus/internal/cache"
	"bioainexus/internal/models"

	"gorm.io/gorm"
)

// Sort modes for published listings.
const (
	SortRecent   = "recent"
	SortFeatured = "featured"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string, includeUnpublished bool, visitorID string) (*models.Post, error)
	ListPublished(ctx context.Context, sort string, limit, offset int, visitorID string) ([]*models.Post, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error)
	SearchPublished(ctx context.Context, query string, limit, offset int, visitorID string) ([]*models.Post, error)
	ListPublishedSummaries(ctx context.Context) ([]*models.Post, error)
	SetFlag(ctx context.Context, id uint, column string, value bool) error
	IncrementViews(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidatePostLists(ctx)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string, includeUnpublished bool, visitorID string) (*models.Post, error) {
	var post models.Post

	query := func() error {
		db := r.applyPostDetails(r.db.WithContext(ctx), visitorID).
			Preload("Author").
			Where("slug = ?", slug)
		if !includeUnpublished {
			db = db.Where("published = ?", true)
		}
		return db.First(&post).Error
	}

	var err error
	if visitorID == "" && !includeUnpublished {
		err = cache.Aside(ctx, cache.PostKey(slug), &post, cache.PostTTL, query)
	} else {
		err = query()
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListPublished(ctx context.Context, sort string, limit, offset int, visitorID string) ([]*models.Post, error) {
	var posts []*models.Post

	query := func() error {
		db := r.applyPostDetails(r.db.WithContext(ctx), visitorID).
			Preload("Author").
			Where("published = ?", true)
		return r.applySort(db, sort).
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
	}

	var err error
	if visitorID == "" && offset == 0 && limit <= 20 {
		err = cache.Aside(ctx, cache.PostListKey(sort, limit), &posts, cache.PostListTTL, query)
	} else {
		err = query()
	}
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), "").
		Preload("Author").
		Order("created_at DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// applySort appends the ORDER BY clause for the requested sort mode. The
// secondary id ASC column keeps ordering stable when timestamps or view
// counts tie.
func (r *postRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case SortFeatured:
		return db.Order("views DESC, id ASC")
	default: // SortRecent and anything unrecognized
		return db.Order("created_at DESC, id ASC")
	}
}

func (r *postRepository) SearchPublished(ctx context.Context, query string, limit, offset int, visitorID string) ([]*models.Post, error) {
	var posts []*models.Post
	like := "%" + query + "%"
	err := r.applyPostDetails(r.db.WithContext(ctx), visitorID).
		Preload("Author").
		Where("published = ?", true).
		Where("LOWER(title) LIKE LOWER(?)", like).
		Order("created_at DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPublishedSummaries returns slug and updated_at for every published
// post, for sitemap and feed generation.
func (r *postRepository) ListPublishedSummaries(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Select("id", "title", "slug", "excerpt", "updated_at", "created_at").
		Where("published = ?", true).
		Order("created_at DESC, id ASC").
		Find(&posts).Error
	return posts, err
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, visitorID string) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if visitorID != "" {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.visitor_id = ?) as liked", visitorID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *postRepository) SetFlag(ctx context.Context, id uint, column string, value bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	var slug string
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Pluck("slug", &slug).Error; err == nil && slug != "" {
		cache.InvalidatePost(ctx, slug)
	}
	cache.InvalidatePostLists(ctx)
	return nil
}

func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}
