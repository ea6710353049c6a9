// Package service holds the business rules between HTTP handlers and repositories.
package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"bioainexus/internal/featureflags"
	"bioainexus/internal/middleware"
	"bioainexus/internal/models"
	"bioainexus/internal/repository"

	"gorm.io/gorm"
)

type PostService struct {
	postRepo repository.PostRepository
	flags    *featureflags.Manager
}

type CreatePostInput struct {
	AuthorID        uint
	Title           string
	Excerpt         string
	Content         string
	FeaturedImage   string
	Tags            []string
	MetaTitle       string
	MetaDescription string
	Published       bool
	Featured        bool
}

type ListPostsInput struct {
	Sort      string
	Limit     int
	Offset    int
	VisitorID string
}

func NewPostService(postRepo repository.PostRepository, flags *featureflags.Manager) *PostService {
	return &PostService{
		postRepo: postRepo,
		flags:    flags,
	}
}

// Slugify derives a URL slug from a title: lowercase, with every run of
// whitespace collapsed to a single hyphen. Other characters pass through
// unchanged so slugs stay reversible against their titles.
func Slugify(title string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range strings.TrimSpace(title) {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace {
			b.WriteRune('-')
			inSpace = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxTitleLen = 300
	const maxExcerptLen = 1000

	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(in.Excerpt) == "" {
		return nil, models.NewValidationError("Excerpt is required")
	}
	if len(in.Excerpt) > maxExcerptLen {
		return nil, models.NewValidationError("Excerpt too long (max 1000 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	slug := Slugify(in.Title)
	if slug == "" {
		return nil, models.NewValidationError("Title must contain at least one non-space character")
	}
	if _, err := s.postRepo.GetBySlug(ctx, slug, true, ""); err == nil {
		return nil, models.NewValidationError("A post with this title already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	post := &models.Post{
		Title:           in.Title,
		Slug:            slug,
		Excerpt:         in.Excerpt,
		Content:         in.Content,
		FeaturedImage:   in.FeaturedImage,
		AuthorID:        in.AuthorID,
		Tags:            in.Tags,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		Published:       in.Published,
		Featured:        in.Featured,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) ListPublished(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	sort := in.Sort
	switch sort {
	case "", repository.SortRecent:
		sort = repository.SortRecent
	case repository.SortFeatured:
	default:
		return nil, models.NewValidationError("Invalid sort (must be recent or featured)")
	}
	return s.postRepo.ListPublished(ctx, sort, in.Limit, in.Offset, in.VisitorID)
}

func (s *PostService) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListAll(ctx, limit, offset)
}

func (s *PostService) SearchPosts(ctx context.Context, query string, limit, offset int, visitorID string) ([]*models.Post, error) {
	query = strings.TrimSpace(query)
	if len(query) <= 2 {
		return nil, models.NewValidationError("Search query must be longer than 2 characters")
	}
	return s.postRepo.SearchPublished(ctx, query, limit, offset, visitorID)
}

// GetBySlug returns the published post for a slug and records the view.
// View tracking is flag-gated so traffic replays and load tests can run
// without inflating counters.
func (s *PostService) GetBySlug(ctx context.Context, slug, visitorID string) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug, false, visitorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post", slug)
		}
		return nil, err
	}

	if s.flags.Enabled("view_tracking", visitorID) {
		if err := s.postRepo.IncrementViews(ctx, post.ID); err != nil {
			// The read already succeeded; a lost view is not worth a 500.
			middleware.Logger.WarnContext(ctx, "failed to increment views", "slug", slug, "error", err)
		}
	}
	return post, nil
}

// GetForEditor returns a post by id regardless of published state.
func (s *PostService) GetForEditor(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post", id)
		}
		return nil, err
	}
	return post, nil
}

// SetFlag flips the published or featured flag on a post.
func (s *PostService) SetFlag(ctx context.Context, id uint, flag string, value bool) error {
	switch flag {
	case "published", "featured":
	default:
		return models.NewValidationError("Invalid flag (must be published or featured)")
	}
	if err := s.postRepo.SetFlag(ctx, id, flag, value); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("post", id)
		}
		return err
	}
	return nil
}

// ListPublishedSummaries feeds sitemap and RSS generation.
func (s *PostService) ListPublishedSummaries(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.ListPublishedSummaries(ctx)
}
