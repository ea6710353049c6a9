package service

import (
	"context"
	"errors"

	"bioainexus/internal/models"
	"bioainexus/internal/observability"
	"bioainexus/internal/repository"

	"gorm.io/gorm"
)

type EngagementService struct {
	engagementRepo repository.EngagementRepository
	postRepo       repository.PostRepository
}

// LikeState is the post-toggle snapshot returned to the client. The server
// is authoritative; the client replaces any optimistic state with this.
type LikeState struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

type BookmarkState struct {
	Bookmarked bool `json:"bookmarked"`
}

func NewEngagementService(engagementRepo repository.EngagementRepository, postRepo repository.PostRepository) *EngagementService {
	return &EngagementService{
		engagementRepo: engagementRepo,
		postRepo:       postRepo,
	}
}

func (s *EngagementService) resolvePost(ctx context.Context, slug string) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug, false, "")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post", slug)
		}
		return nil, err
	}
	return post, nil
}

func (s *EngagementService) ToggleLike(ctx context.Context, slug, visitorID string) (*LikeState, error) {
	post, err := s.resolvePost(ctx, slug)
	if err != nil {
		return nil, err
	}

	liked, err := s.engagementRepo.IsLiked(ctx, post.ID, visitorID)
	if err != nil {
		return nil, err
	}

	if liked {
		err = s.engagementRepo.Unlike(ctx, post.ID, visitorID)
	} else {
		err = s.engagementRepo.Like(ctx, post.ID, visitorID)
	}
	if err != nil {
		return nil, err
	}

	count, err := s.engagementRepo.LikeCount(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	state := &LikeState{Liked: !liked, LikeCount: count}
	observability.EngagementToggles.WithLabelValues("like", boolLabel(state.Liked)).Inc()
	return state, nil
}

func (s *EngagementService) ToggleBookmark(ctx context.Context, slug, visitorID string) (*BookmarkState, error) {
	post, err := s.resolvePost(ctx, slug)
	if err != nil {
		return nil, err
	}

	marked, err := s.engagementRepo.IsBookmarked(ctx, post.ID, visitorID)
	if err != nil {
		return nil, err
	}

	if marked {
		err = s.engagementRepo.Unbookmark(ctx, post.ID, visitorID)
	} else {
		err = s.engagementRepo.Bookmark(ctx, post.ID, visitorID)
	}
	if err != nil {
		return nil, err
	}

	state := &BookmarkState{Bookmarked: !marked}
	observability.EngagementToggles.WithLabelValues("bookmark", boolLabel(state.Bookmarked)).Inc()
	return state, nil
}

func boolLabel(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
