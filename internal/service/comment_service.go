package service

import (
	"context"
	"errors"
	"strings"

	"bioainexus/internal/captcha"
	"bioainexus/internal/featureflags"
	"bioainexus/internal/models"
	"bioainexus/internal/observability"
	"bioainexus/internal/repository"

	"gorm.io/gorm"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	captcha     *captcha.Service
	flags       *featureflags.Manager
}

type CreateCommentInput struct {
	Slug          string
	AuthorName    string
	Content       string
	CaptchaID     string
	CaptchaAnswer string
	VisitorID     string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	captchaSvc *captcha.Service,
	flags *featureflags.Manager,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		captcha:     captchaSvc,
		flags:       flags,
	}
}

// ListForPost returns all comments on a published post, newest first.
func (s *CommentService) ListForPost(ctx context.Context, slug string) ([]*models.Comment, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug, false, "")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post", slug)
		}
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, post.ID)
}

// Create validates the captcha answer and persists the comment. The captcha
// check runs before any write; a failed check consumes the challenge, so the
// returned fresh Challenge is what the client retries with.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, *captcha.Challenge, error) {
	const maxNameLen = 120
	const maxContentLen = 5000

	if strings.TrimSpace(in.AuthorName) == "" {
		return nil, nil, models.NewValidationError("Name is required")
	}
	if len(in.AuthorName) > maxNameLen {
		return nil, nil, models.NewValidationError("Name too long (max 120 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, nil, models.NewValidationError("Comment is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, nil, models.NewValidationError("Comment too long (max 5000 characters)")
	}

	post, err := s.postRepo.GetBySlug(ctx, in.Slug, false, "")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.NewNotFoundError("post", in.Slug)
		}
		return nil, nil, err
	}

	if s.flags.Enabled("comment_captcha", in.VisitorID) {
		ok, err := s.captcha.Verify(ctx, in.CaptchaID, in.CaptchaAnswer)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			observability.CaptchaRejections.Inc()
			next, err := s.captcha.Issue(ctx)
			if err != nil {
				return nil, nil, err
			}
			return nil, &next, models.NewValidationError("Incorrect answer, please try again")
		}
	}

	comment := &models.Comment{
		PostID:     post.ID,
		AuthorName: strings.TrimSpace(in.AuthorName),
		Content:    in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, nil, err
	}
	return comment, nil, nil
}
