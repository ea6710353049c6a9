package service

import (
	"context"
	"testing"
	"time"

	"bioainexus/internal/captcha"
	"bioainexus/internal/featureflags"
	"bioainexus/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	listByPostFn  func(context.Context, uint) ([]*models.Comment, error)
	countByPostFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:     func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn:  func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		countByPostFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

func postRepoWithPost(post *models.Post) *postRepoStub {
	repo := noopPostRepo()
	repo.getBySlugFn = func(_ context.Context, slug string, _ bool, _ string) (*models.Post, error) {
		if slug == post.Slug {
			return post, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	return repo
}

func captchaWithAnswer(t *testing.T, id, answer string) *captcha.Service {
	t.Helper()
	store := captcha.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), id, answer, time.Minute))
	return captcha.NewService(store)
}

func TestCommentService_Create(t *testing.T) {
	ctx := context.Background()
	post := &models.Post{ID: 3, Slug: "busy-post", Published: true}

	valid := CreateCommentInput{
		Slug:          "busy-post",
		AuthorName:    "Ada",
		Content:       "Great write-up",
		CaptchaID:     "ch-1",
		CaptchaAnswer: "7",
		VisitorID:     "v1",
	}

	t.Run("success with correct captcha", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		var created *models.Comment
		commentRepo.createFn = func(_ context.Context, cm *models.Comment) error {
			cm.ID = 11
			created = cm
			return nil
		}
		svc := NewCommentService(commentRepo, postRepoWithPost(post), captchaWithAnswer(t, "ch-1", "7"), allOnFlags())

		comment, challenge, err := svc.Create(ctx, valid)
		require.NoError(t, err)
		assert.Nil(t, challenge)
		assert.Equal(t, uint(11), comment.ID)
		assert.Equal(t, post.ID, created.PostID)
	})

	t.Run("wrong captcha returns fresh challenge and writes nothing", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.createFn = func(_ context.Context, _ *models.Comment) error {
			t.Fatal("no insert may happen on captcha failure")
			return nil
		}
		svc := NewCommentService(commentRepo, postRepoWithPost(post), captchaWithAnswer(t, "ch-1", "7"), allOnFlags())

		in := valid
		in.CaptchaAnswer = "8"
		comment, challenge, err := svc.Create(ctx, in)
		assert.Nil(t, comment)
		require.NotNil(t, challenge)
		assert.NotEmpty(t, challenge.ID)
		assert.NotEmpty(t, challenge.Prompt)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("challenge is single use", func(t *testing.T) {
		svc := NewCommentService(noopCommentRepo(), postRepoWithPost(post), captchaWithAnswer(t, "ch-1", "7"), allOnFlags())

		in := valid
		in.CaptchaAnswer = "8"
		_, _, err := svc.Create(ctx, in)
		require.Error(t, err)

		// The original challenge was consumed by the failed attempt.
		in.CaptchaAnswer = "7"
		comment, challenge, err := svc.Create(ctx, in)
		assert.Nil(t, comment)
		assert.NotNil(t, challenge)
		assert.Error(t, err)
	})

	t.Run("captcha skipped when flag off", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.createFn = func(_ context.Context, cm *models.Comment) error {
			cm.ID = 12
			return nil
		}
		svc := NewCommentService(commentRepo, postRepoWithPost(post),
			captcha.NewService(captcha.NewMemoryStore()), featureflags.NewManager("comment_captcha=off"))

		in := valid
		in.CaptchaID = ""
		in.CaptchaAnswer = ""
		comment, challenge, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.Nil(t, challenge)
		assert.Equal(t, uint(12), comment.ID)
	})

	t.Run("unknown post", func(t *testing.T) {
		svc := NewCommentService(noopCommentRepo(), postRepoWithPost(post), captchaWithAnswer(t, "ch-1", "7"), allOnFlags())
		in := valid
		in.Slug = "missing"
		_, _, err := svc.Create(ctx, in)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("missing name or content", func(t *testing.T) {
		svc := NewCommentService(noopCommentRepo(), postRepoWithPost(post), captchaWithAnswer(t, "ch-1", "7"), allOnFlags())
		for _, in := range []CreateCommentInput{
			{Slug: "busy-post", Content: "x"},
			{Slug: "busy-post", AuthorName: "Ada"},
		} {
			_, _, err := svc.Create(ctx, in)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		}
	})
}

func TestCommentService_ListForPost(t *testing.T) {
	ctx := context.Background()
	post := &models.Post{ID: 3, Slug: "busy-post", Published: true}

	t.Run("returns comments", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.listByPostFn = func(_ context.Context, postID uint) ([]*models.Comment, error) {
			assert.Equal(t, post.ID, postID)
			return []*models.Comment{{ID: 1}, {ID: 2}}, nil
		}
		svc := NewCommentService(commentRepo, postRepoWithPost(post), captcha.NewService(captcha.NewMemoryStore()), allOnFlags())

		comments, err := svc.ListForPost(ctx, "busy-post")
		require.NoError(t, err)
		assert.Len(t, comments, 2)
	})

	t.Run("unknown post", func(t *testing.T) {
		svc := NewCommentService(noopCommentRepo(), postRepoWithPost(post), captcha.NewService(captcha.NewMemoryStore()), allOnFlags())
		_, err := svc.ListForPost(ctx, "missing")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}
