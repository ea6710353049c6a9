// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"bioainexus/internal/models"
	"bioainexus/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var topics = []string{
	"CRISPR Screening", "Protein Folding Models", "Single-Cell Sequencing",
	"Drug Discovery Pipelines", "Neural Organoids", "Synthetic Promoters",
	"Lab Automation", "Genomic Privacy", "Foundation Models for Biology",
	"Antibody Design",
}

var tagPool = []string{
	"genomics", "machine-learning", "crispr", "proteomics", "drug-discovery",
	"neuroscience", "synbio", "bioinformatics", "ethics", "tooling",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateAuthor persists a fake author. All seeded authors share the password
// "password123" so local logins are predictable.
func (f *Factory) CreateAuthor(isAdmin bool) (*models.Author, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	author := &models.Author{
		Email:     strings.ToLower(gofakeit.Email()),
		FullName:  gofakeit.Name(),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Bio:       gofakeit.Sentence(12),
		Password:  string(hash),
		IsAdmin:   isAdmin,
	}
	if err := f.db.Create(author).Error; err != nil {
		return nil, err
	}
	return author, nil
}

// BuildPost constructs a post without persisting it. Useful for batching.
func (f *Factory) BuildPost(author *models.Author, published bool) *models.Post {
	topic := topics[f.rng.Intn(len(topics))]
	title := fmt.Sprintf("%s: %s", topic, strings.TrimSuffix(gofakeit.HipsterSentence(3), "."))

	tags := models.TagList{}
	for _, idx := range f.rng.Perm(len(tagPool))[:2+f.rng.Intn(2)] {
		tags = append(tags, tagPool[idx])
	}

	post := &models.Post{
		Title:         title,
		Slug:          service.Slugify(title),
		Excerpt:       gofakeit.Sentence(18),
		Content:       gofakeit.Paragraph(4, 6, 40, "\n\n"),
		FeaturedImage: fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID()),
		AuthorID:      author.ID,
		Published:     published,
		Featured:      f.rng.Intn(5) == 0,
		Tags:          tags,
		Views:         f.rng.Intn(2000),
	}

	// realistic created_at spread over the last ~6 months
	daysBack := f.rng.Intn(180)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(f.rng.Intn(24))*time.Hour)
	return post
}

// CreatePost persists a fake post for the given author.
func (f *Factory) CreatePost(author *models.Author, published bool) (*models.Post, error) {
	post := f.BuildPost(author, published)
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a fake comment on the given post.
func (f *Factory) CreateComment(post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:     post.ID,
		AuthorName: gofakeit.Name(),
		Content:    gofakeit.Sentence(10 + f.rng.Intn(20)),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateEngagement attaches likes and bookmarks from synthetic visitors.
func (f *Factory) CreateEngagement(post *models.Post, likes, bookmarks int) error {
	for i := 0; i < likes; i++ {
		like := &models.Like{PostID: post.ID, VisitorID: uuid.NewString()}
		if err := f.db.Create(like).Error; err != nil {
			return err
		}
	}
	for i := 0; i < bookmarks; i++ {
		bookmark := &models.Bookmark{PostID: post.ID, VisitorID: uuid.NewString()}
		if err := f.db.Create(bookmark).Error; err != nil {
			return err
		}
	}
	return nil
}
