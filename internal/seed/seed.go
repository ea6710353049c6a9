package seed

import (
	"fmt"
	"log"
	"os"

	"bioainexus/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumAuthors  int
	NumPosts    int
	ShouldClean bool
}

var categoryNames = []string{
	"Genomics", "Machine Learning", "Drug Discovery", "Neuroscience",
	"Synthetic Biology", "Bioinformatics", "Ethics", "Tooling",
}

// Seeder populates the database with demo content.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes previously seeded content.
func (s *Seeder) ClearAll() error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, bookmarks, posts, subscribers, categories, settings, authors RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// Run seeds authors, posts, comments and engagement per the options.
func (s *Seeder) Run(opts Options) error {
	log.Printf("🌱 Starting database seeding with %d authors and %d posts...", opts.NumAuthors, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	authors, err := s.seedAuthors(opts.NumAuthors)
	if err != nil {
		return fmt.Errorf("failed to create authors: %w", err)
	}
	log.Printf("✓ %d authors created", len(authors))

	posts, err := s.seedPosts(authors, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := s.seedCategories(); err != nil {
		return fmt.Errorf("failed to create categories: %w", err)
	}
	log.Printf("✓ %d categories available", len(categoryNames))

	if err := s.seedSettings(); err != nil {
		return fmt.Errorf("failed to create settings: %w", err)
	}
	log.Println("✓ default settings written")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func (s *Seeder) seedAuthors(count int) ([]*models.Author, error) {
	authors := make([]*models.Author, 0, count)

	// first author is always the admin, so local logins are predictable
	admin, err := s.factory.CreateAuthor(true)
	if err != nil {
		return nil, err
	}
	admin.Email = "admin@bioainexus.test"
	admin.FullName = "Nexus Admin"
	if err := s.db.Save(admin).Error; err != nil {
		return nil, err
	}
	authors = append(authors, admin)

	for i := 1; i < count; i++ {
		author, err := s.factory.CreateAuthor(false)
		if err != nil {
			log.Printf("Failed to create author: %v", err)
			continue
		}
		authors = append(authors, author)
	}
	return authors, nil
}

func (s *Seeder) seedPosts(authors []*models.Author, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)

	for i := 0; i < count; i++ {
		author := authors[s.factory.rng.Intn(len(authors))]
		// roughly one in six posts stays a draft
		published := s.factory.rng.Intn(6) != 0

		post, err := s.factory.CreatePost(author, published)
		if err != nil {
			// slug collisions are possible with generated titles; skip and move on
			log.Printf("Failed to create post: %v", err)
			continue
		}
		posts = append(posts, post)

		if !published {
			continue
		}

		comments := s.factory.rng.Intn(6)
		for c := 0; c < comments; c++ {
			if _, err := s.factory.CreateComment(post); err != nil {
				return nil, err
			}
		}
		if err := s.factory.CreateEngagement(post, s.factory.rng.Intn(30), s.factory.rng.Intn(8)); err != nil {
			return nil, err
		}

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d posts...", i)
		}
	}
	return posts, nil
}

func (s *Seeder) seedCategories() error {
	for _, name := range categoryNames {
		var cat models.Category
		err := s.db.Where(models.Category{Name: name}).FirstOrCreate(&cat).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedSettings() error {
	defaults := map[string]string{
		"footer_text":  `{"text":"BioAi Nexus: where biology meets artificial intelligence."}`,
		"social_links": `{"twitter":"https://twitter.com/bioainexus","github":"https://github.com/bioainexus"}`,
	}
	for key, value := range defaults {
		setting := models.Setting{Key: key, Value: value}
		if err := s.db.Save(&setting).Error; err != nil {
			return err
		}
	}
	return nil
}

// Preset describes a named seeding profile loaded from a YAML file.
type Preset struct {
	Name    string `yaml:"name"`
	Authors int    `yaml:"authors"`
	Posts   int    `yaml:"posts"`
	Clean   bool   `yaml:"clean"`
}

// LoadPreset reads a seeding preset from a YAML file.
func LoadPreset(path string) (*Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}
	var p Preset
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to parse preset file: %w", err)
	}
	if p.Authors <= 0 || p.Posts <= 0 {
		return nil, fmt.Errorf("preset %q must specify positive authors and posts counts", p.Name)
	}
	return &p, nil
}

// ApplyPreset runs the seeder with the counts from a preset file.
func (s *Seeder) ApplyPreset(path string) error {
	p, err := LoadPreset(path)
	if err != nil {
		return err
	}
	log.Printf("Applying preset %q: %d authors, %d posts", p.Name, p.Authors, p.Posts)
	return s.Run(Options{NumAuthors: p.Authors, NumPosts: p.Posts, ShouldClean: p.Clean})
}
