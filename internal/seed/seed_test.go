package seed

import (
	"os"
	"path/filepath"
	"testing"

	"bioainexus/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSeedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if migrateErr := db.AutoMigrate(
		&models.Author{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Bookmark{},
		&models.Subscriber{},
		&models.Setting{},
		&models.Category{},
	); migrateErr != nil {
		t.Fatalf("migrate: %v", migrateErr)
	}
	return db
}

func TestRun_SeedsAuthorsPostsAndCategories(t *testing.T) {
	t.Parallel()

	db := openSeedDB(t)
	seeder := NewSeeder(db)

	if err := seeder.Run(Options{NumAuthors: 4, NumPosts: 12}); err != nil {
		t.Fatalf("seed run: %v", err)
	}

	var authorCount int64
	if err := db.Model(&models.Author{}).Count(&authorCount).Error; err != nil {
		t.Fatalf("count authors: %v", err)
	}
	if authorCount == 0 {
		t.Fatal("expected seeded authors")
	}

	var admin models.Author
	if err := db.Where("is_admin = ?", true).First(&admin).Error; err != nil {
		t.Fatalf("find admin: %v", err)
	}
	if admin.Email != "admin@bioainexus.test" {
		t.Fatalf("unexpected admin email: %s", admin.Email)
	}

	var postCount int64
	if err := db.Model(&models.Post{}).Count(&postCount).Error; err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if postCount == 0 {
		t.Fatal("expected seeded posts")
	}

	var categoryCount int64
	if err := db.Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if categoryCount != int64(len(categoryNames)) {
		t.Fatalf("expected %d categories, got %d", len(categoryNames), categoryCount)
	}

	var footer models.Setting
	if err := db.First(&footer, "key = ?", "footer_text").Error; err != nil {
		t.Fatalf("find footer setting: %v", err)
	}
	if footer.Value == "" {
		t.Fatal("expected footer setting value")
	}
}

func TestRun_CategoriesIdempotent(t *testing.T) {
	t.Parallel()

	db := openSeedDB(t)
	seeder := NewSeeder(db)

	if err := seeder.seedCategories(); err != nil {
		t.Fatalf("seed categories: %v", err)
	}
	if err := seeder.seedCategories(); err != nil {
		t.Fatalf("second seed categories: %v", err)
	}

	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if count != int64(len(categoryNames)) {
		t.Fatalf("expected %d categories after reseed, got %d", len(categoryNames), count)
	}
}

func TestLoadPreset(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "preset.yml")
	raw := "name: demo\nauthors: 3\nposts: 9\nclean: false\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	p, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}
	if p.Name != "demo" || p.Authors != 3 || p.Posts != 9 || p.Clean {
		t.Fatalf("unexpected preset: %+v", p)
	}
}

func TestLoadPreset_RejectsNonPositiveCounts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "preset.yml")
	if err := os.WriteFile(path, []byte("name: empty\nauthors: 0\nposts: 0\n"), 0o600); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	if _, err := LoadPreset(path); err == nil {
		t.Fatal("expected error for zero counts")
	}
}
