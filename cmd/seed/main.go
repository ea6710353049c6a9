// Command main runs the database seeder for BioAi Nexus.
package main

import (
	"flag"
	"log"

	"bioainexus/internal/config"
	"bioainexus/internal/database"
	"bioainexus/internal/seed"
)

func main() {
	// Parse command line flags
	numAuthors := flag.Int("authors", 8, "Number of authors to create")
	numPosts := flag.Int("posts", 60, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Path to a YAML seeding preset (ignores other flags)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	if *preset != "" {
		log.Printf("Applying preset file: %s (ignoring other flags)\n", *preset)
	} else {
		log.Printf("Target: %d authors, %d posts, clean=%v\n", *numAuthors, *numPosts, *shouldClean)
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	_, err = database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run seeder
	s := seed.NewSeeder(database.DB)

	if *preset != "" {
		if err := s.ApplyPreset(*preset); err != nil {
			log.Fatalf("❌ Preset seeding failed: %v", err)
		}
	} else {
		opts := seed.Options{
			NumAuthors:  *numAuthors,
			NumPosts:    *numPosts,
			ShouldClean: *shouldClean,
		}
		if err := s.Run(opts); err != nil {
			log.Fatalf("❌ Seeding failed: %v", err)
		}
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test authors have the password: password123")
}
