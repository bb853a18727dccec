// Command generate_demo creates a demo database with sample data from public domain books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/crypto/bcrypt"

	"librarium/internal/auth"
	"librarium/internal/config"
	"librarium/internal/database"
	booksrepo "librarium/internal/database/books"
	usersrepo "librarium/internal/database/users"
	"librarium/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	db, err := database.Connect(config.Database{FallbackPath: *dbPath})
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	createDemoUser(db)

	books := booksrepo.NewRepository(db.DB)
	for _, req := range getPublicDomainBooks() {
		book, err := books.Create(&req)
		if err != nil {
			log.Printf("Failed to save book %s: %v", req.Title, err)
			continue
		}
		log.Printf("Saved: %s by %s (id %d)", book.Title, book.Author, book.ID)
	}

	log.Println("Demo database generated successfully!")
}

// createDemoUser registers demo/demo@example.com with password "demo-password"
// so the protected endpoints can be exercised right away.
func createDemoUser(db *database.Database) {
	hash, err := auth.HashPassword("demo-password", bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}
	user, err := usersrepo.NewRepository(db.DB).Create("demo", "demo@example.com", hash)
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("Created demo user %s (log in with password \"demo-password\")", user.Username)
}

func getPublicDomainBooks() []entities.CreateBookRequest {
	return []entities.CreateBookRequest{
		{
			Title:         "Meditations",
			Author:        "Marcus Aurelius",
			PublishedYear: intPtr(1862),
			Genre:         strPtr("Philosophy"),
			Language:      strPtr("English"),
			Pages:         intPtr(256),
		},
		{
			Title:         "Pride and Prejudice",
			Author:        "Jane Austen",
			PublishedYear: intPtr(1813),
			Editorial:     strPtr("T. Egerton"),
			Genre:         strPtr("Fiction"),
			Language:      strPtr("English"),
			Pages:         intPtr(432),
		},
		{
			Title:         "Don Quijote de la Mancha",
			Author:        "Miguel de Cervantes",
			PublishedYear: intPtr(1605),
			Editorial:     strPtr("Francisco de Robles"),
			Genre:         strPtr("Fiction"),
			Language:      strPtr("Spanish"),
			Pages:         intPtr(863),
		},
		{
			Title:         "On the Origin of Species",
			Author:        "Charles Darwin",
			PublishedYear: intPtr(1859),
			Editorial:     strPtr("John Murray"),
			Genre:         strPtr("Science"),
			Language:      strPtr("English"),
			Pages:         intPtr(502),
		},
		{
			Title:         "The Adventures of Sherlock Holmes",
			Author:        "Arthur Conan Doyle",
			PublishedYear: intPtr(1892),
			Editorial:     strPtr("George Newnes"),
			Genre:         strPtr("Mystery"),
			Language:      strPtr("English"),
			Pages:         intPtr(307),
		},
	}
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}
