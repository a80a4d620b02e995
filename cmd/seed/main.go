package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/readcoach/api/internal/auth"
	"github.com/readcoach/api/internal/config"
	"github.com/readcoach/api/internal/database"
	"github.com/readcoach/api/internal/model"
	"github.com/readcoach/api/internal/review"
	"gorm.io/gorm"
)

func main() {
	// Parse command line flags
	username := flag.String("username", "demo", "Username for the seeded account")
	email := flag.String("email", "demo@example.com", "Email for the seeded account")
	password := flag.String("password", "demo-password", "Password for the seeded account")
	filePath := flag.String("file", "data/starter_words.txt", "Path to starter word list file")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migration
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	user, err := findOrCreateUser(db, *username, *email, *password)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}
	log.Printf("Seeding vocabulary for user %s (id=%d)", user.Username, user.ID)

	words, err := loadWordList(*filePath)
	if err != nil {
		log.Fatalf("Failed to load word list: %v", err)
	}
	log.Printf("Loaded %d words from file", len(words))

	scheduler := review.NewScheduler(review.NewGormStore(db))

	ctx := context.Background()
	inserted := 0
	for _, word := range words {
		// Definitions are left empty; the prefetcher fills them in.
		if _, err := scheduler.AddOrUpdate(ctx, user.ID, word, "", nil, "", ""); err != nil {
			log.Printf("Failed to seed %q: %v", word, err)
			continue
		}
		inserted++
	}

	log.Printf("Seeding complete. Total inserted: %d", inserted)
}

func findOrCreateUser(db *gorm.DB, username, email, password string) (*model.User, error) {
	var user model.User
	result := db.Where("provider = 'local' AND username = ?", username).First(&user)
	if result.Error == nil {
		return &user, nil
	}
	if result.Error != gorm.ErrRecordNotFound {
		return nil, result.Error
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user = model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Provider:     model.ProviderLocal,
		Name:         username,
		CreatedAt:    time.Now(),
		LastLoginAt:  time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func loadWordList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}

	return words, scanner.Err()
}
