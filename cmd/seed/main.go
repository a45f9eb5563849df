package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"adviceboard/internal/config"
	"adviceboard/internal/db"
	"adviceboard/internal/model"
	"adviceboard/internal/repository"
)

// Registration always assigns the user role, so the first admin has to be
// minted out-of-band. This binary creates (or updates) an admin account from
// ADMIN_NAME / ADMIN_EMAIL / ADMIN_PASSWORD and optionally loads advice
// fixtures from the JSON file named by SEED_FILE.

// SeedAdviceData is one fixture record in the seed file.
type SeedAdviceData struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Verified bool   `json:"verified"`
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Advice{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	adviceRepo := repository.NewAdviceRepository(gormDB)

	admin, err := seedAdmin(ctx, gormDB, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}
	log.Printf("Admin account ready: %s (id=%d)", admin.Email, admin.ID)

	seedFile := os.Getenv("SEED_FILE")
	if seedFile == "" {
		log.Println("SEED_FILE not set, skipping advice fixtures")
		return
	}

	fixtures, err := loadFixtures(seedFile)
	if err != nil {
		log.Fatalf("Failed to load fixtures: %v", err)
	}
	log.Printf("Loaded %d advice fixtures from %s", len(fixtures), seedFile)

	created, err := seedAdvice(ctx, adviceRepo, admin.ID, fixtures)
	if err != nil {
		log.Fatalf("Failed to seed advice: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Advice records created: %d", created)
}

// seedAdmin creates the admin account or promotes/updates an existing one.
func seedAdmin(ctx context.Context, gormDB *gorm.DB, repo repository.UserRepository) (*model.User, error) {
	name := getEnv("ADMIN_NAME", "Administrator")
	email := getEnv("ADMIN_EMAIL", "admin@example.com")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD must be set")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check admin account: %w", err)
	}

	if existing != nil {
		existing.Name = name
		existing.PasswordHash = string(hashed)
		existing.Role = model.RoleAdmin
		if err := gormDB.WithContext(ctx).Save(existing).Error; err != nil {
			return nil, fmt.Errorf("update admin account: %w", err)
		}
		return existing, nil
	}

	admin := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin account: %w", err)
	}
	return admin, nil
}

// loadFixtures reads and parses the advice fixture file.
func loadFixtures(path string) ([]SeedAdviceData, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var fixtures []SeedAdviceData
	if err := json.Unmarshal(payload, &fixtures); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return fixtures, nil
}

// seedAdvice inserts fixture records attributed to the admin account.
func seedAdvice(ctx context.Context, repo repository.AdviceRepository, authorID uint, fixtures []SeedAdviceData) (created int, err error) {
	skipped := 0
	for _, item := range fixtures {
		if item.Title == "" || item.Text == "" {
			skipped++
			continue
		}

		adviceType := item.Type
		if adviceType == "" {
			adviceType = model.DefaultAdviceType
		}

		advice := &model.Advice{
			Type:     adviceType,
			Title:    item.Title,
			Text:     item.Text,
			AuthorID: authorID,
			Verified: item.Verified,
		}
		if err := repo.Create(ctx, advice); err != nil {
			return created, fmt.Errorf("create advice %q: %w", item.Title, err)
		}
		created++
	}

	if skipped > 0 {
		log.Printf("Skipped %d fixtures missing title or text", skipped)
	}
	return created, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
