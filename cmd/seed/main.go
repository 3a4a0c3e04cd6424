package main

import (
	"log"
	"os"

	"github.com/artstack/creative-showcase/internal/config"
	"github.com/artstack/creative-showcase/internal/database"
	"github.com/artstack/creative-showcase/internal/models"
	"github.com/artstack/creative-showcase/internal/utils"
	"github.com/google/uuid"
)

// Seeds a demo account for local development.
func main() {
	cfg := config.Load()
	database.Connect(cfg)
	database.Migrate()

	demoUsername := os.Getenv("DEMO_USERNAME")
	demoEmail := os.Getenv("DEMO_EMAIL")
	demoPassword := os.Getenv("DEMO_PASSWORD")

	if demoUsername == "" || demoEmail == "" || demoPassword == "" {
		log.Fatal("Missing environment variables: DEMO_USERNAME, DEMO_EMAIL, DEMO_PASSWORD")
	}

	var existing models.User
	result := database.DB.Where("email = ?", demoEmail).First(&existing)
	if result.Error == nil {
		log.Println("Demo user already exists:", existing.Username)
		return
	}

	passwordHash, err := utils.HashPassword(demoPassword)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     demoUsername,
		Email:        demoEmail,
		PasswordHash: passwordHash,
		DisplayName:  demoUsername,
		Bio:          "Demo account",
		IsPublic:     true,
	}

	if err := database.DB.Create(user).Error; err != nil {
		log.Fatal("Failed to create demo user:", err)
	}

	log.Println("Demo user created:", user.Username)
}
