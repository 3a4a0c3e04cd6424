package testutil

import (
	"github.com/artstack/creative-showcase/internal/models"
	"github.com/artstack/creative-showcase/internal/utils"
	"github.com/google/uuid"
)

// CreateTestUser builds a user with a real password hash, ready to insert.
func CreateTestUser(username, email, password string) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		DisplayName:  username,
		IsPublic:     true,
	}, nil
}

// CreateTestArtwork builds a public artwork owned by artistID.
func CreateTestArtwork(artistID uuid.UUID, title string, category models.Category) *models.Artwork {
	return &models.Artwork{
		ID:            uuid.New(),
		Title:         title,
		Description:   "test artwork",
		ImageURL:      "https://media.test/creative-showcase/" + uuid.New().String() + ".jpg",
		ImageKey:      "creative-showcase/" + uuid.New().String() + ".jpg",
		ArtistID:      artistID,
		Category:      category,
		IsPublic:      true,
		AllowComments: true,
	}
}

// DefaultTestUser returns a default test user
func DefaultTestUser() (*models.User, error) {
	return CreateTestUser("testuser", "test@example.com", "Test123456")
}
