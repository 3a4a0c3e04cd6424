package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SocialLinks is stored embedded on the user row (social_twitter, ...).
type SocialLinks struct {
	Twitter    string `gorm:"type:varchar(255)" json:"twitter"`
	Instagram  string `gorm:"type:varchar(255)" json:"instagram"`
	Artstation string `gorm:"type:varchar(255)" json:"artstation"`
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email,omitempty"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"` // Never expose password hash in JSON

	DisplayName       string      `gorm:"type:varchar(50)" json:"displayName"`
	Bio               string      `gorm:"type:varchar(500)" json:"bio"`
	ProfilePicture    string      `gorm:"type:varchar(512)" json:"profilePicture"`
	ProfilePictureKey string      `gorm:"type:varchar(255)" json:"-"`
	CoverImage        string      `gorm:"type:varchar(512)" json:"coverImage"`
	CoverImageKey     string      `gorm:"type:varchar(255)" json:"-"`
	Location          string      `gorm:"type:varchar(100)" json:"location"`
	Website           string      `gorm:"type:varchar(255)" json:"website"`
	Occupation        string      `gorm:"type:varchar(100)" json:"occupation"`
	Education         string      `gorm:"type:varchar(100)" json:"education"`
	Skills            []string    `gorm:"serializer:json;type:text" json:"skills"`
	SocialLinks       SocialLinks `gorm:"embedded;embeddedPrefix:social_" json:"socialLinks"`
	IsPublic          bool        `gorm:"not null;default:true" json:"isPublic"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the ID application-side so the model works on both
// PostgreSQL and the in-memory SQLite used in tests.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Sanitize clears fields that must not leave the server on public routes.
// The password hash and storage keys are already excluded via JSON tags;
// the email is only returned on the owner's own account endpoints.
func (u *User) Sanitize() *User {
	u.Email = ""
	return u
}

// UserSummary is the public-safe shape returned by user search.
type UserSummary struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"displayName"`
	ProfilePicture string    `json:"profilePicture"`
	Bio            string    `json:"bio"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
		CreatedAt:      u.CreatedAt,
	}
}
