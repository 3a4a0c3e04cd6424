package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category string

const (
	CategoryDigital      Category = "digital"
	CategoryTraditional  Category = "traditional"
	CategoryPhotography  Category = "photography"
	Category3D           Category = "3d"
	CategoryIllustration Category = "illustration"
	CategoryConcept      Category = "concept"
	CategoryOther        Category = "other"
)

var Categories = []Category{
	CategoryDigital,
	CategoryTraditional,
	CategoryPhotography,
	Category3D,
	CategoryIllustration,
	CategoryConcept,
	CategoryOther,
}

// ParseCategory matches case-insensitively against the fixed enum.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

type Artwork struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(100);not null" json:"title"`
	Description string    `gorm:"type:varchar(1000)" json:"description"`
	ImageURL    string    `gorm:"type:varchar(512);not null" json:"imageUrl"`
	ImageKey    string    `gorm:"type:varchar(255);not null" json:"-"`

	ArtistID uuid.UUID `gorm:"type:uuid;not null;index:idx_artworks_artist_created,priority:1" json:"artistId"`
	Artist   User      `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE" json:"artist"`

	Tags     []string `gorm:"serializer:json;type:text" json:"tags"`
	Category Category `gorm:"type:varchar(20);not null;default:'digital'" json:"category"`

	Views         int64 `gorm:"not null;default:0" json:"views"`
	IsPublic      bool  `gorm:"not null;default:true" json:"isPublic"`
	AllowComments bool  `gorm:"not null;default:true" json:"allowComments"`

	CreatedAt time.Time `gorm:"index:idx_artworks_artist_created,priority:2;index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Likes    []ArtworkLike `gorm:"foreignKey:ArtworkID;constraint:OnDelete:CASCADE" json:"likes"`
	Comments []Comment     `gorm:"foreignKey:ArtworkID;constraint:OnDelete:CASCADE" json:"comments"`
}

func (a *Artwork) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ArtworkLike is one row per (artwork, user). The composite primary key is
// what guarantees a user appears at most once in an artwork's like set.
type ArtworkLike struct {
	ArtworkID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

// MarshalJSON renders a like as the liking user's id, so an artwork's likes
// serialize as a plain array of user ids.
func (l ArtworkLike) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.UserID)
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ArtworkID uuid.UUID `gorm:"type:uuid;not null;index" json:"artworkId"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null" json:"authorId"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Text      string    `gorm:"type:varchar(1000);not null" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	Likes []CommentLike `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"likes"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CommentLike struct {
	CommentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

func (l CommentLike) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.UserID)
}
