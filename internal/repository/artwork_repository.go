package repository

import (
	"errors"
	"strings"

	"github.com/artstack/creative-showcase/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sort keys accepted by search and paged listings.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPopular   = "popular"
	SortMostLiked = "most-liked"
)

// likeCountOrder sorts by like-set size without loading the sets.
const likeCountOrder = "(SELECT COUNT(*) FROM artwork_likes WHERE artwork_likes.artwork_id = artworks.id) DESC"

func sortClause(sortKey string) string {
	switch sortKey {
	case SortOldest:
		return "created_at ASC"
	case SortPopular:
		return "views DESC"
	case SortMostLiked:
		return likeCountOrder
	default: // SortNewest
		return "created_at DESC"
	}
}

type ArtworkRepository struct {
	db *gorm.DB
}

func NewArtworkRepository(db *gorm.DB) *ArtworkRepository {
	return &ArtworkRepository{db: db}
}

func (r *ArtworkRepository) CreateArtwork(artwork *models.Artwork) error {
	return r.db.Create(artwork).Error
}

// GetArtworkByID loads the full record: artist, like set, and comments in
// posting order with their authors and like sets.
func (r *ArtworkRepository) GetArtworkByID(id uuid.UUID) (*models.Artwork, error) {
	var artwork models.Artwork
	err := r.db.
		Preload("Artist").
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author").
		Preload("Comments.Likes").
		Where("id = ?", id).
		First(&artwork).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &artwork, nil
}

// IncrementViews bumps the view counter with a single atomic UPDATE so
// concurrent fetches never lose increments.
func (r *ArtworkRepository) IncrementViews(id uuid.UUID) error {
	return r.db.Model(&models.Artwork{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// DeleteArtwork removes the record and its engagement rows. Children go
// first so a partial failure never leaves rows pointing at a missing artwork.
func (r *ArtworkRepository) DeleteArtwork(id uuid.UUID) error {
	commentIDs := r.db.Model(&models.Comment{}).Select("id").Where("artwork_id = ?", id)
	if err := r.db.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("artwork_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("artwork_id = ?", id).Delete(&models.ArtworkLike{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Artwork{}, "id = ?", id).Error
}

// AddLike inserts into the like set; a duplicate insert is a no-op thanks to
// the composite primary key plus ON CONFLICT DO NOTHING.
func (r *ArtworkRepository) AddLike(artworkID, userID uuid.UUID) error {
	like := models.ArtworkLike{ArtworkID: artworkID, UserID: userID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

// RemoveLike deletes the membership row and reports whether it existed.
func (r *ArtworkRepository) RemoveLike(artworkID, userID uuid.UUID) (bool, error) {
	res := r.db.Where("artwork_id = ? AND user_id = ?", artworkID, userID).Delete(&models.ArtworkLike{})
	return res.RowsAffected > 0, res.Error
}

func (r *ArtworkRepository) GetLikes(artworkID uuid.UUID) ([]models.ArtworkLike, error) {
	var likes []models.ArtworkLike
	err := r.db.Where("artwork_id = ?", artworkID).Find(&likes).Error
	return likes, err
}

// SearchArtworks returns public artworks whose title, description, or tags
// contain the query case-insensitively, optionally filtered by category.
func (r *ArtworkRepository) SearchArtworks(query string, category models.Category, sortKey string, limit int) ([]models.Artwork, error) {
	tx := r.db.
		Preload("Artist").
		Preload("Likes").
		Where("is_public = ?", true)

	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		tx = tx.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if category != "" {
		tx = tx.Where("category = ?", category)
	}

	var artworks []models.Artwork
	err := tx.Order(sortClause(sortKey)).Limit(limit).Find(&artworks).Error
	return artworks, err
}

// GetFeatured samples public artworks uniformly at random, a fresh sample
// per call.
func (r *ArtworkRepository) GetFeatured(sampleSize int) ([]models.Artwork, error) {
	var artworks []models.Artwork
	err := r.db.
		Preload("Artist").
		Preload("Likes").
		Where("is_public = ?", true).
		Order("RANDOM()").
		Limit(sampleSize).
		Find(&artworks).Error

	return artworks, err
}

// GetArtworksByArtist returns all of the artist's artworks, public and
// private, newest first. Dashboard use.
func (r *ArtworkRepository) GetArtworksByArtist(artistID uuid.UUID) ([]models.Artwork, error) {
	var artworks []models.Artwork
	err := r.db.
		Preload("Likes").
		Where("artist_id = ?", artistID).
		Order("created_at DESC").
		Find(&artworks).Error

	return artworks, err
}

// GetPublicArtworksByArtist returns a page of the artist's public artworks.
func (r *ArtworkRepository) GetPublicArtworksByArtist(artistID uuid.UUID, offset, limit int, sortKey string) ([]models.Artwork, error) {
	var artworks []models.Artwork
	err := r.db.
		Preload("Likes").
		Where("artist_id = ? AND is_public = ?", artistID, true).
		Order(sortClause(sortKey)).
		Offset(offset).
		Limit(limit).
		Find(&artworks).Error

	return artworks, err
}

func (r *ArtworkRepository) CountPublicArtworksByArtist(artistID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Artwork{}).
		Where("artist_id = ? AND is_public = ?", artistID, true).
		Count(&count).Error

	return count, err
}

// ArtistStats aggregates engagement over an artist's public artworks.
type ArtistStats struct {
	Artworks   int64 `json:"artworks"`
	TotalViews int64 `json:"totalViews"`
	TotalLikes int64 `json:"totalLikes"`
}

func (r *ArtworkRepository) GetArtistStats(artistID uuid.UUID) (*ArtistStats, error) {
	stats := &ArtistStats{}

	err := r.db.Model(&models.Artwork{}).
		Where("artist_id = ? AND is_public = ?", artistID, true).
		Count(&stats.Artworks).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&models.Artwork{}).
		Where("artist_id = ? AND is_public = ?", artistID, true).
		Select("COALESCE(SUM(views), 0)").
		Scan(&stats.TotalViews).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&models.ArtworkLike{}).
		Joins("JOIN artworks ON artworks.id = artwork_likes.artwork_id").
		Where("artworks.artist_id = ? AND artworks.is_public = ?", artistID, true).
		Count(&stats.TotalLikes).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *ArtworkRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *ArtworkRepository) GetCommentByID(artworkID, commentID uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.
		Preload("Author").
		Preload("Likes").
		Where("id = ? AND artwork_id = ?", commentID, artworkID).
		First(&comment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &comment, nil
}

func (r *ArtworkRepository) AddCommentLike(commentID, userID uuid.UUID) error {
	like := models.CommentLike{CommentID: commentID, UserID: userID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

func (r *ArtworkRepository) RemoveCommentLike(commentID, userID uuid.UUID) (bool, error) {
	res := r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.CommentLike{})
	return res.RowsAffected > 0, res.Error
}

func (r *ArtworkRepository) GetCommentLikes(commentID uuid.UUID) ([]models.CommentLike, error) {
	var likes []models.CommentLike
	err := r.db.Where("comment_id = ?", commentID).Find(&likes).Error
	return likes, err
}
