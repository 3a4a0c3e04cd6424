package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/artstack/creative-showcase/internal/models"
	"github.com/artstack/creative-showcase/internal/repository"
	"github.com/artstack/creative-showcase/internal/storage"
	"github.com/artstack/creative-showcase/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrArtworkNotFound  = errors.New("artwork not found")
	ErrNotArtworkOwner  = errors.New("not the artwork owner")
	ErrCommentsDisabled = errors.New("comments are disabled for this artwork")
	ErrCommentNotFound  = errors.New("comment not found")

	ErrTitleRequired   = NewValidationError("title is required")
	ErrImageRequired   = NewValidationError("image is required")
	ErrTitleTooLong    = NewValidationError("title must be at most 100 characters")
	ErrInvalidCategory = NewValidationError("invalid category")
	ErrEmptyComment    = NewValidationError("comment text is required")
)

const (
	artworkFolder        = "creative-showcase"
	defaultSearchLimit   = 12
	defaultFeaturedSize  = 8
	defaultPageSize      = 12
	maxDescriptionLength = 1000
)

// ImageUpload carries an inbound multipart image into the blob store.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

type CreateArtworkInput struct {
	Title       string
	Description string
	// Comma-separated tag list, normalized on create.
	Tags     string
	Category string
	Image    *ImageUpload
}

// PagedArtworks is the response shape for paginated owner listings.
type PagedArtworks struct {
	Artworks    []models.Artwork `json:"artworks"`
	Total       int64            `json:"total"`
	Pages       int64            `json:"pages"`
	CurrentPage int              `json:"currentPage"`
}

type ArtworkService struct {
	artworkRepo *repository.ArtworkRepository
	userRepo    *repository.UserRepository
	blobStore   storage.BlobStore
}

func NewArtworkService(artworkRepo *repository.ArtworkRepository, userRepo *repository.UserRepository, blobStore storage.BlobStore) *ArtworkService {
	return &ArtworkService{
		artworkRepo: artworkRepo,
		userRepo:    userRepo,
		blobStore:   blobStore,
	}
}

func (s *ArtworkService) Create(ctx context.Context, artistID uuid.UUID, input CreateArtworkInput) (*models.Artwork, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(title) > 100 {
		return nil, ErrTitleTooLong
	}
	if input.Image == nil {
		return nil, ErrImageRequired
	}
	if len(input.Description) > maxDescriptionLength {
		return nil, NewValidationError("description must be at most 1000 characters")
	}

	category := models.CategoryDigital
	if strings.TrimSpace(input.Category) != "" {
		parsed, ok := models.ParseCategory(input.Category)
		if !ok {
			return nil, ErrInvalidCategory
		}
		category = parsed
	}

	// The artist reference must resolve before anything is stored.
	artist, err := s.userRepo.GetUserByID(artistID)
	if err != nil {
		logger.Log.Error("Failed to resolve artist",
			zap.String("artist_id", artistID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if artist == nil {
		return nil, ErrUserNotFound
	}

	url, key, err := s.blobStore.Store(ctx, input.Image.Reader, input.Image.Size, artworkFolder, input.Image.ContentType)
	if err != nil {
		logger.Log.Error("Failed to store artwork image",
			zap.String("artist_id", artistID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	artwork := &models.Artwork{
		Title:         title,
		Description:   input.Description,
		ImageURL:      url,
		ImageKey:      key,
		ArtistID:      artistID,
		Tags:          splitCommaList(input.Tags),
		Category:      category,
		IsPublic:      true,
		AllowComments: true,
	}

	if err := s.artworkRepo.CreateArtwork(artwork); err != nil {
		logger.Log.Error("Failed to create artwork",
			zap.String("artist_id", artistID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	artwork.Artist = *artist.Sanitize()
	artwork.Likes = []models.ArtworkLike{}
	artwork.Comments = []models.Comment{}

	logger.Log.Info("Artwork created",
		zap.String("artwork_id", artwork.ID.String()),
		zap.String("artist_id", artistID.String()),
		zap.String("category", string(category)),
	)

	return artwork, nil
}

// GetByID returns the artwork with artist and comment authors populated and
// bumps the view counter. Every successful fetch counts as a view.
func (s *ArtworkService) GetByID(id uuid.UUID) (*models.Artwork, error) {
	artwork, err := s.artworkRepo.GetArtworkByID(id)
	if err != nil {
		logger.Log.Error("Failed to get artwork",
			zap.String("artwork_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if artwork == nil {
		return nil, ErrArtworkNotFound
	}

	if err := s.artworkRepo.IncrementViews(id); err != nil {
		logger.Log.Error("Failed to increment views",
			zap.String("artwork_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}
	artwork.Views++

	artwork.Artist.Sanitize()
	for i := range artwork.Comments {
		artwork.Comments[i].Author.Sanitize()
	}

	return artwork, nil
}

func (s *ArtworkService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	artwork, err := s.artworkRepo.GetArtworkByID(id)
	if err != nil {
		logger.Log.Error("Failed to get artwork for deletion",
			zap.String("artwork_id", id.String()),
			zap.Error(err),
		)
		return err
	}
	if artwork == nil {
		return ErrArtworkNotFound
	}
	if artwork.ArtistID != callerID {
		logger.Log.Warn("Artwork deletion rejected: not the owner",
			zap.String("artwork_id", id.String()),
			zap.String("caller_id", callerID.String()),
		)
		return ErrNotArtworkOwner
	}

	// Best-effort: a failed asset deletion never aborts record deletion.
	if err := s.blobStore.Delete(ctx, artwork.ImageKey); err != nil {
		logger.Log.Warn("Failed to delete artwork image asset",
			zap.String("artwork_id", id.String()),
			zap.String("image_key", artwork.ImageKey),
			zap.Error(err),
		)
	}

	if err := s.artworkRepo.DeleteArtwork(id); err != nil {
		logger.Log.Error("Failed to delete artwork",
			zap.String("artwork_id", id.String()),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Artwork deleted",
		zap.String("artwork_id", id.String()),
		zap.String("artist_id", callerID.String()),
	)

	return nil
}

// ToggleLike flips the caller's membership in the artwork's like set and
// returns the new state plus the full set. Membership lives in its own
// table, so concurrent toggles never produce duplicates.
func (s *ArtworkService) ToggleLike(id, callerID uuid.UUID) (bool, []models.ArtworkLike, error) {
	artwork, err := s.artworkRepo.GetArtworkByID(id)
	if err != nil {
		return false, nil, err
	}
	if artwork == nil {
		return false, nil, ErrArtworkNotFound
	}

	removed, err := s.artworkRepo.RemoveLike(id, callerID)
	if err != nil {
		logger.Log.Error("Failed to toggle like",
			zap.String("artwork_id", id.String()),
			zap.String("user_id", callerID.String()),
			zap.Error(err),
		)
		return false, nil, err
	}

	liked := false
	if !removed {
		if err := s.artworkRepo.AddLike(id, callerID); err != nil {
			logger.Log.Error("Failed to add like",
				zap.String("artwork_id", id.String()),
				zap.String("user_id", callerID.String()),
				zap.Error(err),
			)
			return false, nil, err
		}
		liked = true
	}

	likes, err := s.artworkRepo.GetLikes(id)
	if err != nil {
		return false, nil, err
	}

	return liked, likes, nil
}

func (s *ArtworkService) Search(query, category, sortKey string, limit int) ([]models.Artwork, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var parsedCategory models.Category
	if c := strings.TrimSpace(category); c != "" && !strings.EqualFold(c, "All") {
		parsed, ok := models.ParseCategory(c)
		if !ok {
			// Unknown category can't match any public artwork.
			return []models.Artwork{}, nil
		}
		parsedCategory = parsed
	}

	artworks, err := s.artworkRepo.SearchArtworks(strings.TrimSpace(query), parsedCategory, sortKey, limit)
	if err != nil {
		logger.Log.Error("Artwork search failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil, err
	}

	for i := range artworks {
		artworks[i].Artist.Sanitize()
	}

	return artworks, nil
}

func (s *ArtworkService) Featured(sampleSize int) ([]models.Artwork, error) {
	if sampleSize <= 0 {
		sampleSize = defaultFeaturedSize
	}

	artworks, err := s.artworkRepo.GetFeatured(sampleSize)
	if err != nil {
		logger.Log.Error("Failed to fetch featured artworks", zap.Error(err))
		return nil, err
	}

	for i := range artworks {
		artworks[i].Artist.Sanitize()
	}

	return artworks, nil
}

// ListByOwner returns every artwork the owner has, public and private,
// newest first. Dashboard view.
func (s *ArtworkService) ListByOwner(ownerID uuid.UUID) ([]models.Artwork, error) {
	artworks, err := s.artworkRepo.GetArtworksByArtist(ownerID)
	if err != nil {
		logger.Log.Error("Failed to list artworks by owner",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return artworks, nil
}

// ListByOwnerPaged returns a page of the owner's public artworks with the
// total count and page count.
func (s *ArtworkService) ListByOwnerPaged(ownerID uuid.UUID, page, limit int, sortKey string) (*PagedArtworks, error) {
	owner, err := s.userRepo.GetUserByID(ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}

	artworks, err := s.artworkRepo.GetPublicArtworksByArtist(ownerID, (page-1)*limit, limit, sortKey)
	if err != nil {
		logger.Log.Error("Failed to list paged artworks",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	total, err := s.artworkRepo.CountPublicArtworksByArtist(ownerID)
	if err != nil {
		return nil, err
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	if artworks == nil {
		artworks = []models.Artwork{}
	}

	return &PagedArtworks{
		Artworks:    artworks,
		Total:       total,
		Pages:       pages,
		CurrentPage: page,
	}, nil
}

// PostComment appends a comment to the artwork's thread. Comments are
// ordered oldest first.
func (s *ArtworkService) PostComment(artworkID, authorID uuid.UUID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	if len(text) > maxDescriptionLength {
		return nil, NewValidationError("comment must be at most 1000 characters")
	}

	artwork, err := s.artworkRepo.GetArtworkByID(artworkID)
	if err != nil {
		return nil, err
	}
	if artwork == nil {
		return nil, ErrArtworkNotFound
	}
	if !artwork.AllowComments {
		return nil, ErrCommentsDisabled
	}

	author, err := s.userRepo.GetUserByID(authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	comment := &models.Comment{
		ArtworkID: artworkID,
		AuthorID:  authorID,
		Text:      text,
	}

	if err := s.artworkRepo.CreateComment(comment); err != nil {
		logger.Log.Error("Failed to create comment",
			zap.String("artwork_id", artworkID.String()),
			zap.String("author_id", authorID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	comment.Author = *author.Sanitize()
	comment.Likes = []models.CommentLike{}

	logger.Log.Info("Comment posted",
		zap.String("artwork_id", artworkID.String()),
		zap.String("comment_id", comment.ID.String()),
	)

	return comment, nil
}

// ToggleCommentLike flips the caller's membership in a comment's like set,
// same shape as ToggleLike.
func (s *ArtworkService) ToggleCommentLike(artworkID, commentID, callerID uuid.UUID) (bool, []models.CommentLike, error) {
	comment, err := s.artworkRepo.GetCommentByID(artworkID, commentID)
	if err != nil {
		return false, nil, err
	}
	if comment == nil {
		return false, nil, ErrCommentNotFound
	}

	removed, err := s.artworkRepo.RemoveCommentLike(commentID, callerID)
	if err != nil {
		return false, nil, err
	}

	liked := false
	if !removed {
		if err := s.artworkRepo.AddCommentLike(commentID, callerID); err != nil {
			return false, nil, err
		}
		liked = true
	}

	likes, err := s.artworkRepo.GetCommentLikes(commentID)
	if err != nil {
		return false, nil, err
	}

	return liked, likes, nil
}

// splitCommaList normalizes comma-separated input into a trimmed list with
// empty entries dropped.
func splitCommaList(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
