package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/artstack/creative-showcase/internal/models"
	"github.com/artstack/creative-showcase/internal/repository"
	"github.com/artstack/creative-showcase/internal/storage"
	"github.com/artstack/creative-showcase/internal/utils"
	"github.com/artstack/creative-showcase/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmailInUse    = errors.New("email already in use")
	ErrWrongPassword = errors.New("current password is incorrect")

	ErrCurrentPasswordRequired = NewValidationError("current password is required to change password")
	ErrSearchQueryTooShort     = NewValidationError("search query must be at least 2 characters")
)

// ImageSlot selects which of the user's image assets an upload targets.
type ImageSlot string

const (
	SlotProfilePicture ImageSlot = "profilePicture"
	SlotCoverImage     ImageSlot = "coverImage"
)

func (s ImageSlot) folder() string {
	if s == SlotCoverImage {
		return "creative-showcase/covers"
	}
	return "creative-showcase/profiles"
}

// ProfileStats mirrors the public profile stat block. Followers and
// following stay at zero: there is no follower graph.
type ProfileStats struct {
	Artworks   int64 `json:"artworks"`
	Followers  int64 `json:"followers"`
	Following  int64 `json:"following"`
	TotalViews int64 `json:"totalViews"`
	TotalLikes int64 `json:"totalLikes"`
}

// PublicProfile bundles a user's public fields with their public artworks
// and aggregate stats.
type PublicProfile struct {
	User     *models.User     `json:"user"`
	Artworks []models.Artwork `json:"artworks"`
	Stats    ProfileStats     `json:"stats"`
}

// UpdateProfileInput uses pointers for partial-update semantics: a nil
// field means "do not change", not "clear".
type UpdateProfileInput struct {
	DisplayName *string
	Bio         *string
	Location    *string
	Website     *string
	Occupation  *string
	Education   *string
	// Comma-separated; normalized into a trimmed, non-empty list.
	Skills *string
}

type UserService struct {
	userRepo    *repository.UserRepository
	artworkRepo *repository.ArtworkRepository
	blobStore   storage.BlobStore
}

func NewUserService(userRepo *repository.UserRepository, artworkRepo *repository.ArtworkRepository, blobStore storage.BlobStore) *UserService {
	return &UserService{
		userRepo:    userRepo,
		artworkRepo: artworkRepo,
		blobStore:   blobStore,
	}
}

// GetPublicProfile resolves a username to the profile page payload: public
// fields, public artworks newest first, and computed stats.
func (s *UserService) GetPublicProfile(username string) (*PublicProfile, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to get user by username",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	artworks, err := s.artworkRepo.GetPublicArtworksByArtist(user.ID, 0, -1, repository.SortNewest)
	if err != nil {
		logger.Log.Error("Failed to list profile artworks",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if artworks == nil {
		artworks = []models.Artwork{}
	}

	stats, err := s.artworkRepo.GetArtistStats(user.ID)
	if err != nil {
		logger.Log.Error("Failed to compute profile stats",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return &PublicProfile{
		User:     user.Sanitize(),
		Artworks: artworks,
		Stats: ProfileStats{
			Artworks:   stats.Artworks,
			TotalViews: stats.TotalViews,
			TotalLikes: stats.TotalLikes,
		},
	}, nil
}

// GetMe returns the caller's own record, email included.
func (s *UserService) GetMe(callerID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies the provided fields and leaves the rest untouched.
func (s *UserService) UpdateProfile(callerID uuid.UUID, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	fields := map[string]interface{}{}
	if input.DisplayName != nil {
		fields["display_name"] = strings.TrimSpace(*input.DisplayName)
	}
	if input.Bio != nil {
		if len(*input.Bio) > 500 {
			return nil, NewValidationError("bio must be at most 500 characters")
		}
		fields["bio"] = *input.Bio
	}
	if input.Location != nil {
		fields["location"] = *input.Location
	}
	if input.Website != nil {
		fields["website"] = *input.Website
	}
	if input.Occupation != nil {
		fields["occupation"] = *input.Occupation
	}
	if input.Education != nil {
		fields["education"] = *input.Education
	}
	if input.Skills != nil {
		// Column-level update bypasses the model serializer, so encode here.
		encoded, err := json.Marshal(splitCommaList(*input.Skills))
		if err != nil {
			return nil, err
		}
		fields["skills"] = string(encoded)
	}

	if err := s.userRepo.UpdateUser(callerID, fields); err != nil {
		logger.Log.Error("Failed to update profile",
			zap.String("user_id", callerID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	updated, err := s.userRepo.GetUserByID(callerID)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Profile updated",
		zap.String("user_id", callerID.String()),
		zap.Int("fields", len(fields)),
	)

	return updated, nil
}

// UpdateImage replaces or clears the avatar or cover slot. A nil upload
// clears the slot. The previous asset is deleted best-effort either way.
func (s *UserService) UpdateImage(ctx context.Context, callerID uuid.UUID, slot ImageSlot, upload *ImageUpload) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	oldKey := user.ProfilePictureKey
	if slot == SlotCoverImage {
		oldKey = user.CoverImageKey
	}

	var url, key string
	if upload != nil {
		url, key, err = s.blobStore.Store(ctx, upload.Reader, upload.Size, slot.folder(), upload.ContentType)
		if err != nil {
			logger.Log.Error("Failed to store user image",
				zap.String("user_id", callerID.String()),
				zap.String("slot", string(slot)),
				zap.Error(err),
			)
			return nil, err
		}
	}

	if oldKey != "" {
		if err := s.blobStore.Delete(ctx, oldKey); err != nil {
			logger.Log.Warn("Failed to delete previous image asset",
				zap.String("user_id", callerID.String()),
				zap.String("image_key", oldKey),
				zap.Error(err),
			)
		}
	}

	fields := map[string]interface{}{}
	if slot == SlotCoverImage {
		fields["cover_image"] = url
		fields["cover_image_key"] = key
	} else {
		fields["profile_picture"] = url
		fields["profile_picture_key"] = key
	}

	if err := s.userRepo.UpdateUser(callerID, fields); err != nil {
		logger.Log.Error("Failed to persist user image",
			zap.String("user_id", callerID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("User image updated",
		zap.String("user_id", callerID.String()),
		zap.String("slot", string(slot)),
		zap.Bool("cleared", upload == nil),
	)

	return s.userRepo.GetUserByID(callerID)
}

// UpdateAccount changes the email and/or password. A password change
// requires the current password and re-hashes the new one.
func (s *UserService) UpdateAccount(callerID uuid.UUID, newEmail, currentPassword, newPassword string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	fields := map[string]interface{}{}

	newEmail = strings.ToLower(strings.TrimSpace(newEmail))
	if newEmail != "" && newEmail != user.Email {
		if !emailRegex.MatchString(newEmail) {
			return nil, NewValidationError("invalid email format")
		}
		existing, err := s.userRepo.GetUserByEmail(newEmail)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != callerID {
			return nil, ErrEmailInUse
		}
		fields["email"] = newEmail
	}

	if newPassword != "" {
		if currentPassword == "" {
			return nil, ErrCurrentPasswordRequired
		}
		valid, err := utils.VerifyPassword(currentPassword, user.PasswordHash)
		if err != nil {
			return nil, err
		}
		if !valid {
			logger.Log.Warn("Account update rejected: wrong current password",
				zap.String("user_id", callerID.String()),
			)
			return nil, ErrWrongPassword
		}
		if len(newPassword) < 6 {
			return nil, NewValidationError("password must be at least 6 characters")
		}
		hashed, err := utils.HashPassword(newPassword)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hashed
	}

	if err := s.userRepo.UpdateUser(callerID, fields); err != nil {
		logger.Log.Error("Failed to update account",
			zap.String("user_id", callerID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Account updated",
		zap.String("user_id", callerID.String()),
		zap.Bool("email_changed", fields["email"] != nil),
		zap.Bool("password_changed", fields["password_hash"] != nil),
	)

	return s.userRepo.GetUserByID(callerID)
}

// DeleteAccount removes the user, every artwork they own, and all stored
// media assets. Asset deletions are best-effort; record deletions are not.
func (s *UserService) DeleteAccount(ctx context.Context, callerID uuid.UUID) error {
	user, err := s.userRepo.GetUserByID(callerID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	for _, key := range []string{user.ProfilePictureKey, user.CoverImageKey} {
		if key == "" {
			continue
		}
		if err := s.blobStore.Delete(ctx, key); err != nil {
			logger.Log.Warn("Failed to delete user image asset",
				zap.String("user_id", callerID.String()),
				zap.String("image_key", key),
				zap.Error(err),
			)
		}
	}

	artworks, err := s.artworkRepo.GetArtworksByArtist(callerID)
	if err != nil {
		logger.Log.Error("Failed to list artworks for account deletion",
			zap.String("user_id", callerID.String()),
			zap.Error(err),
		)
		return err
	}

	for _, artwork := range artworks {
		if err := s.blobStore.Delete(ctx, artwork.ImageKey); err != nil {
			logger.Log.Warn("Failed to delete artwork image asset",
				zap.String("artwork_id", artwork.ID.String()),
				zap.Error(err),
			)
		}
		if err := s.artworkRepo.DeleteArtwork(artwork.ID); err != nil {
			logger.Log.Error("Failed to delete artwork during account deletion",
				zap.String("artwork_id", artwork.ID.String()),
				zap.Error(err),
			)
			return err
		}
	}

	if err := s.userRepo.DeleteUser(callerID); err != nil {
		logger.Log.Error("Failed to delete user",
			zap.String("user_id", callerID.String()),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Account deleted",
		zap.String("user_id", callerID.String()),
		zap.Int("artworks_removed", len(artworks)),
	)

	return nil
}

// SearchUsers matches usernames and display names, ten results at most.
func (s *UserService) SearchUsers(query string) ([]models.UserSummary, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, ErrSearchQueryTooShort
	}

	users, err := s.userRepo.SearchUsers(query, 10)
	if err != nil {
		logger.Log.Error("User search failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}

	return summaries, nil
}
