package handler

import (
	"net/http"

	"github.com/artstack/creative-showcase/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxProfilePictureSize = 2 << 20 // 2MB
	maxCoverImageSize     = 5 << 20 // 5MB
)

type UserHandler struct {
	userService    *service.UserService
	artworkService *service.ArtworkService
}

func NewUserHandler(userService *service.UserService, artworkService *service.ArtworkService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		artworkService: artworkService,
	}
}

// GetProfile returns a user's public profile: safe fields, public artworks,
// and aggregate stats.
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetPublicProfile(c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	Website     *string `json:"website"`
	Occupation  *string `json:"occupation"`
	Education   *string `json:"education"`
	Skills      *string `json:"skills"`
}

// UpdateProfile applies a partial profile update: absent fields are left
// untouched.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.userService.UpdateProfile(currentUserID(c), service.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Location:    req.Location,
		Website:     req.Website,
		Occupation:  req.Occupation,
		Education:   req.Education,
		Skills:      req.Skills,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	h.uploadImage(c, service.SlotProfilePicture, "profilePicture", maxProfilePictureSize)
}

func (h *UserHandler) UploadCoverImage(c *gin.Context) {
	h.uploadImage(c, service.SlotCoverImage, "coverImage", maxCoverImageSize)
}

func (h *UserHandler) uploadImage(c *gin.Context, slot service.ImageSlot, field string, maxSize int64) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
		return
	}
	if fileHeader.Size > maxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer file.Close()

	user, err := h.userService.UpdateImage(c.Request.Context(), currentUserID(c), slot, &service.ImageUpload{
		Reader:      file,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) RemoveProfilePicture(c *gin.Context) {
	h.removeImage(c, service.SlotProfilePicture)
}

func (h *UserHandler) RemoveCoverImage(c *gin.Context) {
	h.removeImage(c, service.SlotCoverImage)
}

func (h *UserHandler) removeImage(c *gin.Context, slot service.ImageSlot) {
	user, err := h.userService.UpdateImage(c.Request.Context(), currentUserID(c), slot, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateAccountRequest struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.userService.UpdateAccount(currentUserID(c), req.Email, req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) Me(c *gin.Context) {
	profile, err := h.userService.GetMe(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}

func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.userService.SearchUsers(c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// DeleteAccount removes the caller's account, artworks, and media assets.
// Irreversible.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.userService.DeleteAccount(c.Request.Context(), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

// ListArtworks returns a page of a user's public artworks.
func (h *UserHandler) ListArtworks(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), 12)
	sortKey := c.DefaultQuery("sort", "newest")

	result, err := h.artworkService.ListByOwnerPaged(ownerID, page, limit, sortKey)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
