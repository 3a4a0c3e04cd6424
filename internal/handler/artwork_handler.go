package handler

import (
	"net/http"
	"strconv"

	"github.com/artstack/creative-showcase/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxArtworkImageSize = 10 << 20 // 10MB

type ArtworkHandler struct {
	artworkService *service.ArtworkService
}

func NewArtworkHandler(artworkService *service.ArtworkService) *ArtworkHandler {
	return &ArtworkHandler{
		artworkService: artworkService,
	}
}

// Upload handles the multipart artwork upload: the image file plus the
// title/description/tags/category fields.
func (h *ArtworkHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	if fileHeader.Size > maxArtworkImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image must be at most 10MB"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer file.Close()

	input := service.CreateArtworkInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Tags:        c.PostForm("tags"),
		Category:    c.PostForm("category"),
		Image: &service.ImageUpload{
			Reader:      file,
			Size:        fileHeader.Size,
			ContentType: fileHeader.Header.Get("Content-Type"),
		},
	}

	artwork, err := h.artworkService.Create(c.Request.Context(), currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, artwork)
}

// Featured returns a fresh random sample of public artworks.
func (h *ArtworkHandler) Featured(c *gin.Context) {
	artworks, err := h.artworkService.Featured(0)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, artworks)
}

// Dashboard lists the caller's own artworks, private ones included.
func (h *ArtworkHandler) Dashboard(c *gin.Context) {
	artworks, err := h.artworkService.ListByOwner(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, artworks)
}

// Search filters public artworks by q, category, and sortBy query params.
func (h *ArtworkHandler) Search(c *gin.Context) {
	artworks, err := h.artworkService.Search(
		c.Query("q"),
		c.Query("category"),
		c.DefaultQuery("sortBy", "newest"),
		0,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, artworks)
}

// GetByID returns the artwork detail. Every successful fetch increments the
// view counter, whoever the caller is.
func (h *ArtworkHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "artwork not found"})
		return
	}

	artwork, err := h.artworkService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, artwork)
}

func (h *ArtworkHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "artwork not found"})
		return
	}

	if err := h.artworkService.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Artwork removed"})
}

// ToggleLike flips the caller's like and returns the new membership state
// with the full like set.
func (h *ArtworkHandler) ToggleLike(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "artwork not found"})
		return
	}

	liked, likes, err := h.artworkService.ToggleLike(id, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked": liked,
		"likes": likes,
	})
}

type PostCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *ArtworkHandler) PostComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "artwork not found"})
		return
	}

	var req PostCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	comment, err := h.artworkService.PostComment(id, currentUserID(c), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *ArtworkHandler) ToggleCommentLike(c *gin.Context) {
	artworkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "artwork not found"})
		return
	}
	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}

	liked, likes, err := h.artworkService.ToggleCommentLike(artworkID, commentID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked": liked,
		"likes": likes,
	})
}

// parsePositiveInt reads a positive integer query param, falling back on
// absent or malformed values.
func parsePositiveInt(raw string, fallback int) int {
	val, err := strconv.Atoi(raw)
	if err != nil || val < 1 {
		return fallback
	}
	return val
}
