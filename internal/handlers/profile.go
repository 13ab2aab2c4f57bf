package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/pollboard/backend/internal/middleware"
	"github.com/emilythestrangee/pollboard/backend/internal/models"
	"github.com/emilythestrangee/pollboard/backend/internal/service"
	"github.com/emilythestrangee/pollboard/backend/internal/storage"
)

type ProfileHandler struct {
	db     *gorm.DB
	badges *service.BadgeService
	files  storage.FileStore
}

func NewProfileHandler(db *gorm.DB, badges *service.BadgeService, files storage.FileStore) *ProfileHandler {
	return &ProfileHandler{db: db, badges: badges, files: files}
}

// GetProfile returns the user's polls, activity counts and badges (PROTECTED)
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var polls []models.Poll
	h.db.Where("created_by = ?", userID).Order("created_at desc").Find(&polls)
	if polls == nil {
		polls = []models.Poll{}
	}

	var voteCount, commentCount int64
	h.db.Model(&models.Vote{}).Where("user_id = ?", userID).Count(&voteCount)
	h.db.Model(&models.Comment{}).Where("user_id = ?", userID).Count(&commentCount)

	badges, err := h.badges.ListForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if badges == nil {
		badges = []models.Badge{}
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"polls":         polls,
		"vote_count":    voteCount,
		"comment_count": commentCount,
		"badges":        badges,
	})
}

// UpdateProfile changes the user's display name. Allowed once. (PROTECTED)
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var input models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.NameChanged {
		c.JSON(http.StatusConflict, gin.H{"error": "You can only change your name once"})
		return
	}

	user.Name = input.Name
	user.NameChanged = true
	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UploadProfilePicture stores a new profile picture (PROTECTED, multipart)
func (h *ProfileHandler) UploadProfilePicture(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	file, err := c.FormFile("profile_picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "profile_picture file is required"})
		return
	}

	ref, err := h.files.Save("profiles", file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store picture"})
		return
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", userID).
		Update("profile_picture", ref).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile picture updated", "profile_picture": ref})
}
