package handlers

import (
	"fmt"
	"net/http"
	"time"

	"go-inventory-admin/internal/auth"
	"go-inventory-admin/internal/middleware"
	"go-inventory-admin/internal/models"
	"go-inventory-admin/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db       *gorm.DB
	sessions *auth.SessionStore
}

func NewAuthHandler(db *gorm.DB, sessions *auth.SessionStore) *AuthHandler {
	return &AuthHandler{db: db, sessions: sessions}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates by email and password. A failed match returns 401
// without creating a session or writing a log entry.
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	sess := h.sessions.Create(user.ID, user.Name)
	token, err := auth.GenerateToken(user.ID, user.Role, sess.ID)
	if err != nil {
		h.sessions.Delete(sess.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	now := time.Now()
	if err := h.db.Model(&user).Update("last_login", now).Error; err != nil {
		h.sessions.Delete(sess.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record login"})
		return
	}

	actor := services.Actor{ID: user.ID, Name: user.Name}
	details := fmt.Sprintf("%s logged in", user.Name)
	if err := services.LogActivity(h.db, actor, "Login", "User", details); err != nil {
		h.sessions.Delete(sess.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Logout ends the current session and records the transition.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString(middleware.CtxSessionID)
	sess, ok := h.sessions.Delete(sessionID)
	if ok {
		actor := services.Actor{ID: sess.UserID, Name: sess.UserName}
		details := fmt.Sprintf("%s logged out", sess.UserName)
		_ = services.LogActivity(h.db, actor, "Logout", "User", details)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the authenticated operator's account.
func (h *AuthHandler) Me(c *gin.Context) {
	actor := actorFrom(c)
	var user models.User
	if err := h.db.First(&user, actor.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
