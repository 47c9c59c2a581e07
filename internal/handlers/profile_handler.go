package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nomadfest/api/internal/helpers"
	"github.com/nomadfest/api/internal/middleware"
	"github.com/nomadfest/api/internal/models"
)

// GetProfile returns the authenticated user's own record.
func GetProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	services := middleware.GetServices(c)
	if claims == nil || services == nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var user models.User
	if err := services.DB.Where("id = ?", claims.UserID()).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}
	c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// UpdateProfile lets a user change their own username and email. Role and
// password move through their own flows.
func UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid profile payload.")
		return
	}

	claims := middleware.GetClaims(c)
	services := middleware.GetServices(c)
	if claims == nil || services == nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		if strings.TrimSpace(*req.Username) == "" {
			helpers.RespondWithError(c, http.StatusBadRequest, "Username cannot be empty.")
			return
		}
		updates["username"] = *req.Username
	}
	if req.Email != nil {
		if !validEmail(*req.Email) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid email format.")
			return
		}
		updates["email"] = *req.Email
	}
	if len(updates) == 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Nothing to update.")
		return
	}

	result := services.DB.Model(&models.User{}).Where("id = ?", claims.UserID()).Updates(updates)
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	var user models.User
	if err := services.DB.Where("id = ?", claims.UserID()).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to reload profile.")
		return
	}
	c.JSON(http.StatusOK, user)
}

func validEmail(email string) bool {
	if len(email) < 5 || len(email) > 254 {
		return false
	}
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}
