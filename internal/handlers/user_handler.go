package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nomadfest/api/internal/auth"
	"github.com/nomadfest/api/internal/helpers"
	"github.com/nomadfest/api/internal/middleware"
	"github.com/nomadfest/api/internal/models"
)

func ListUsers(c *gin.Context) {
	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	var users []models.User
	if err := services.DB.Order("created_at").Find(&users).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to list users.")
		return
	}
	c.JSON(http.StatusOK, users)
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateUserRole is super-admin only; admins cannot promote or demote
// other admins.
func UpdateUserRole(c *gin.Context) {
	var req UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil || !auth.Role(req.Role).Valid() {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid role.")
		return
	}

	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	result := services.DB.Model(&models.User{}).Where("id = ?", c.Param("id")).Update("role", req.Role)
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update role.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully."})
}
