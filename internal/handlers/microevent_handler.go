package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nomadfest/api/internal/helpers"
	"github.com/nomadfest/api/internal/middleware"
	"github.com/nomadfest/api/internal/models"
)

func ListMicroevents(c *gin.Context) {
	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	rows, err := services.Microevents.GetAll()
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func GetMicroevent(c *gin.Context) {
	id, err := helpers.StringToInt64(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid microevent id.")
		return
	}

	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	row, err := services.Microevents.GetByID(id)
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func GetMicroeventsByEvent(c *gin.Context) {
	eventID, err := helpers.StringToInt64(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event id.")
		return
	}

	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	rows, err := services.Microevents.GetByEvent(eventID)
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func CreateMicroevent(c *gin.Context) {
	var row models.Microevent
	if err := c.ShouldBindJSON(&row); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid microevent payload.")
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	id, err := services.Microevents.Create(row, claims)
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Microevent created successfully.",
		"microevent_id": id,
	})
}

func UpdateMicroevent(c *gin.Context) {
	id, err := helpers.StringToInt64(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid microevent id.")
		return
	}

	var row models.Microevent
	if err := c.ShouldBindJSON(&row); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid microevent payload.")
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	if err := services.Microevents.Update(id, row, claims); err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Microevent updated successfully."})
}

func DeleteMicroevent(c *gin.Context) {
	id, err := helpers.StringToInt64(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid microevent id.")
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	if err := services.Microevents.Delete(id, claims); err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Microevent deleted successfully."})
}
