package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nomadfest/api/internal/helpers"
	"github.com/nomadfest/api/internal/middleware"
	"github.com/nomadfest/api/internal/models"
)

func ListEventTypes(c *gin.Context) {
	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	rows, err := services.EventTypes.FindAll()
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func GetEventType(c *gin.Context) {
	id, err := helpers.StringToInt64(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event type id.")
		return
	}

	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	row, err := services.EventTypes.FindByID(id)
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func CreateEventType(c *gin.Context) {
	var row models.EventType
	if err := c.ShouldBindJSON(&row); err != nil || row.Name == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event type payload.")
		return
	}

	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	row.ID = 0
	if err := services.EventTypes.Create(&row); err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func UpdateEventType(c *gin.Context) {
	id, err := helpers.StringToInt64(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event type id.")
		return
	}

	var row models.EventType
	if err := c.ShouldBindJSON(&row); err != nil || row.Name == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event type payload.")
		return
	}

	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	updated, err := services.EventTypes.Update(id, &row)
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	if !updated {
		helpers.RespondWithError(c, http.StatusNotFound, "Event type not found.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event type updated successfully."})
}

func DeleteEventType(c *gin.Context) {
	id, err := helpers.StringToInt64(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event type id.")
		return
	}

	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	deleted, err := services.EventTypes.Delete(id)
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	if !deleted {
		helpers.RespondWithError(c, http.StatusNotFound, "Event type not found.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event type deleted successfully."})
}
