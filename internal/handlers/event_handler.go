package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nomadfest/api/internal/helpers"
	"github.com/nomadfest/api/internal/middleware"
	"github.com/nomadfest/api/internal/models"
)

func ListEvents(c *gin.Context) {
	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	events, err := services.Events.GetAll()
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func GetEvent(c *gin.Context) {
	id, err := helpers.StringToInt64(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event id.")
		return
	}

	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	event, err := services.Events.GetByID(id)
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func GetEventsByType(c *gin.Context) {
	typeID, err := helpers.StringToInt64(c.Param("type_id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event type id.")
		return
	}

	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	events, err := services.Events.GetByType(typeID)
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func SearchNearbyEvents(c *gin.Context) {
	lat, latErr := helpers.StringToFloat64(c.Query("lat"))
	lon, lonErr := helpers.StringToFloat64(c.Query("lon"))
	radius, radErr := helpers.StringToFloat64(c.DefaultQuery("radius", "50"))
	if latErr != nil || lonErr != nil || radErr != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "lat, lon and radius must be numbers.")
		return
	}

	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	events, err := services.Events.GetNearby(lat, lon, radius)
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func CreateEvent(c *gin.Context) {
	var doc models.EventDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event payload.")
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

	id, err := services.Events.Create(doc, claims)
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event created successfully.",
		"event_id": id,
	})
}

func UpdateEvent(c *gin.Context) {
	id, err := helpers.StringToInt64(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event id.")
		return
	}

	var doc models.EventDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event payload.")
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

	if err := services.Events.Update(id, doc, claims); err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully."})
}

func DeleteEvent(c *gin.Context) {
	id, err := helpers.StringToInt64(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event id.")
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

	if err := services.Events.Delete(id, claims); err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully."})
}
