package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nomadfest/api/internal/collections"
	"github.com/nomadfest/api/internal/helpers"
	"github.com/nomadfest/api/internal/middleware"
)

func GetCollection(c *gin.Context) {
	claims := middleware.GetClaims(c)
	services := middleware.GetServices(c)
	if claims == nil || services == nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	record, err := services.Collections.Get(claims.UserID())
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// SyncCollection bulk-replaces the caller's favorite and saved lists. The
// engine keeps the stored created sets regardless of the request body.
func SyncCollection(c *gin.Context) {
	var req collections.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid collection payload.")
		return
	}

	claims := middleware.GetClaims(c)
	services := middleware.GetServices(c)
	if claims == nil || services == nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	record, err := services.Collections.Sync(req)
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func toggleHandler(set collections.Set, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := helpers.StringToInt64(c.Param("id"))
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid id.")
			return
		}

		claims := middleware.GetClaims(c)
		services := middleware.GetServices(c)
		if claims == nil || services == nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
			return
		}

		list, err := services.Collections.Toggle(claims.UserID(), set, id)
		if err != nil {
			helpers.RespondWithAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": message, string(set): list})
	}
}

var (
	EventFavoriteToggle      = toggleHandler(collections.FavoriteEvents, "Event favorite toggled!")
	EventSaveToggle          = toggleHandler(collections.SavedEvents, "Event save toggled!")
	MicroeventFavoriteToggle = toggleHandler(collections.FavoriteMicroevents, "Microevent favorite toggled!")
	MicroeventSaveToggle     = toggleHandler(collections.SavedMicroevents, "Microevent save toggled!")
)

func hydrateEventsHandler(set collections.Set) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		services := middleware.GetServices(c)
		if claims == nil || services == nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
			return
		}

		events, err := services.Collections.HydrateEvents(claims.UserID(), set)
		if err != nil {
			helpers.RespondWithAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

func hydrateMicroeventsHandler(set collections.Set) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		services := middleware.GetServices(c)
		if claims == nil || services == nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
			return
		}

		rows, err := services.Collections.HydrateMicroevents(claims.UserID(), set)
		if err != nil {
			helpers.RespondWithAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

var (
	GetFavoriteEvents      = hydrateEventsHandler(collections.FavoriteEvents)
	GetSavedEvents         = hydrateEventsHandler(collections.SavedEvents)
	GetCreatedEvents       = hydrateEventsHandler(collections.CreatedEvents)
	GetFavoriteMicroevents = hydrateMicroeventsHandler(collections.FavoriteMicroevents)
	GetSavedMicroevents    = hydrateMicroeventsHandler(collections.SavedMicroevents)
	GetCreatedMicroevents  = hydrateMicroeventsHandler(collections.CreatedMicroevents)
)
