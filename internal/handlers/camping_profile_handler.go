package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nomadfest/api/internal/helpers"
	"github.com/nomadfest/api/internal/middleware"
	"github.com/nomadfest/api/internal/models"
)

func ListCampingProfiles(c *gin.Context) {
	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	rows, err := services.CampingProfiles.FindAll()
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}

	out := make([]models.CampingProfileResponse, 0, len(rows))
	for i := range rows {
		resp, err := rows[i].Response()
		if err != nil {
			continue
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

func GetCampingProfile(c *gin.Context) {
	row, ok := findCampingProfile(c)
	if !ok {
		return
	}

	resp, err := row.Response()
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Stored camping profile is malformed.")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ApplyCampingProfile returns only the template's CampingInfo block, shaped
// for pasting into a new event document.
func ApplyCampingProfile(c *gin.Context) {
	row, ok := findCampingProfile(c)
	if !ok {
		return
	}

	resp, err := row.Response()
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Stored camping profile is malformed.")
		return
	}
	c.JSON(http.StatusOK, resp.CampingInfo)
}

func CreateCampingProfile(c *gin.Context) {
	row, ok := bindCampingProfile(c)
	if !ok {
		return
	}

	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	if err := services.CampingProfiles.Create(row); err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Camping profile created successfully.",
		"profile_id": row.ID,
	})
}

func UpdateCampingProfile(c *gin.Context) {
	id, err := helpers.StringToInt64(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid camping profile id.")
		return
	}

	row, ok := bindCampingProfile(c)
	if !ok {
		return
	}

	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	updated, err := services.CampingProfiles.Update(id, row)
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	if !updated {
		helpers.RespondWithError(c, http.StatusNotFound, "Camping profile not found.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Camping profile updated successfully."})
}

func DeleteCampingProfile(c *gin.Context) {
	id, err := helpers.StringToInt64(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid camping profile id.")
		return
	}

	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return
	}

	deleted, err := services.CampingProfiles.Delete(id)
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	if !deleted {
		helpers.RespondWithError(c, http.StatusNotFound, "Camping profile not found.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Camping profile deleted successfully."})
}

func findCampingProfile(c *gin.Context) (*models.CampingProfile, bool) {
	id, err := helpers.StringToInt64(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid camping profile id.")
		return nil, false
	}

	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not available.")
		return nil, false
	}

	row, err := services.CampingProfiles.FindByID(id)
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return nil, false
	}
	return row, true
}

// bindCampingProfile decodes and validates the template payload and builds
// the row: queryable columns copied out of the document, snapshot alongside.
func bindCampingProfile(c *gin.Context) (*models.CampingProfile, bool) {
	var doc models.CampingProfileDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid camping profile payload.")
		return nil, false
	}
	if strings.TrimSpace(doc.ProfileName) == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Profile name cannot be empty.")
		return nil, false
	}

	snapshot, err := json.Marshal(doc)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to serialize camping profile.")
		return nil, false
	}

	return &models.CampingProfile{
		ProfileName: doc.ProfileName,
		Description: doc.Description,
		CampingData: models.JSONDocument(snapshot),
	}, true
}
