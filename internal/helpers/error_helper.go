package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nomadfest/api/internal/apperr"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithAppError maps taxonomy errors to their status code. Database
// and serialization failures are reported as a bare 500; their detail stays
// in the server logs.
func RespondWithAppError(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		RespondWithError(c, http.StatusInternalServerError, "Internal server error.")
		return
	}

	status := ae.Status()
	if status == http.StatusInternalServerError {
		RespondWithError(c, status, "Internal server error.")
		return
	}
	RespondWithError(c, status, ae.Msg)
}
