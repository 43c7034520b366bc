package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/curelink/admin-api/internal/apperror"
	"github.com/curelink/admin-api/internal/response"
)

// ErrorHandler is the single translation point from errors to responses.
// Handlers record failures with c.Error and return; taxonomy errors map to
// their status and message, anything else becomes a generic 500. Internal
// detail is logged, never sent to the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if appErr := apperror.From(err); appErr != nil {
			if appErr.Status == http.StatusInternalServerError {
				log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			}
			response.Send(c, appErr.Status, false, appErr.Message, nil)
			return
		}

		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		response.Send(c, http.StatusInternalServerError, false, "Internal server error", nil)
	}
}
