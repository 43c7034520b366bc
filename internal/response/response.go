// Package response implements the uniform {success, message, data} envelope.
package response

import "github.com/gin-gonic/gin"

type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Send writes the envelope with the given status. success=false with a 200
// status is reserved for "no matching records" results, which are not errors.
func Send(c *gin.Context, status int, success bool, message string, data interface{}) {
	c.JSON(status, Envelope{Success: success, Message: message, Data: data})
}
