package response

import (
	"go-portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every non-2xx answer.
type ErrorBody struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// JSON sends the bare entity. The front end reads records without an envelope.
func JSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	idStr := c.GetString(string(domain.KeyRequestID))

	c.JSON(code, ErrorBody{
		Message:   message,
		RequestID: idStr,
	})
}
