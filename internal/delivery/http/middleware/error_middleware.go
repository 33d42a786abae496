package middleware

import (
	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorHandler renders the last error pushed with c.Error as {message, request_id}.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		reqID := c.GetString(string(domain.KeyRequestID))

		if appErr, ok := apperror.From(err); ok {
			if appErr.Code >= http.StatusInternalServerError {
				log.Error().Err(appErr.Err).Str("request_id", reqID).Str("path", c.FullPath()).Msg(appErr.Message)
			}
			response.Error(c, appErr.Code, appErr.Public())
			return
		}

		// Internal details stay in the log.
		log.Error().Err(err).Str("request_id", reqID).Str("path", c.FullPath()).Msg("unhandled error")
		response.Error(c, http.StatusInternalServerError, apperror.MsgInternal)
	}
}
