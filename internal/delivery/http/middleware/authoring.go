package middleware

import (
	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/auth"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	msgReadOnly     = "الموقع في وضع العرض فقط"
	msgUnauthorized = "يلزم تسجيل الدخول لتعديل المحتوى"
)

// AuthoringGuard protects mutating routes. When editable is false every request is
// refused. When signer has a secret a valid bearer token is also required.
func AuthoringGuard(editable bool, signer *auth.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !editable {
			response.Error(c, http.StatusForbidden, msgReadOnly)
			c.Abort()
			return
		}

		if !signer.Enabled() {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			response.Error(c, http.StatusUnauthorized, msgUnauthorized)
			c.Abort()
			return
		}

		subject, err := signer.Verify(raw)
		if err != nil {
			log.Warn().Err(err).Str("ip", c.ClientIP()).Str("path", c.FullPath()).Msg("authoring token rejected")
			response.Error(c, http.StatusUnauthorized, msgUnauthorized)
			c.Abort()
			return
		}

		c.Set(string(domain.KeySubject), subject)
		c.Next()
	}
}
