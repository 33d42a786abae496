package v1

import (
	"go-portfolio-backend/pkg/apperror"
	"strconv"

	"github.com/gin-gonic/gin"
)

const msgInvalidID = "معرف غير صالح"

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.Error(apperror.BadRequest(msgInvalidID))
		return 0, false
	}
	return id, true
}
