package v1

import (
	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AboutMeHandler struct {
	aboutMeUC domain.AboutMeUsecase
}

func NewAboutMeHandler(public, authoring *gin.RouterGroup, aboutMeUC domain.AboutMeUsecase) {
	handler := &AboutMeHandler{aboutMeUC: aboutMeUC}

	public.GET("/about-me", handler.Get)
	authoring.PUT("/about-me", handler.Update)
}

// GetAboutMe godoc
// @Summary      Teacher profile
// @Tags         about-me
// @Produce      json
// @Success      200  {object}  domain.AboutMe
// @Failure      404  {object}  response.ErrorBody
// @Router       /about-me [get]
func (h *AboutMeHandler) Get(c *gin.Context) {
	about, err := h.aboutMeUC.GetAboutMe(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, about)
}

// UpdateAboutMe godoc
// @Summary      Replace the teacher profile
// @Description  Blank list items are dropped before saving.
// @Tags         about-me
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.AboutMe  true  "Profile"
// @Success      200      {object}  domain.AboutMe
// @Failure      400      {object}  response.ErrorBody
// @Failure      403      {object}  response.ErrorBody
// @Router       /about-me [put]
// @Security     BearerAuth
func (h *AboutMeHandler) Update(c *gin.Context) {
	var in domain.AboutMe
	if err := c.ShouldBindJSON(&in); err != nil {
		c.Error(apperror.BadRequest(msgBadBody))
		return
	}

	about, err := h.aboutMeUC.UpdateAboutMe(c, &in)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, about)
}
