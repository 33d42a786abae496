package v1

import (
	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/usecase"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SiteHandler struct {
	site     domain.SiteConfig
	healthUC usecase.HealthUsecase
}

// NewSiteHandler serves the site config under the API group and the health probe at root.
func NewSiteHandler(root, public *gin.RouterGroup, site domain.SiteConfig, healthUC usecase.HealthUsecase) {
	handler := &SiteHandler{site: site, healthUC: healthUC}

	public.GET("/site-config", handler.Config)
	root.GET("/health", handler.Health)
}

// SiteConfig godoc
// @Summary      Deployment flags for the view layer
// @Tags         site
// @Produce      json
// @Success      200  {object}  domain.SiteConfig
// @Router       /site-config [get]
func (h *SiteHandler) Config(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.site)
}

// Health godoc
// @Summary      Liveness and dependency status
// @Tags         site
// @Produce      json
// @Success      200  {object}  domain.HealthStatus
// @Failure      503  {object}  domain.HealthStatus
// @Router       /health [get]
func (h *SiteHandler) Health(c *gin.Context) {
	if h.healthUC == nil {
		response.JSON(c, http.StatusOK, domain.HealthStatus{Status: "ok"})
		return
	}

	status := h.healthUC.Check(c)
	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	response.JSON(c, code, status)
}
