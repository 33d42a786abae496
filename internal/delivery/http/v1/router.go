package v1

import (
	"go-portfolio-backend/config"
	"go-portfolio-backend/internal/delivery/http/middleware"
	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/preview"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/auth"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ElementUC  domain.ElementUsecase
	EvidenceUC domain.EvidenceUsecase
	AboutMeUC  domain.AboutMeUsecase
	HealthUC   usecase.HealthUsecase
	Previews   *preview.Service // nil disables thumbnails
	Signer     *auth.Signer
	Config     *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(cfg.FrontendOrigins, !cfg.Release)) // before anything that can abort
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("recovered from panic")
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.AccessLog())
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler())

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "المسار غير موجود")
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	window := cfg.RateLimitWindow()

	api := r.Group(cfg.APIBasePath)
	api.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))

	authoring := api.Group("")
	authoring.Use(middleware.AuthoringGuard(cfg.Editable, deps.Signer))
	authoring.Use(middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig(cfg.RateLimitWriteThreshold, window)))
	{
		NewSiteHandler(&r.RouterGroup, api, domain.SiteConfig{Editable: cfg.Editable}, deps.HealthUC)
		NewElementHandler(api, deps.ElementUC)
		NewEvidenceHandler(api, authoring, deps.EvidenceUC, deps.Previews, cfg.MaxUploadBytes())
		NewAboutMeHandler(api, authoring, deps.AboutMeUC)
	}

	return r
}
