package handlers

import (
	"time"

	portssvc "github.com/daily-verse/backend/internal/core/ports/services"
	"github.com/daily-verse/backend/internal/middleware"
	"github.com/daily-verse/backend/internal/platform/config"
	"github.com/daily-verse/backend/internal/platform/telegram"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	verifier *telegram.Verifier,
) {
	registerCustomValidators()

	r.Use(cors.New(corsConfig(cfg)))
	r.Use(rateLimitMiddleware(cfg))

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Verification happens inside the handler, so no auth middleware here.
	r.POST("/api/webapp/auth/verify", newAuthHandler(verifier, services.User).verify)

	setupWebAppRoutes(r, verifier, services)
	setupInternalRoutes(r, cfg, services)
}

// setupWebAppRoutes configures the authed /api group consumed by the webapp.
func setupWebAppRoutes(r *gin.Engine, verifier *telegram.Verifier, services *portssvc.ServiceContainer) {
	api := r.Group("/api", middleware.InitDataAuth(verifier))

	registerSettingsRoutes(api, services.User)
	registerEntryRoutes(api, services.User, services.Entry, services.Prompt)
	registerStreakRoutes(api, services.Streak)
	registerSuggestRoutes(api, services.Suggest)
}

// setupInternalRoutes configures the service-token-guarded /internal group
// consumed by the bot worker.
func setupInternalRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	internal := r.Group("/internal", middleware.ServiceTokenAuth(cfg.BotServiceToken))

	registerInternalRoutes(internal, cfg, services)
}

// registerCustomValidators adds the hhmm rule used by the settings payload.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{cfg.WebAppURL}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "x-telegram-init-data", "Authorization")
	if !cfg.IsProduction {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowOrigins = nil
	}
	return corsCfg
}

func rateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	rateStr, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		rateStr = limiter.Rate{Period: time.Minute, Limit: 120}
	}
	return middleware.RateLimit(limiter.New(memory.NewStore(), rateStr))
}
