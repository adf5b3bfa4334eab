package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/amanahfin/waqf_ledger/internal/core/ports/services"
	"github.com/amanahfin/waqf_ledger/internal/middleware"
	"github.com/amanahfin/waqf_ledger/internal/notifications"
	"github.com/amanahfin/waqf_ledger/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub *notifications.Hub,
) error {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Event stream for downstream consumers (published distributions, closed
	// periods). Read-only, so it stays outside the auth group.
	r.GET("/events", func(c *gin.Context) {
		notifications.ServeWS(c.Writer, c.Request, hub)
	})

	return setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the per-entity
// route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return err
	}
	limiterInstance := limiter.New(memory.NewStore(), rate)

	v1 := r.Group("/api/v1",
		middleware.RateLimit(limiterInstance),
		middleware.AuthMiddleware(cfg.JWTSecret),
	)

	v1.GET("/", getHome)
	registerAccountRoutes(v1, services.Account)
	registerBeneficiaryRoutes(v1, services.Beneficiary)
	registerPeriodRoutes(v1, services.Closing, services.Distribution)
	registerDistributionRoutes(v1, services.Distribution, services.Journal, services.Transfer)
	registerJournalRoutes(v1, services.Journal)

	return nil
}
