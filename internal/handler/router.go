package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/quantumtix/quantumticket/internal/logger"
	"github.com/quantumtix/quantumticket/internal/middleware"
	"github.com/redis/go-redis/v9"
)

// RouterConfig collects everything the HTTP surface needs.
type RouterConfig struct {
	Ticketing *TicketingHandler
	Health    *HealthHandler
	Logger    *logger.Logger
	JWTSecret string

	// RedisClient enables the distributed rate limiter on purchase traffic.
	// When nil a per-instance limiter is used instead.
	RedisClient redis.UniversalClient
	RateLimit   *middleware.RateLimitConfig // nil means defaults
}

// NewRouter builds the gin engine. Reads are public; every mutating route
// sits behind JWT auth, and purchases are additionally rate limited.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if cfg.Logger != nil {
		r.Use(middleware.AccessLog(cfg.Logger))
	}

	r.GET("/health", cfg.Health.Health)
	r.GET("/health/ready", cfg.Health.Ready)

	v1 := r.Group("/api/v1")

	// Public read surface.
	v1.GET("/status", cfg.Ticketing.Status)
	v1.GET("/events", cfg.Ticketing.ListEvents)
	v1.GET("/events/:id", cfg.Ticketing.GetEvent)
	v1.GET("/events/:id/tickets", cfg.Ticketing.EventTickets)
	v1.GET("/tickets/:id", cfg.Ticketing.GetTicket)
	v1.GET("/wallets/:address/tickets", cfg.Ticketing.WalletTickets)

	auth := v1.Group("")
	auth.Use(middleware.JWTMiddleware(&middleware.JWTConfig{Secret: cfg.JWTSecret}))

	auth.POST("/events", cfg.Ticketing.CreateEvent)
	auth.POST("/events/:id/deactivate", cfg.Ticketing.DeactivateEvent)
	auth.POST("/events/:id/scanners", cfg.Ticketing.SetScanner)

	rlCfg := middleware.DefaultRateLimitConfig()
	if cfg.RateLimit != nil {
		rlCfg = *cfg.RateLimit
	}
	rlCfg.UseRedis = cfg.RedisClient != nil
	rlCfg.RedisClient = cfg.RedisClient

	purchase := auth.Group("")
	purchase.Use(middleware.RateLimiter(rlCfg))
	purchase.POST("/tickets/purchase", cfg.Ticketing.Purchase)

	auth.POST("/tickets/:id/use", cfg.Ticketing.UseTicket)
	auth.POST("/tickets/:id/transfer", cfg.Ticketing.Transfer)
	auth.POST("/tickets/:id/approve", cfg.Ticketing.Approve)
	auth.POST("/tickets/:id/refund", cfg.Ticketing.Refund)

	auth.GET("/organizer/balance", cfg.Ticketing.OrganizerBalance)
	auth.POST("/organizer/withdraw", cfg.Ticketing.WithdrawOrganizer)

	auth.POST("/admin/pause", cfg.Ticketing.Pause)
	auth.POST("/admin/unpause", cfg.Ticketing.Unpause)
	auth.POST("/admin/withdraw", cfg.Ticketing.WithdrawPlatform)
	auth.POST("/admin/transfer-ownership", cfg.Ticketing.TransferOwnership)

	return r
}
