// Package httpapi wires the HTTP transport (Gin) to the reclamation
// services, middleware, and route handlers. It centralizes cross-cutting
// concerns such as tracing, correlation IDs, logging/redaction, panic
// recovery, metrics, caller identity, idempotency, rate limiting, CORS, and
// security headers.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/solrobto/reclamation-mytsinjo/internal/clock"
	"github.com/solrobto/reclamation-mytsinjo/internal/config"
	"github.com/solrobto/reclamation-mytsinjo/internal/http/handlers"
	"github.com/solrobto/reclamation-mytsinjo/internal/http/middleware"
	"github.com/solrobto/reclamation-mytsinjo/internal/repo"
)

// Deps are the collaborators the router needs. The services are built by
// the caller because the reminder scheduler shares them.
type Deps struct {
	DB           *gorm.DB
	Clock        clock.Clock
	Reclamations handlers.ReclamationService
	Reminders    handlers.ReminderService
}

// idempotencyStore persists first-attempt results in the idempotency table.
type idempotencyStore struct {
	db  *gorm.DB
	clk clock.Clock
	ttl time.Duration
}

// Record implements handlers.IdempotencyRecorder.
func (s idempotencyStore) Record(ctx context.Context, userID, scope, key string, reclamationID uint, status int) error {
	_, err := repo.CreateIdempotency(ctx, s.db, userID, scope, key, reclamationID, status, s.clk.Now(), s.ttl)
	if errors.Is(err, repo.ErrDuplicate) {
		// A concurrent first attempt won; its record stands.
		return nil
	}
	return err
}

// Lookup implements middleware.IdempotencyLookup.
func (s idempotencyStore) Lookup(ctx context.Context, userID, scope, key string, now time.Time) (uint, bool, error) {
	rec, err := repo.GetIdempotency(ctx, s.db, userID, scope, key, now)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return rec.ReclamationID, true, nil
}

var (
	corsMethods = []string{"GET", "POST", "OPTIONS"}
	corsHeaders = []string{
		"Origin", "Content-Type", "Accept", "Authorization",
		middleware.HeaderUserID, middleware.HeaderUserRole, middleware.HeaderIdempotencyKey,
	}
	corsExpose = []string{"X-Request-ID", "Content-Length", "Retry-After", handlers.HeaderIdempotentReplay}
)

// RegisterRoutes attaches all middleware and HTTP endpoints to r.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. AccessLog: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Identity: caller id and role from the gateway headers
//  7. Metrics (after identity so the role label is known)
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per user/IP, bypass on replay, ops paths exempt)
//  10. CORS and Security headers
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	store := idempotencyStore{db: deps.DB, clk: deps.Clock, ttl: cfg.IdempotencyTTL}

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(middleware.RedactOptions{
		MaskParams: []string{"numero_compte", "nom_client"},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(1 << 20))
	r.Use(middleware.IdentityFromHeaders())
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200, Now: deps.Clock.Now},
		store.Lookup,
	))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP(),
		middleware.SkipPaths("/health", "/metrics"))
	r.Use(rl.Handler())

	useCORS(r, cfg.CORS.AllowedOrigins)

	// Reclamation payloads carry customer data: never cache them.
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": clock.Format(deps.Clock.Now())})
	})
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(deps.Reclamations, deps.Reminders, store)

	anyRole := middleware.RequireRole()
	agentOnly := middleware.RequireRole(middleware.RoleAgent)
	staff := middleware.RequireRole(middleware.RoleSupervisor, middleware.RoleAdmin)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.POST("/reclamations", agentOnly, h.CreateReclamation)
		api.GET("/reclamations", anyRole, gzip.Gzip(gzip.DefaultCompression), h.ListReclamations)
		api.GET("/reclamations/:id", anyRole, h.GetReclamation)
		api.POST("/reclamations/:id/status", staff, h.UpdateStatus)
		api.POST("/reclamations/:id/archive", staff, h.ArchiveReclamation)
		api.POST("/reclamations/:id/unarchive", staff, h.UnarchiveReclamation)
		api.POST("/reclamations/:id/reminder", anyRole, h.SendReminder)

		api.GET("/notifications/user", anyRole, h.UserNotifications)
		api.GET("/notifications/pending", staff, h.PendingNotifications)
	}
}

// useCORS installs the CORS posture: allow all origins when none are
// configured, otherwise echo allowlisted origins.
func useCORS(r *gin.Engine, origins []string) {
	if len(origins) == 0 {
		// ACAO: * even without an Origin header, for curl and health checks.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     corsMethods,
			AllowHeaders:     corsHeaders,
			ExposeHeaders:    corsExpose,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
		return
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			if _, ok := allowed[origin]; ok {
				h := c.Writer.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
		}
		c.Next()
	})
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     corsMethods,
		AllowHeaders:     corsHeaders,
		ExposeHeaders:    corsExpose,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}

// limitBody caps request bodies at maxBytes; reads past it fail.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
