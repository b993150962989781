// Package http wires the gin engine: middleware chain, route table, and the
// server lifecycle.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/openkyc/kyc/internal/application/dto"
	"github.com/openkyc/kyc/internal/config"
	domainservice "github.com/openkyc/kyc/internal/domain/service"
	"github.com/openkyc/kyc/internal/infrastructure/monitoring"
	"github.com/openkyc/kyc/internal/interfaces/http/handlers"
	"github.com/openkyc/kyc/internal/interfaces/http/middleware"
	apperrors "github.com/openkyc/kyc/pkg/errors"
	"github.com/openkyc/kyc/pkg/logger"
)

// Handlers bundles every endpoint handler the router mounts.
type Handlers struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Customer    *handlers.CustomerHandler
	Risk        *handlers.RiskHandler
	Alert       *handlers.AlertHandler
	Transaction *handlers.TransactionHandler
	Audit       *handlers.AuditHandler
}

// Router owns the gin engine and the HTTP server lifecycle.
type Router struct {
	engine   *gin.Engine
	config   *config.ServerConfig
	logger   logger.Logger
	handlers Handlers
	tokens   domainservice.TokenManager
	limiter  domainservice.RateLimitService
	metrics  *monitoring.Metrics
	tracer   trace.Tracer
	server   *http.Server
}

// NewRouter creates the router. SetupRoutes must run before Start.
func NewRouter(
	cfg *config.ServerConfig,
	log logger.Logger,
	h Handlers,
	tokens domainservice.TokenManager,
	limiter domainservice.RateLimitService,
	metrics *monitoring.Metrics,
	tracer trace.Tracer,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	return &Router{
		engine:   gin.New(),
		config:   cfg,
		logger:   log.WithComponent("router"),
		handlers: h,
		tokens:   tokens,
		limiter:  limiter,
		metrics:  metrics,
		tracer:   tracer,
	}
}

// SetupRoutes installs the middleware chain and the route table.
func (r *Router) SetupRoutes() {
	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.RequestContext())
	r.engine.Use(middleware.Observability(r.tracer, r.metrics, r.logger))

	r.engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-Trace-ID", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.engine.GET("/health/live", r.handlers.Health.Liveness)
	r.engine.GET("/health/ready", r.handlers.Health.Readiness)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if r.config.EnablePprof {
		pprof.Register(r.engine)
	}

	ipLimit := middleware.RateLimit(r.limiter, domainservice.RateLimitDimensionIP, r.metrics, r.logger)
	userLimit := middleware.RateLimit(r.limiter, domainservice.RateLimitDimensionUser, r.metrics, r.logger)
	requireAuth := middleware.RequireAuth(r.tokens, r.logger)

	v1 := r.engine.Group("/api/v1")
	{
		v1.POST("/auth/login", ipLimit, r.handlers.Auth.Login)

		authed := v1.Group("")
		authed.Use(requireAuth, userLimit)
		{
			customers := authed.Group("/customers")
			{
				customers.POST("", r.handlers.Customer.Register)
				customers.GET("", r.handlers.Customer.List)
				customers.GET("/archived", r.handlers.Customer.ListArchived)
				customers.GET("/:id", r.handlers.Customer.Get)
				customers.PUT("/:id", r.handlers.Customer.Update)
				customers.DELETE("/:id", r.handlers.Customer.Delete)

				customers.GET("/:id/risk", r.handlers.Risk.Explain)
				customers.POST("/:id/risk/assess", r.handlers.Risk.Assess)
				customers.PUT("/:id/risk/override", r.handlers.Risk.Override)
				customers.POST("/:id/edd", r.handlers.Risk.RecordEDDAction)
			}

			alerts := authed.Group("/alerts")
			{
				alerts.POST("", r.handlers.Alert.Create)
				alerts.GET("", r.handlers.Alert.List)
				alerts.GET("/:id", r.handlers.Alert.Get)
				alerts.POST("/:id/investigate", r.handlers.Alert.StartInvestigation)
				alerts.POST("/:id/close", r.handlers.Alert.Close)
				alerts.POST("/:id/escalate", r.handlers.Alert.Escalate)
			}

			transactions := authed.Group("/transactions")
			{
				transactions.POST("", r.handlers.Transaction.Record)
				transactions.GET("", r.handlers.Transaction.List)
				transactions.GET("/:id", r.handlers.Transaction.Get)
				transactions.POST("/:id/flag", r.handlers.Transaction.Flag)
			}

			users := authed.Group("/users")
			{
				users.POST("", r.handlers.Auth.CreateUser)
				users.GET("", r.handlers.Auth.ListUsers)
				users.POST("/:id/deactivate", r.handlers.Auth.DeactivateUser)
			}

			authed.GET("/audit", r.handlers.Audit.List)
		}
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound,
			dto.ErrorResponse(apperrors.ErrNotFound("route", c.Request.URL.Path),
				middleware.TraceIDFrom(c.Request.Context())))
	})
}

// Start runs the HTTP server until the context is canceled, then shuts it
// down gracefully.
func (r *Router) Start(ctx context.Context) error {
	r.server = &http.Server{
		Addr:           r.config.Addr(),
		Handler:        r.engine,
		ReadTimeout:    time.Duration(r.config.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(r.config.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info(ctx, "HTTP server listening", logger.Fields{"address": r.config.Addr()})
		if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	r.logger.Info(shutdownCtx, "shutting down HTTP server")
	return r.server.Shutdown(shutdownCtx)
}

// Engine exposes the gin engine for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
