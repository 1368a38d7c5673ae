package routes

import (
	"context"
	"errors"
	_ "mecanica_hub/docs" // swagger docs
	"mecanica_hub/internal/adapter/http/handlers"
	"mecanica_hub/internal/adapter/http/middleware"
	"mecanica_hub/internal/config"
	"mecanica_hub/internal/infrastructure/metrics"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Handlers groups the HTTP handlers mounted under /v1.
type Handlers struct {
	ServiceRequests *handlers.ServiceRequestHandler
	Payments        *handlers.ServicePaymentHandler
}

// Run wires the application and serves HTTP until ctx is cancelled. Queued
// notifications are drained before it returns.
func Run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	if err := cfg.ValidateServe(); err != nil {
		logger.Error("[http] refusing to start", zap.Error(err))
		return err
	}
	if cfg.UsesDefaultJWTSecret() {
		logger.Warn("[http] JWT_SECRET not set, signing tokens with the default secret")
	}

	app, err := wire(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.close()

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           NewRouter(cfg, logger, app.handlers),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[http] listening", zap.String("addr", srv.Addr), zap.String("storage", cfg.StorageDriver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err = <-errCh
	case err = <-errCh:
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func NewRouter(cfg config.Config, logger *zap.Logger, h Handlers) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, logger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	v1.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)))
	addPingRoutes(v1)

	authed := v1.Group("", middleware.Auth(middleware.NewTokenParser(cfg.JWTSecret)))
	addServiceRequestRoutes(authed, h.ServiceRequests, h.Payments)
	addPaymentRoutes(authed, h.Payments)
	return router
}

func setMiddlewares(router *gin.Engine, logger *zap.Logger) {
	router.Use(gin.Logger())
	router.Use(middleware.Recovery(logger))
	router.Use(metrics.GinMiddleware())
}
