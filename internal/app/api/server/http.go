package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/clapboard/membership/internal/app/api/handlers"
	mw "github.com/clapboard/membership/internal/app/api/middleware"
	"github.com/clapboard/membership/internal/app/service/benefit"
	"github.com/clapboard/membership/internal/app/service/catalog"
	subsvc "github.com/clapboard/membership/internal/app/service/subscription"
	"github.com/clapboard/membership/internal/app/service/sweeper"
	"github.com/clapboard/membership/internal/auth"
	"github.com/clapboard/membership/internal/realtime"
	cfgpkg "github.com/clapboard/membership/pkg/config"
	metrics "github.com/clapboard/membership/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Request tracing only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

func registerRoutes(
	r *gin.Engine,
	log *zap.SugaredLogger,
	cfg *cfgpkg.Config,
	verifier *auth.Verifier,
	hub *realtime.Hub,
	cat *catalog.Service,
	sub *subsvc.Service,
	ben *benefit.Service,
	sw *sweeper.Service,
) {
	// Prometheus metrics
	if cfg != nil && cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	handlers.RegisterPackageRoutes(pub.Group("/api/v1"), cat)

	// Authenticated user APIs
	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.AuthMiddleware(verifier), mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterSubscriptionRoutes(apiV1, sub)
	handlers.RegisterBenefitRoutes(apiV1, ben)

	// Admin APIs
	admin := apiV1.Group("/admin")
	admin.Use(mw.RequireAdmin())
	handlers.RegisterAdminSubscriptionRoutes(admin, sub, sw)
	handlers.RegisterAdminPackageRoutes(admin, cat)

	// WebSocket upgrade authenticates via query token, not the auth middleware
	handlers.RegisterWebSocketRoutes(pub, hub, verifier, log)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
