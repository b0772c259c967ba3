package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hungrylist/internal/infrastructure/config"
	"hungrylist/internal/infrastructure/ratelimit"
	"hungrylist/internal/interfaces/http/handlers"
	"hungrylist/internal/interfaces/http/middleware"
	"hungrylist/internal/interfaces/http/routes"
	"hungrylist/internal/shared/biztime"
	"hungrylist/internal/shared/constants"
	"hungrylist/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine         *gin.Engine
	cfg            *config.Config
	logger         logger.Interface
	spa            *spaHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter

	healthHandler  *handlers.HealthHandler
	authHandler    *handlers.AuthHandler
	sectionHandler *handlers.SectionHandler
	itemHandler    *handlers.ItemHandler
	backupHandler  *handlers.BackupHandler
	historyHandler *handlers.HistoryHandler
}

func NewRouter(c *Container, cfg *config.Config, clock biztime.Clock, log logger.Interface) *Router {
	engine := gin.New()
	if !cfg.Server.TrustProxy {
		// Without a trusted proxy X-Forwarded-For is ignored and ClientIP is
		// the socket peer.
		_ = engine.SetTrustedProxies(nil)
	}
	if clock == nil {
		clock = biztime.SystemClock{}
	}

	cookie := cfg.Auth.Cookie

	return &Router{
		engine:         engine,
		cfg:            cfg,
		logger:         log,
		spa:            newSPAHandler(cfg.Server.FrontendDistDir),
		authMiddleware: middleware.NewAuthMiddleware(c.Auth, cookie.Name, log),
		rateLimiter: middleware.NewRateLimiter(c.RateLimiter, ratelimit.Limits{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		}, log),
		healthHandler:  handlers.NewHealthHandler(clock),
		authHandler:    handlers.NewAuthHandler(c.Auth, cookie, cfg.Server.TrustProxy, log),
		sectionHandler: handlers.NewSectionHandler(c.Sections, log),
		itemHandler:    handlers.NewItemHandler(c.Items, log),
		backupHandler:  handlers.NewBackupHandler(c.Archiver, c.Restorer, log),
		historyHandler: handlers.NewHistoryHandler(c.Ledger),
	}
}

// SetupRoutes configures all the routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.SecurityHeaders())

	// Origin and CORS run for every /api request, including preflights that
	// match no route.
	r.engine.Use(apiOnly(middleware.OriginGuard(r.cfg.Server.AllowedOrigins, r.cfg.Server.TrustProxy)))
	r.engine.Use(apiOnly(middleware.CORS()))
	r.engine.Use(apiOnly(middleware.BodyLimit(constants.MaxJSONBodyBytes)))

	r.engine.GET(constants.HealthPath, r.healthHandler.Healthz)

	api := r.engine.Group(constants.APIPrefix, r.rateLimiter.Limit())

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    r.authHandler,
		AuthMiddleware: r.authMiddleware,
	})

	routes.SetupListRoutes(api, &routes.ListRouteConfig{
		SectionHandler: r.sectionHandler,
		ItemHandler:    r.itemHandler,
		AuthMiddleware: r.authMiddleware,
	})

	routes.SetupBackupRoutes(api, &routes.BackupRouteConfig{
		BackupHandler:  r.backupHandler,
		HistoryHandler: r.historyHandler,
		AuthMiddleware: r.authMiddleware,
	})

	notFound := middleware.NotFound()
	r.engine.NoRoute(func(c *gin.Context) {
		if r.spa.serve(c) {
			return
		}
		notFound(c)
	})
}

// GetEngine returns the gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (r *Router) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Infow("server starting", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	r.logger.Infow("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func apiOnly(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAPIPath(c.Request.URL.Path) {
			c.Next()
			return
		}
		h(c)
	}
}
