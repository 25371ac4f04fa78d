package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quirzy/backend/httpapi"
	accountservice "github.com/quirzy/backend/httpapi/account"
	"github.com/quirzy/backend/internal/account"
	"github.com/quirzy/backend/internal/auth"
	"github.com/quirzy/backend/internal/config"
	"github.com/quirzy/backend/internal/events"
	"github.com/quirzy/backend/internal/httputils"
	"github.com/quirzy/backend/internal/store"
	"github.com/quirzy/backend/internal/workers"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/fx"
)

// AccountContext creates the account deletion context.
func AccountContext(store *store.Store, storage auth.Storage, events *events.Service) *account.Context {
	return account.NewContext(store, storage, events)
}

// AccountService creates the account service.
func AccountService(accounts *account.Context) httpapi.Service {
	return accountservice.NewAccountService(accounts)
}

// CorsMiddleware creates a cors middleware that can be injected into gin.
func CorsMiddleware(cfg config.Config) Middleware {
	return Middleware{
		Handler: cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "User-Agent", "Referer"},
			AllowCredentials: true,
		}),
	}
}

// ClientMiddleware creates a client-name middleware that can be injected into gin.
func ClientMiddleware() Middleware {
	return Middleware{
		Handler: httputils.ClientMiddleware(),
	}
}

// GinEngine creates a gin engine.
func GinEngine(services []httpapi.Service, middlewares []Middleware, cfg config.Config) *gin.Engine {
	engine := gin.New()

	if err := engine.SetTrustedProxies(cfg.TrustProxies); err != nil {
		slog.Error("error setting trusted proxies", "error", err)
	}

	engine.Use(sloggin.New(slog.Default()))
	engine.Use(otelgin.Middleware("quirzy-backend"))

	prom := ginprom.New(
		ginprom.Engine(engine),
		ginprom.Subsystem("gin"),
		ginprom.Path("/metrics"),
	)
	engine.Use(prom.Instrument())

	for _, middleware := range middlewares {
		engine.Use(middleware.Handler)
	}

	engine.Use(gin.Recovery())

	engine.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	httpapi.Register(api, services...)

	return engine
}

// GinLifecycle starts the gin engine.
func GinLifecycle(lifecycle fx.Lifecycle, engine *gin.Engine, cfg config.Config, store *store.Store, events *events.Service) {
	httpCtx, cancel := context.WithCancel(context.Background())

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			srv := &http.Server{
				Addr:    fmt.Sprintf(":%d", cfg.Port),
				Handler: engine,
			}

			go func() {
				slog.Info("gin engine starting", "address", srv.Addr)

				if err := srv.ListenAndServe(); err != nil {
					if errors.Is(err, http.ErrServerClosed) {
						return
					}

					slog.Error("error running gin engine", "error", err)
				}
			}()

			go func() {
				<-httpCtx.Done()
				if err := srv.Shutdown(context.Background()); err != nil {
					slog.Error("error shutting down gin engine", "error", err)
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return nil
			default:
				cancel()
			}

			// drain the post-deletion work before dropping connections
			workers.Global.Wait()
			events.Close()
			store.Close()

			return nil
		},
	})
}

// Middleware is a middleware that can be injected into gin.
type Middleware struct {
	Handler gin.HandlerFunc
}

// AnnotateMiddleware annotates a middleware function to be injected into gin.
func AnnotateMiddleware(f any) any {
	return fx.Annotate(
		f,
		fx.ResultTags(`group:"middlewares"`),
	)
}

// AnnotateService annotates a service function to be injected into gin.
func AnnotateService(f any) any {
	return fx.Annotate(
		f,
		fx.ResultTags(`group:"services"`),
	)
}
