package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"go.uber.org/fx"

	"github.com/quirzy/backend/internal/deps"

	_ "github.com/quirzy/backend/internal/deps/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	app := fx.New(
		deps.FxCommonModule,
		fx.Provide(
			AccountContext,
			AnnotateService(AccountService),
			AnnotateMiddleware(CorsMiddleware),
			AnnotateMiddleware(ClientMiddleware),
			fx.Annotate(
				GinEngine,
				fx.ParamTags(`group:"services"`, `group:"middlewares"`),
			),
		),
		fx.Invoke(deps.OTelSDK),
		fx.Invoke(GinLifecycle),
	)

	app.Start(ctx)

	<-ctx.Done()
	slog.Info("Gracefully shutting down server (Ctrl+C again to force stop)...")
	cancel()

	app.Stop(context.Background())

	slog.Info("Server stopped")
}
