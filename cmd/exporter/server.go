package main

import (
	"github.com/quirzy/backend/internal/deps"
	"go.uber.org/fx"

	_ "github.com/quirzy/backend/internal/deps/logger"
)

func main() {
	app := fx.New(
		fx.Provide(
			ExporterConfig,
			DatabasePool,
			PrometheusMetrics,
		),
		fx.Invoke(deps.OTelSDK),
		fx.Invoke(PrometheusHTTPHandler),
	)

	app.Run()
}
