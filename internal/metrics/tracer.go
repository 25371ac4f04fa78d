package metrics

import (
	"time"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("quirzy.metrics")

const ScrapeTimeout = 30 * time.Second
