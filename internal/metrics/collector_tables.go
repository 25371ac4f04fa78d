package metrics

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	otelcodes "go.opentelemetry.io/otel/codes"
)

var quirzyTableRowsDesc = prometheus.NewDesc(
	"quirzy_table_rows",
	"Number of rows per deletion-graph table",
	[]string{"table"},
	nil,
)

// deletionGraphTables lists every table the cascade touches, so the
// exporter shows the whole graph shrinking as accounts are removed.
var deletionGraphTables = []string{
	"account",
	"owned_quiz",
	"question",
	"quiz_result",
	"account_settings",
	"challenge",
}

// rowQuerier is the query capability the collector needs.
// *pgxpool.Pool satisfies it.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type TableCountCollector struct {
	db rowQuerier
}

func NewTableCountCollector(db rowQuerier) *TableCountCollector {
	return &TableCountCollector{db: db}
}

func (c *TableCountCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- quirzyTableRowsDesc
}

func (c *TableCountCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), ScrapeTimeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "TableCountCollector.Collect")
	defer span.End()

	for _, table := range deletionGraphTables {
		var count int64

		err := c.db.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM %s`, table)).Scan(&count)
		if err != nil {
			span.SetStatus(otelcodes.Error, "Failed to count table rows")
			span.RecordError(err)

			ch <- prometheus.NewInvalidMetric(quirzyTableRowsDesc, err)
			return
		}

		ch <- prometheus.MustNewConstMetric(quirzyTableRowsDesc, prometheus.GaugeValue, float64(count), table)
	}

	span.SetStatus(otelcodes.Ok, "Table rows collected successfully")
}

var _ prometheus.Collector = (*TableCountCollector)(nil)
