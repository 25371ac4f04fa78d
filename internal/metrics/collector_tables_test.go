package metrics

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRow struct {
	count int64
	err   error
}

func (r staticRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}

	*(dest[0].(*int64)) = r.count
	return nil
}

type fakeQuerier struct {
	counts map[string]int64
	err    error
}

func (q fakeQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	if q.err != nil {
		return staticRow{err: q.err}
	}

	table := strings.TrimPrefix(sql, "SELECT count(*) FROM ")
	return staticRow{count: q.counts[table]}
}

func collect(t *testing.T, c *TableCountCollector) []*dto.Metric {
	t.Helper()

	ch := make(chan prometheus.Metric, 16)
	c.Collect(ch)
	close(ch)

	var out []*dto.Metric
	for m := range ch {
		pb := new(dto.Metric)
		require.NoError(t, m.Write(pb))
		out = append(out, pb)
	}

	return out
}

func TestTableCountCollector(t *testing.T) {
	t.Run("emits one gauge per table", func(t *testing.T) {
		collector := NewTableCountCollector(fakeQuerier{counts: map[string]int64{
			"account":  3,
			"question": 12,
		}})

		metrics := collect(t, collector)
		require.Len(t, metrics, len(deletionGraphTables))

		byTable := map[string]float64{}
		for _, m := range metrics {
			require.Len(t, m.GetLabel(), 1)
			byTable[m.GetLabel()[0].GetValue()] = m.GetGauge().GetValue()
		}

		assert.Equal(t, 3.0, byTable["account"])
		assert.Equal(t, 12.0, byTable["question"])
		assert.Equal(t, 0.0, byTable["challenge"])
	})

	t.Run("emits an invalid metric on query failure", func(t *testing.T) {
		collector := NewTableCountCollector(fakeQuerier{err: errors.New("connection refused")})

		ch := make(chan prometheus.Metric, 16)
		collector.Collect(ch)
		close(ch)

		var got []prometheus.Metric
		for m := range ch {
			got = append(got, m)
		}

		require.Len(t, got, 1)
		var pb dto.Metric
		assert.Error(t, got[0].Write(&pb))
	})
}
