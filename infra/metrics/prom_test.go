package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/ouestbat/chantier/core/metrics"
)

func TestPromSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	require.NoError(t, err)

	now := time.Now()
	items := []coremetrics.ItemRecord{
		{RunID: "r1", Kind: "operation", Source: "template", Duration: 120, Required: 2, Assigned: 2, Start: now, End: now.Add(2 * time.Hour)},
		{RunID: "r1", Kind: "task", Source: "default", Duration: 60, Required: 2, Assigned: 1, Start: now, End: now.Add(time.Hour)},
	}
	require.NoError(t, sink.RecordItems(items))
	require.NoError(t, sink.RecordRun(coremetrics.RunRecord{RunID: "r1", Items: 2, Shortfalls: 1, Time: now}))

	require.Equal(t, float64(1), testutil.ToFloat64(sink.shortfalls))
	require.Equal(t, float64(1), testutil.ToFloat64(sink.items.WithLabelValues("operation", "template", "true")))
	require.Equal(t, float64(1), testutil.ToFloat64(sink.items.WithLabelValues("task", "default", "false")))
	require.Equal(t, float64(1), testutil.ToFloat64(sink.runs.WithLabelValues("shortfall")))
}

func TestPromSink_ReusableRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSink(reg)
	require.NoError(t, err)
	_, err = NewPromSink(reg)
	require.NoError(t, err)
}

func TestMultiSinkFanout(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	require.NoError(t, err)
	multi := NewMultiSink(sink, NopSink{})

	require.NoError(t, multi.RecordRun(coremetrics.RunRecord{RunID: "r1"}))
	require.NoError(t, multi.RecordItems([]coremetrics.ItemRecord{{RunID: "r1", Kind: "task", Source: "existing", Required: 1, Assigned: 1}}))
	require.Equal(t, float64(1), testutil.ToFloat64(sink.runs.WithLabelValues("complete")))
}
