package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/ouestbat/chantier/core/metrics"
	"github.com/ouestbat/chantier/infra/logger"
)

// InfluxSink writes planning events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg Config) coremetrics.Sink {
	sink := NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return NopSink{}
	}
	return sink
}

// RecordRun writes the run summary as a single point.
func (s *InfluxSink) RecordRun(rec coremetrics.RunRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("planning_run").
		AddTag("run_id", rec.RunID).
		AddField("items", rec.Items).
		AddField("shortfalls", rec.Shortfalls).
		AddField("workers", rec.Workers).
		AddField("elapsed_ms", rec.Elapsed.Milliseconds()).
		AddField("span_start", rec.SpanStart.UnixNano()).
		AddField("span_end", rec.SpanEnd.UnixNano()).
		SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordItems writes one point per placed item.
func (s *InfluxSink) RecordItems(recs []coremetrics.ItemRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range recs {
		p := write.NewPointWithMeasurement("planning_item").
			AddTag("run_id", r.RunID).
			AddTag("kind", r.Kind).
			AddTag("zone", r.Zone).
			AddTag("source", r.Source).
			AddTag("staffed", strconv.FormatBool(r.Assigned >= r.Required)).
			AddField("duration_min", r.Duration).
			AddField("required", r.Required).
			AddField("assigned", r.Assigned).
			AddField("start", r.Start.UnixNano()).
			AddField("end", r.End.UnixNano()).
			SetTime(r.Start)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}
