package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/relokit/settler/core/metrics"
	"github.com/relokit/settler/infra/logger"
)

// InfluxSink writes planning events to an InfluxDB instance using the official client.
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

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
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
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordPlanResult writes the plan result as a point.
func (s *InfluxSink) RecordPlanResult(res coremetrics.PlanResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("plan_generated").
		AddTag("plan_id", res.PlanID).
		AddTag("customer", res.Customer).
		AddTag("component", "planner").
		AddField("horizon_days", res.HorizonDays).
		AddField("core_tasks", res.CoreTasks).
		AddField("extended_tasks", res.ExtendedTasks).
		AddField("deferrals", res.Deferrals).
		AddField("duration_ms", res.Duration.Milliseconds()).
		SetTime(res.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordLookup persists one external lookup call.
func (s *InfluxSink) RecordLookup(ev coremetrics.LookupEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("lookup_performed").
		AddTag("provider", ev.Provider).
		AddTag("component", "recommender").
		AddField("anchor", ev.Anchor).
		AddField("results", ev.Results).
		AddField("latency_ms", ev.Latency.Milliseconds()).
		AddField("errors", ev.Err).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordDeferral persists a load-balancing deferral.
func (s *InfluxSink) RecordDeferral(ev coremetrics.DeferralEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("task_deferred").
		AddTag("plan_id", ev.PlanID).
		AddTag("task_id", ev.TaskID).
		AddTag("component", "balancer").
		AddField("from_day", ev.FromDay).
		AddField("to_day", ev.ToDay).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordTaskVolume writes per-day load snapshots.
func (s *InfluxSink) RecordTaskVolume(vols []coremetrics.TaskVolume) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	now := time.Now()
	for _, v := range vols {
		p := write.NewPointWithMeasurement("task_volume").
			AddTag("plan_id", v.PlanID).
			AddTag("kind", v.Kind.String()).
			AddField("day", v.Day).
			AddField("count", v.Count).
			SetTime(now)
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
