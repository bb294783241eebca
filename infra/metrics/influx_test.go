package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/relokit/settler/core/metrics"
)

func TestInfluxSink_RecordPlanResult(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	res := coremetrics.PlanResult{
		PlanID:        "plan-1",
		Customer:      "John Chen",
		HorizonDays:   30,
		CoreTasks:     12,
		ExtendedTasks: 6,
		Deferrals:     1,
		Duration:      250 * time.Millisecond,
		Time:          now,
	}

	if err := sink.RecordPlanResult(res); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("plan_generated").
		AddTag("plan_id", "plan-1").
		AddTag("customer", "John Chen").
		AddTag("component", "planner").
		AddField("horizon_days", 30).
		AddField("core_tasks", 12).
		AddField("extended_tasks", 6).
		AddField("deferrals", 1).
		AddField("duration_ms", int64(250)).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if strings.TrimSpace(body) != expected {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(srv.URL, "token", "org", "bucket")
	if _, ok := sink.(coremetrics.NopSink); !ok {
		t.Fatalf("expected NopSink fallback, got %T", sink)
	}
}
