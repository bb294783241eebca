package metrics

import (
	"time"

	"github.com/relokit/settler/core/model"
)

// PlanResult captures a completed planning run for observability purposes.
type PlanResult struct {
	PlanID        string
	Customer      string
	ArrivalDate   time.Time
	HorizonDays   int
	CoreTasks     int
	ExtendedTasks int
	Deferrals     int
	Duration      time.Duration
	Time          time.Time
}

// MetricsSink records plan results.
type MetricsSink interface {
	RecordPlanResult(res PlanResult) error
}

// LookupEvent captures one external point-of-interest or geocode call.
type LookupEvent struct {
	Provider string
	Anchor   string
	Results  int
	Latency  time.Duration
	Err      string
	Time     time.Time
}

// LookupRecorder records external lookup calls.
type LookupRecorder interface {
	RecordLookup(ev LookupEvent) error
}

// DeferralEvent captures a task moved off an overloaded day.
type DeferralEvent struct {
	PlanID  string
	TaskID  string
	FromDay int
	ToDay   int
	Time    time.Time
}

// DeferralRecorder records load-balancing deferrals.
type DeferralRecorder interface {
	RecordDeferral(ev DeferralEvent) error
}

// TaskVolume is a per-day task load snapshot.
type TaskVolume struct {
	PlanID string
	Day    int
	Kind   model.TaskKind
	Count  int
}

// TaskVolumeRecorder records per-day scheduling load.
type TaskVolumeRecorder interface {
	RecordTaskVolume(vols []TaskVolume) error
}

// NopSink implements every recorder interface with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlanResult(PlanResult) error   { return nil }
func (NopSink) RecordLookup(LookupEvent) error      { return nil }
func (NopSink) RecordDeferral(DeferralEvent) error  { return nil }
func (NopSink) RecordTaskVolume([]TaskVolume) error { return nil }
