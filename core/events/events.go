// Package events defines the diagnostic events published on the
// internal bus during a scheduling run. Subscribers (the metrics
// collector, tests) observe them without coupling the planner to any
// sink.
package events

import "time"

// PlanEvent is published once per completed scheduling run.
type PlanEvent struct {
	Customer      string
	TotalTasks    int
	CoreTasks     int
	ExtendedTasks int
	Days          int
	Failures      int
	Elapsed       time.Duration
}

// LookupEvent is published for every external lookup outcome, both
// geocoding and POI searches.
type LookupEvent struct {
	TaskID  string
	Op      string // "geocode" or "poi-search"
	Success bool
	Err     error
}

// DeferralEvent is published when the balancer moves an extended task to
// a later day.
type DeferralEvent struct {
	TaskID  string
	FromDay int
	ToDay   int
}
