package planner

import (
	"fmt"

	"github.com/relokit/settler/core/model"
)

// SchedulingInfeasibleError is the one error the caller must surface to
// the end user: a day's mandatory workload alone exceeds the cap and no
// deferral can fix it.
type SchedulingInfeasibleError struct {
	Day     int
	TaskIDs []string
	Reason  string
}

func (e *SchedulingInfeasibleError) Error() string {
	return fmt.Sprintf("scheduling infeasible on day %d (%s): tasks %v", e.Day, e.Reason, e.TaskIDs)
}

// MissingDependencyError reports a required category no task in the run
// provides. With the fail policy it is wrapped into a
// SchedulingInfeasibleError; with the auto-insert policy the resolver
// repairs it instead.
type MissingDependencyError struct {
	TaskID   string
	Category model.Category
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("task %s requires %s which nothing in the plan provides", e.TaskID, e.Category)
}

// LookupFailure records a recoverable per-location failure: a geocode or
// POI query that errored. The affected task proceeds degraded (pending
// location, zero recommendations) and the failure is kept for
// diagnostics.
type LookupFailure struct {
	TaskID string
	Op     string // "geocode" or "poi-search"
	Err    error
}

func (f LookupFailure) Error() string {
	return fmt.Sprintf("%s for task %s: %v", f.Op, f.TaskID, f.Err)
}

func (f LookupFailure) Unwrap() error { return f.Err }
