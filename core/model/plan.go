package model

import (
	"fmt"
	"sort"
	"time"
)

// DefaultHorizonDays is the settlement horizon a plan must fit into.
const DefaultHorizonDays = 30

// Plan is the ordered, day-grouped output of a scheduling run.
type Plan struct {
	ID          string
	Customer    string
	ArrivalDate time.Time
	Horizon     int
	// Tasks are ordered: ascending day, then route order within a day.
	Tasks []Task
}

// Days returns the distinct day offsets that carry tasks, ascending.
func (p Plan) Days() []int {
	seen := make(map[int]bool)
	var days []int
	for _, t := range p.Tasks {
		if !seen[t.Day] {
			seen[t.Day] = true
			days = append(days, t.Day)
		}
	}
	sort.Ints(days)
	return days
}

// TasksOn returns the tasks scheduled for the given day offset, in plan
// order.
func (p Plan) TasksOn(day int) []Task {
	var out []Task
	for _, t := range p.Tasks {
		if t.Day == day {
			out = append(out, t)
		}
	}
	return out
}

// ByDay groups tasks by day offset, preserving plan order within each day.
func (p Plan) ByDay() map[int][]Task {
	out := make(map[int][]Task)
	for _, t := range p.Tasks {
		out[t.Day] = append(out[t.Day], t)
	}
	return out
}

// DayLabel renders a day offset the way the plan is presented, e.g.
// "Day 5 (Sep 04)".
func (p Plan) DayLabel(day int) string {
	label := fmt.Sprintf("Day %d", day+1)
	if !p.ArrivalDate.IsZero() {
		label += p.ArrivalDate.AddDate(0, 0, day).Format(" (Jan 02)")
	}
	return label
}

// Validate enforces the plan invariants: non-negative day offsets within
// the horizon, and every required category satisfied by a task on an
// earlier day, or the same day when the category permits it.
func (p Plan) Validate() error {
	horizon := p.Horizon
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}
	firstProvided := make(map[Category]int)
	for _, t := range p.Tasks {
		if err := t.Validate(); err != nil {
			return err
		}
		if t.Day > horizon {
			return fmt.Errorf("task %s on day %d exceeds horizon %d", t.ID, t.Day, horizon)
		}
		for _, c := range t.Provides {
			if cur, ok := firstProvided[c]; !ok || t.Day < cur {
				firstProvided[c] = t.Day
			}
		}
	}
	for _, t := range p.Tasks {
		for _, c := range t.Requires {
			day, ok := firstProvided[c]
			if !ok {
				return fmt.Errorf("task %s requires %s which no task provides", t.ID, c)
			}
			earliest := day
			if !c.SameDaySatisfiable() {
				earliest++
			}
			if t.Day < earliest {
				return fmt.Errorf("task %s on day %d requires %s first provided on day %d", t.ID, t.Day, c, day)
			}
		}
	}
	return nil
}
