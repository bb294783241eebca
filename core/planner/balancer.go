package planner

import (
	"sort"

	"github.com/relokit/settler/core/logger"
	"github.com/relokit/settler/core/model"
)

// Deferral records a balancer move for diagnostics.
type Deferral struct {
	TaskID  string
	FromDay int
	ToDay   int
}

// Balancer enforces the per-day task cap. Only extended tasks move; core
// tasks are fixed by the generator and resolver. Days anchored by a
// user-specified core task accept no extended tasks at all.
type Balancer struct {
	cfg      Config
	resolver *Resolver
	log      logger.Logger
}

// NewBalancer builds a Balancer that re-checks dependencies via the
// given resolver after every move.
func NewBalancer(cfg Config, resolver *Resolver, log logger.Logger) *Balancer {
	return &Balancer{cfg: cfg, resolver: resolver, log: log}
}

// Balance redistributes extended tasks until no day exceeds the cap.
// A day whose core load alone exceeds the cap is unfixable by deferral
// and yields a SchedulingInfeasibleError. Extended tasks that cannot be
// placed anywhere within the horizon are dropped.
func (b *Balancer) Balance(tasks []model.Task) ([]model.Task, []Deferral, error) {
	out := append([]model.Task{}, tasks...)

	counts := make(map[int]int)
	userDays := make(map[int]bool)
	coreIDs := make(map[int][]string)
	for _, t := range out {
		counts[t.Day]++
		if t.Kind == model.KindCore {
			coreIDs[t.Day] = append(coreIDs[t.Day], t.ID)
			if t.UserSpecified {
				userDays[t.Day] = true
			}
		}
	}

	var days []int
	for d := range counts {
		days = append(days, d)
	}
	sort.Ints(days)

	var deferrals []Deferral
	for _, day := range days {
		if len(coreIDs[day]) > b.cfg.MaxTasksPerDay {
			return nil, nil, &SchedulingInfeasibleError{
				Day:     day,
				TaskIDs: coreIDs[day],
				Reason:  "core task load exceeds the per-day cap",
			}
		}
		capacity := b.cfg.MaxTasksPerDay
		if userDays[day] {
			// A user-specified core day is never diluted.
			capacity = len(coreIDs[day])
		}
		if counts[day] <= capacity {
			continue
		}

		// Earlier extended tasks ranked higher at recommendation time,
		// so overflow is taken from the back.
		var extIdx []int
		for i := range out {
			if out[i].Day == day && out[i].Kind == model.KindExtended {
				extIdx = append(extIdx, i)
			}
		}
		overflow := counts[day] - capacity
		for n := 0; n < overflow && n < len(extIdx); n++ {
			i := extIdx[len(extIdx)-1-n]
			moved, to := b.defer_(out, i, counts, userDays)
			if !moved {
				b.log.Warnf("dropping %s: no capacity within horizon", out[i].ID)
				out[i].Day = -1 // marked for removal below
				counts[day]--
			} else {
				deferrals = append(deferrals, Deferral{TaskID: out[i].ID, FromDay: day, ToDay: to})
			}
		}
	}

	kept := out[:0]
	for _, t := range out {
		if t.Day >= 0 {
			kept = append(kept, t)
		}
	}
	return kept, deferrals, nil
}

// defer_ moves out[i] to the nearest later day with capacity that is not
// a protected user day, re-checking dependency order after the move.
func (b *Balancer) defer_(out []model.Task, i int, counts map[int]int, userDays map[int]bool) (bool, int) {
	from := out[i].Day
	for to := from + 1; to <= b.cfg.HorizonDays; to++ {
		if userDays[to] || counts[to] >= b.cfg.MaxTasksPerDay {
			continue
		}
		out[i].Day = to
		if err := b.resolver.Check(out); err != nil {
			continue
		}
		counts[from]--
		counts[to]++
		b.log.Debugf("deferred %s from day %d to day %d", out[i].ID, from, to)
		return true, to
	}
	out[i].Day = from
	return false, 0
}
