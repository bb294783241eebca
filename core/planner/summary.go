package planner

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/relokit/settler/core/model"
)

// Summary condenses a plan into the figures shown to the customer.
type Summary struct {
	TotalTasks    int     `json:"total_tasks"`
	CoreTasks     int     `json:"core_tasks"`
	ExtendedTasks int     `json:"extended_tasks"`
	ActiveDays    int     `json:"active_days"`
	BusiestDay    int     `json:"busiest_day"`
	BusiestLoad   int     `json:"busiest_load"`
	MeanDailyLoad float64 `json:"mean_daily_load"`
	LoadStdDev    float64 `json:"load_std_dev"`
}

// Summarize computes load statistics over the plan's active days.
func Summarize(plan model.Plan) Summary {
	s := Summary{TotalTasks: len(plan.Tasks)}
	for _, t := range plan.Tasks {
		if t.Kind == model.KindExtended {
			s.ExtendedTasks++
		} else {
			s.CoreTasks++
		}
	}

	byDay := plan.ByDay()
	if len(byDay) == 0 {
		return s
	}
	s.ActiveDays = len(byDay)

	loads := make([]float64, 0, len(byDay))
	s.BusiestDay = -1
	for _, day := range plan.Days() {
		n := len(byDay[day])
		loads = append(loads, float64(n))
		if n > s.BusiestLoad {
			s.BusiestLoad = n
			s.BusiestDay = day
		}
	}
	s.MeanDailyLoad = stat.Mean(loads, nil)
	if len(loads) > 1 {
		s.LoadStdDev = stat.StdDev(loads, nil)
	}
	return s
}

// Describe renders the summary as the short paragraph shown alongside an
// exported plan.
func (s Summary) Describe(plan model.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Settlement plan for %s: %d tasks (%d core, %d recommended) across %d active days.",
		plan.Customer, s.TotalTasks, s.CoreTasks, s.ExtendedTasks, s.ActiveDays)
	if s.BusiestDay >= 0 {
		fmt.Fprintf(&b, " Busiest is %s with %d tasks.", plan.DayLabel(s.BusiestDay), s.BusiestLoad)
	}
	fmt.Fprintf(&b, " Average load %.1f tasks per active day.", s.MeanDailyLoad)
	return b.String()
}
