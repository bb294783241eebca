// Package export renders finished settlement plans for delivery:
// day-grouped JSON for the dialogue layer and CSV for spreadsheets.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/relokit/settler/core/model"
	"github.com/relokit/settler/core/planner"
)

type planJSON struct {
	PlanID      string          `json:"plan_id"`
	Customer    string          `json:"customer"`
	ArrivalDate string          `json:"arrival_date"`
	HorizonDays int             `json:"horizon_days"`
	Summary     planner.Summary `json:"summary"`
	Days        []dayJSON       `json:"days"`
}

type dayJSON struct {
	Day   int        `json:"day"`
	Date  string     `json:"date"`
	Label string     `json:"label"`
	Tasks []taskJSON `json:"tasks"`
}

type taskJSON struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Kind          string         `json:"kind"`
	Priority      string         `json:"priority"`
	DurationMin   int            `json:"duration_minutes"`
	Documents     []string       `json:"documents,omitempty"`
	Requires      []string       `json:"requires,omitempty"`
	Provides      []string       `json:"provides,omitempty"`
	Location      model.Location `json:"location"`
	UserSpecified bool           `json:"user_specified,omitempty"`
	Reason        string         `json:"reason,omitempty"`
	AnchorID      string         `json:"anchor_id,omitempty"`
}

// WriteJSON writes the plan to w grouped by day, with a summary header.
func WriteJSON(w io.Writer, plan model.Plan) error {
	out := planJSON{
		PlanID:      plan.ID,
		Customer:    plan.Customer,
		ArrivalDate: plan.ArrivalDate.Format("2006-01-02"),
		HorizonDays: plan.Horizon,
		Summary:     planner.Summarize(plan),
	}
	byDay := plan.ByDay()
	for _, day := range plan.Days() {
		d := dayJSON{
			Day:   day,
			Date:  plan.ArrivalDate.AddDate(0, 0, day).Format("2006-01-02"),
			Label: plan.DayLabel(day),
		}
		for _, t := range byDay[day] {
			d.Tasks = append(d.Tasks, toTaskJSON(t))
		}
		out.Days = append(out.Days, d)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toTaskJSON(t model.Task) taskJSON {
	return taskJSON{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Kind:          t.Kind.String(),
		Priority:      t.Priority.String(),
		DurationMin:   int(t.Duration / time.Minute),
		Documents:     t.Documents,
		Requires:      categoryStrings(t.Requires),
		Provides:      categoryStrings(t.Provides),
		Location:      t.Location,
		UserSpecified: t.UserSpecified,
		Reason:        t.Reason,
		AnchorID:      t.AnchorID,
	}
}

func categoryStrings(cats []model.Category) []string {
	if len(cats) == 0 {
		return nil
	}
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = string(c)
	}
	return out
}

// WriteCSV writes the plan to w in CSV format, one row per task.
func WriteCSV(w io.Writer, plan model.Plan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "date", "task_id", "kind", "priority", "title", "duration_minutes", "location", "reason"}); err != nil {
		return err
	}
	for _, t := range plan.Tasks {
		rec := []string{
			strconv.Itoa(t.Day),
			plan.ArrivalDate.AddDate(0, 0, t.Day).Format("2006-01-02"),
			t.ID,
			t.Kind.String(),
			t.Priority.String(),
			t.Title,
			strconv.Itoa(int(t.Duration / time.Minute)),
			t.Location.Name,
			t.Reason,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
