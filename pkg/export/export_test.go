package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/relokit/settler/core/model"
)

func samplePlan() model.Plan {
	arrival := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return model.Plan{
		ID:          "plan-1",
		Customer:    "John Chen",
		ArrivalDate: arrival,
		Horizon:     30,
		Tasks: []model.Task{
			{
				ID: "task-airport-pickup", Title: "Airport Pickup", Kind: model.KindCore,
				Day: 0, Priority: model.PriorityHigh, Duration: 2 * time.Hour,
				Documents: []string{"Passport"},
				Provides:  []model.Category{model.CatArrived},
				Location:  model.ResolvedLocation("loc-hkia", "Hong Kong International Airport", "Lantau", 22.308, 113.9185),
			},
			{
				ID: "task-office-visit", Title: "Visit the Office", Kind: model.KindCore,
				Day: 2, Priority: model.PriorityMedium, Duration: 2 * time.Hour,
				Location: model.PendingLocation("Office", "25 Harbour Road"),
			},
			{
				ID: "ext-001", Title: "Visit Wellcome", Kind: model.KindExtended,
				Day: 2, Priority: model.PriorityLow, Duration: 45 * time.Minute,
				Reason:   "Supermarket just around the corner from Office.",
				AnchorID: "task-office-visit",
				Location: model.ResolvedLocation("osm_node_1", "Wellcome", "Wan Chai", 22.278, 114.175),
			},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, samplePlan()); err != nil {
		t.Fatalf("write: %v", err)
	}

	var decoded struct {
		PlanID      string `json:"plan_id"`
		ArrivalDate string `json:"arrival_date"`
		Summary     struct {
			TotalTasks int `json:"total_tasks"`
		} `json:"summary"`
		Days []struct {
			Day   int    `json:"day"`
			Date  string `json:"date"`
			Label string `json:"label"`
			Tasks []struct {
				ID       string `json:"id"`
				Kind     string `json:"kind"`
				Location struct {
					State    string   `json:"state"`
					Latitude *float64 `json:"latitude"`
				} `json:"location"`
			} `json:"tasks"`
		} `json:"days"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if decoded.PlanID != "plan-1" || decoded.ArrivalDate != "2026-09-01" {
		t.Fatalf("header wrong: %+v", decoded)
	}
	if decoded.Summary.TotalTasks != 3 {
		t.Fatalf("summary wrong: %+v", decoded.Summary)
	}
	if len(decoded.Days) != 2 {
		t.Fatalf("expected 2 day groups, got %d", len(decoded.Days))
	}
	if decoded.Days[1].Date != "2026-09-03" {
		t.Fatalf("day 2 date %q", decoded.Days[1].Date)
	}

	day2 := decoded.Days[1].Tasks
	if len(day2) != 2 {
		t.Fatalf("expected 2 tasks on day 2, got %d", len(day2))
	}
	office := day2[0]
	if office.Location.State != "pending" {
		t.Fatalf("office state %q", office.Location.State)
	}
	if office.Location.Latitude != nil {
		t.Fatal("pending location should not carry coordinates")
	}
	ext := day2[1]
	if ext.Kind != "extended" || ext.Location.Latitude == nil {
		t.Fatalf("extended task wrong: %+v", ext)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, samplePlan()); err != nil {
		t.Fatalf("write: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(records))
	}
	if records[0][0] != "day" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][2] != "task-airport-pickup" || records[1][1] != "2026-09-01" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
	if records[3][3] != "extended" {
		t.Fatalf("unexpected kind column: %v", records[3])
	}
}
