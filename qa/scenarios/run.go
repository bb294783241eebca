package scenarios

import (
	"context"
	"testing"

	"github.com/relokit/settler/core/catalog"
	"github.com/relokit/settler/core/model"
	"github.com/relokit/settler/core/planner"
	"github.com/relokit/settler/core/poi"
	"github.com/relokit/settler/infra/logger"
)

type scenarioSource struct {
	candidates []poi.Candidate
}

func (s scenarioSource) SearchNearby(_ context.Context, lat, lon float64, _ int, categories []string) ([]poi.Candidate, error) {
	requested := make(map[string]bool, len(categories))
	for _, c := range categories {
		requested[c] = true
	}
	var out []poi.Candidate
	for _, c := range s.candidates {
		if !requested[c.Category] {
			continue
		}
		c.Lat += lat
		c.Lon += lon
		out = append(out, c)
	}
	return out, nil
}

type scenarioGeocoder struct {
	res poi.GeocodeResult
}

func (g scenarioGeocoder) Geocode(_ context.Context, address string) (poi.GeocodeResult, error) {
	if g.res.DisplayName == "" {
		return poi.GeocodeResult{}, poi.NotFound(address)
	}
	return g.res, nil
}

func RunScenario(t *testing.T, sc *Scenario) {
	profile, err := sc.Profile.ToModel()
	if err != nil {
		t.Fatalf("profile: %v", err)
	}

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	var src poi.Source
	if len(sc.POIs) > 0 {
		cands := make([]poi.Candidate, len(sc.POIs))
		for i, d := range sc.POIs {
			cands[i] = d.ToCandidate()
		}
		src = scenarioSource{candidates: cands}
	}

	opts := []planner.Option{}
	if sc.Geocode != nil {
		opts = append(opts, planner.WithGeocoder(scenarioGeocoder{res: poi.GeocodeResult{
			DisplayName: sc.Geocode.DisplayName,
			Lat:         sc.Geocode.Lat,
			Lon:         sc.Geocode.Lon,
		}}))
	}

	asm, err := planner.NewAssembler(cat, src, sc.Planner.ToConfig(), logger.NopLogger{}, opts...)
	if err != nil {
		t.Fatalf("assembler: %v", err)
	}

	res, err := asm.Assemble(context.Background(), profile)
	if err != nil {
		t.Fatalf("scenario %s: %v", sc.Name, err)
	}
	plan := res.Plan

	core, extended := 0, 0
	byDay := plan.ByDay()
	for _, tk := range plan.Tasks {
		switch tk.Kind {
		case model.KindCore:
			core++
		case model.KindExtended:
			extended++
		}
	}

	for day, tasks := range byDay {
		if len(tasks) > sc.Expected.MaxPerDay {
			t.Errorf("day %d carries %d tasks, cap %d", day, len(tasks), sc.Expected.MaxPerDay)
		}
	}
	if core < sc.Expected.MinCore {
		t.Errorf("expected at least %d core tasks, got %d", sc.Expected.MinCore, core)
	}
	if extended < sc.Expected.MinExtended {
		t.Errorf("expected at least %d extended tasks, got %d", sc.Expected.MinExtended, extended)
	}
	for _, id := range sc.Expected.Templates {
		if !hasTemplate(plan.Tasks, id) {
			t.Errorf("expected a task from template %s", id)
		}
	}
	for _, day := range sc.Expected.ClearDays {
		for _, tk := range byDay[day] {
			if tk.Kind == model.KindExtended {
				t.Errorf("day %d must stay free of extended tasks, found %s", day, tk.ID)
			}
		}
	}
}

func hasTemplate(tasks []model.Task, id string) bool {
	for _, t := range tasks {
		if t.TemplateID == id {
			return true
		}
	}
	return false
}
