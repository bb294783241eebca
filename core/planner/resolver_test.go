package planner

import (
	"errors"
	"testing"

	"github.com/relokit/settler/core/model"
)

func newTestResolver(t *testing.T, policy MissingDependencyPolicy) (*Resolver, *Generator) {
	t.Helper()
	cat := testCatalog(t)
	gen := NewGenerator(cat, nopLog{})
	return NewResolver(cat, gen, policy, nopLog{}), gen
}

func TestResolver_OrdersDependencies(t *testing.T) {
	r, gen := newTestResolver(t, PolicyAutoInsert)
	profile := testProfile()
	tasks, err := r.Resolve(gen.Generate(profile), profile)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if err := r.Check(tasks); err != nil {
		t.Fatalf("resolved tasks fail re-check: %v", err)
	}

	provided := make(map[model.Category]int)
	for _, task := range tasks {
		for _, c := range task.Provides {
			if cur, ok := provided[c]; !ok || task.Day < cur {
				provided[c] = task.Day
			}
		}
	}
	for _, task := range tasks {
		for _, req := range task.Requires {
			allowed, ok := provided[req]
			if !ok {
				t.Fatalf("task %s requires %s which nothing provides", task.ID, req)
			}
			if !req.SameDaySatisfiable() {
				allowed++
			}
			if task.Day < allowed {
				t.Fatalf("task %s on day %d before %s allowed day %d", task.ID, task.Day, req, allowed)
			}
		}
	}
}

func TestResolver_SameDayChainOnArrival(t *testing.T) {
	r, gen := newTestResolver(t, PolicyAutoInsert)
	profile := testProfile()
	tasks, err := r.Resolve(gen.Generate(profile), profile)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// Check-in requires has-arrived, which is satisfiable the same day,
	// so the arrival chain stays on day 0.
	checkin, _ := taskByID(tasks, "task-temp-checkin")
	if checkin.Day != 0 {
		t.Fatalf("check-in pushed to day %d", checkin.Day)
	}
}

func TestResolver_PushesPastStrictDependencies(t *testing.T) {
	r, gen := newTestResolver(t, PolicyAutoInsert)
	profile := testProfile()
	profile.KeyDates = map[string]string{"bank-account": "2026-09-10"} // day 9

	tasks, err := r.Resolve(gen.Generate(profile), profile)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	lease, _ := taskByID(tasks, "task-lease-signing")
	if lease.Day < 10 {
		t.Fatalf("lease on day %d, expected after the day-9 bank account", lease.Day)
	}
}

func TestResolver_AutoInsertsMissingProviders(t *testing.T) {
	r, gen := newTestResolver(t, PolicyAutoInsert)
	profile := testProfile()

	lease, ok := gen.InstantiateTemplate("lease-signing", profile)
	if !ok {
		t.Fatal("lease template missing")
	}
	tasks, err := r.Resolve([]model.Task{lease}, profile)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	for _, id := range []string{"task-property-viewing", "task-bank-account", "task-sim-card"} {
		if _, ok := taskByID(tasks, id); !ok {
			t.Fatalf("expected %s to be auto-inserted", id)
		}
	}
	if err := r.Check(tasks); err != nil {
		t.Fatalf("repaired set fails check: %v", err)
	}
}

func TestResolver_FailPolicy(t *testing.T) {
	r, gen := newTestResolver(t, PolicyFail)
	profile := testProfile()

	lease, _ := gen.InstantiateTemplate("lease-signing", profile)
	_, err := r.Resolve([]model.Task{lease}, profile)
	var missing *MissingDependencyError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingDependencyError, got %v", err)
	}
}

func TestResolver_CheckDetectsViolation(t *testing.T) {
	r, _ := newTestResolver(t, PolicyAutoInsert)
	tasks := []model.Task{
		{ID: "a", Day: 5, Provides: []model.Category{model.CatBankAccount}},
		{ID: "b", Day: 5, Requires: []model.Category{model.CatBankAccount}},
	}
	if err := r.Check(tasks); err == nil {
		t.Fatal("expected strict requirement violation on same day")
	}
	tasks[1].Day = 6
	if err := r.Check(tasks); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}
