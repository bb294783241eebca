package planner

import (
	"errors"
	"testing"

	"github.com/relokit/settler/core/model"
)

func newTestBalancer(t *testing.T) *Balancer {
	t.Helper()
	r, _ := newTestResolver(t, PolicyAutoInsert)
	return NewBalancer(testConfig(), r, nopLog{})
}

func coreTask(id string, day int) model.Task {
	return model.Task{ID: id, Kind: model.KindCore, Day: day}
}

func extTask(id string, day int) model.Task {
	return model.Task{ID: id, Kind: model.KindExtended, Day: day, AnchorID: "task-x"}
}

func TestBalancer_DefersOverflowToNextDay(t *testing.T) {
	b := newTestBalancer(t)
	tasks := []model.Task{
		coreTask("task-a", 1), coreTask("task-b", 1), coreTask("task-c", 1),
		extTask("ext-001", 1), extTask("ext-002", 1),
	}
	out, deferrals, err := b.Balance(tasks)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}

	counts := make(map[int]int)
	for _, task := range out {
		counts[task.Day]++
	}
	for day, n := range counts {
		if n > testConfig().MaxTasksPerDay {
			t.Fatalf("day %d carries %d tasks, cap is %d", day, n, testConfig().MaxTasksPerDay)
		}
	}

	if len(deferrals) != 1 {
		t.Fatalf("expected 1 deferral, got %d", len(deferrals))
	}
	// The lower-ranked extended task moves; the higher-ranked one stays.
	if deferrals[0].TaskID != "ext-002" {
		t.Fatalf("deferred %s, expected ext-002", deferrals[0].TaskID)
	}
	moved, _ := taskByID(out, "ext-002")
	if moved.Day != 2 {
		t.Fatalf("ext-002 on day %d, expected 2", moved.Day)
	}
	kept, _ := taskByID(out, "ext-001")
	if kept.Day != 1 {
		t.Fatalf("ext-001 on day %d, expected 1", kept.Day)
	}
}

func TestBalancer_CoreOverloadIsInfeasible(t *testing.T) {
	b := newTestBalancer(t)
	tasks := []model.Task{
		coreTask("task-a", 1), coreTask("task-b", 1), coreTask("task-c", 1),
		coreTask("task-d", 1), coreTask("task-e", 1),
	}
	_, _, err := b.Balance(tasks)
	var infeasible *SchedulingInfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("expected SchedulingInfeasibleError, got %v", err)
	}
	if infeasible.Day != 1 || len(infeasible.TaskIDs) != 5 {
		t.Fatalf("unexpected detail: %+v", infeasible)
	}
}

func TestBalancer_UserDaysStayUndiluted(t *testing.T) {
	b := newTestBalancer(t)
	pinned := coreTask("task-property-viewing", 3)
	pinned.UserSpecified = true
	tasks := []model.Task{
		pinned,
		extTask("ext-001", 3), extTask("ext-002", 3),
	}
	out, _, err := b.Balance(tasks)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	for _, task := range out {
		if task.Kind == model.KindExtended && task.Day == 3 {
			t.Fatalf("extended task %s left on the user-specified day", task.ID)
		}
	}
}

func TestBalancer_DropsUnplaceableExtended(t *testing.T) {
	r, _ := newTestResolver(t, PolicyAutoInsert)
	cfg := testConfig()
	cfg.HorizonDays = 2
	cfg.MaxTasksPerDay = 2
	b := NewBalancer(cfg, r, nopLog{})

	tasks := []model.Task{
		coreTask("task-a", 1), coreTask("task-b", 1),
		coreTask("task-c", 2), coreTask("task-d", 2),
		extTask("ext-001", 1),
	}
	out, deferrals, err := b.Balance(tasks)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if len(deferrals) != 0 {
		t.Fatalf("unexpected deferrals: %v", deferrals)
	}
	if _, ok := taskByID(out, "ext-001"); ok {
		t.Fatal("unplaceable extended task should be dropped")
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(out))
	}
}

func TestBalancer_RespectsDependenciesWhenDeferring(t *testing.T) {
	b := newTestBalancer(t)
	// ext-001 overflows day 1 but day 2 is full, so it lands on day 3.
	tasks := []model.Task{
		coreTask("task-a", 1), coreTask("task-b", 1), coreTask("task-c", 1), coreTask("task-d", 2),
		extTask("ext-001", 1), extTask("ext-002", 1),
		coreTask("task-e", 2), coreTask("task-f", 2), coreTask("task-g", 2),
	}
	out, _, err := b.Balance(tasks)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	moved, _ := taskByID(out, "ext-002")
	if moved.Day != 3 {
		t.Fatalf("ext-002 on day %d, expected 3", moved.Day)
	}
}
