package planner

import (
	"testing"

	"github.com/relokit/settler/core/model"
)

func TestGenerator_SkipsUnmetConditionals(t *testing.T) {
	gen := NewGenerator(testCatalog(t), nopLog{})
	tasks := gen.Generate(testProfile())

	if _, ok := taskByID(tasks, "task-school-registration"); ok {
		t.Fatal("school registration generated without children")
	}
	if _, ok := taskByID(tasks, "task-license-conversion"); ok {
		t.Fatal("license conversion generated without vehicle need")
	}

	profile := testProfile()
	profile.HasChildren = true
	profile.NeedsVehicle = true
	tasks = gen.Generate(profile)
	if _, ok := taskByID(tasks, "task-school-registration"); !ok {
		t.Fatal("school registration missing for family profile")
	}
	if _, ok := taskByID(tasks, "task-license-conversion"); !ok {
		t.Fatal("license conversion missing for driver profile")
	}
}

func TestGenerator_PinsUserDates(t *testing.T) {
	gen := NewGenerator(testCatalog(t), nopLog{})
	profile := testProfile()
	profile.KeyDates = map[string]string{"property-viewing": "2026-09-05"}

	tasks := gen.Generate(profile)
	viewing, ok := taskByID(tasks, "task-property-viewing")
	if !ok {
		t.Fatal("property viewing missing")
	}
	if viewing.Day != 4 {
		t.Fatalf("expected day 4, got %d", viewing.Day)
	}
	if !viewing.UserSpecified {
		t.Fatal("expected user-specified flag")
	}

	// Dates before arrival are ignored.
	profile.KeyDates["property-viewing"] = "2026-08-20"
	tasks = gen.Generate(profile)
	viewing, _ = taskByID(tasks, "task-property-viewing")
	if viewing.UserSpecified {
		t.Fatal("date before arrival should not pin the task")
	}
}

func TestGenerator_DeterministicIDs(t *testing.T) {
	gen := NewGenerator(testCatalog(t), nopLog{})
	a := gen.Generate(testProfile())
	b := gen.Generate(testProfile())
	if len(a) != len(b) {
		t.Fatalf("run lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Day != b[i].Day {
			t.Fatalf("run mismatch at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerator_Locations(t *testing.T) {
	gen := NewGenerator(testCatalog(t), nopLog{})
	tasks := gen.Generate(testProfile())

	pickup, _ := taskByID(tasks, "task-airport-pickup")
	if !pickup.Location.Resolved() || pickup.Location.Name != "Hong Kong International Airport" {
		t.Fatalf("unexpected airport location: %+v", pickup.Location)
	}

	office, _ := taskByID(tasks, "task-office-visit")
	if office.Location.State != model.LocationPending {
		t.Fatalf("office should be pending before geocoding, got %v", office.Location.State)
	}
	if office.Location.Address != "25 Harbour Road, Wan Chai" {
		t.Fatalf("unexpected office address %q", office.Location.Address)
	}

	checkin, _ := taskByID(tasks, "task-temp-checkin")
	if checkin.Location.Name != "Wan Chai" {
		t.Fatalf("expected preferred area location, got %q", checkin.Location.Name)
	}
}

func TestGenerator_OfficeWithoutAddress(t *testing.T) {
	gen := NewGenerator(testCatalog(t), nopLog{})
	profile := testProfile()
	profile.OfficeAddress = ""
	tasks := gen.Generate(profile)

	office, _ := taskByID(tasks, "task-office-visit")
	if office.Location.State != model.LocationNone {
		t.Fatalf("expected no location, got %v", office.Location.State)
	}
}
