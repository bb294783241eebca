package planner

import (
	"fmt"

	"github.com/relokit/settler/core/catalog"
	"github.com/relokit/settler/core/logger"
	"github.com/relokit/settler/core/model"
)

// Resolver enforces dependency ordering: a task may only land on a day by
// which every category it requires has been satisfied. Requirements are
// strict (provider on an earlier day) unless the category is same-day
// satisfiable.
type Resolver struct {
	cat    *catalog.Catalog
	gen    *Generator
	policy MissingDependencyPolicy
	log    logger.Logger
}

// NewResolver builds a Resolver. The generator is used by the
// auto-insert repair path to materialize missing providers.
func NewResolver(cat *catalog.Catalog, gen *Generator, policy MissingDependencyPolicy, log logger.Logger) *Resolver {
	return &Resolver{cat: cat, gen: gen, policy: policy, log: log}
}

// Resolve returns a copy of tasks with day offsets pushed forward until
// every requirement is satisfied. Categories without a providing task are
// repaired per the configured policy: auto-insert adds the catalog's
// providing template, fail returns a MissingDependencyError.
func (r *Resolver) Resolve(tasks []model.Task, profile model.CustomerProfile) ([]model.Task, error) {
	out := append([]model.Task{}, tasks...)

	var err error
	out, err = r.insertMissingProviders(out, profile)
	if err != nil {
		return nil, err
	}

	// The catalog graph is acyclic (checked at load), so pushing
	// converges within one pass per task.
	for iter := 0; iter <= len(out)+1; iter++ {
		moved := false
		provided := earliestProviderDays(out)
		for i := range out {
			earliest := out[i].Day
			for _, req := range out[i].Requires {
				allowed := provided[req]
				if !req.SameDaySatisfiable() {
					allowed++
				}
				if allowed > earliest {
					earliest = allowed
				}
			}
			if earliest != out[i].Day {
				r.log.Debugf("pushing %s from day %d to day %d", out[i].ID, out[i].Day, earliest)
				out[i].Day = earliest
				moved = true
			}
		}
		if !moved {
			return out, nil
		}
	}
	return nil, fmt.Errorf("dependency resolution did not converge")
}

// Check re-verifies dependency ordering without mutating, used after the
// balancer moves tasks between days.
func (r *Resolver) Check(tasks []model.Task) error {
	provided := earliestProviderDays(tasks)
	for _, t := range tasks {
		for _, req := range t.Requires {
			day, ok := provided[req]
			if !ok {
				return &MissingDependencyError{TaskID: t.ID, Category: req}
			}
			allowed := day
			if !req.SameDaySatisfiable() {
				allowed++
			}
			if t.Day < allowed {
				return fmt.Errorf("task %s on day %d before %s is satisfied (day %d)", t.ID, t.Day, req, allowed)
			}
		}
	}
	return nil
}

func (r *Resolver) insertMissingProviders(tasks []model.Task, profile model.CustomerProfile) ([]model.Task, error) {
	for changed := true; changed; {
		changed = false
		present := make(map[model.Category]bool)
		byTemplate := make(map[string]bool)
		for _, t := range tasks {
			byTemplate[t.TemplateID] = true
			for _, c := range t.Provides {
				present[c] = true
			}
		}
		for _, t := range tasks {
			for _, req := range t.Requires {
				if present[req] {
					continue
				}
				if r.policy == PolicyFail {
					return nil, &MissingDependencyError{TaskID: t.ID, Category: req}
				}
				inserted := false
				for _, id := range r.cat.Providers(req) {
					if byTemplate[id] {
						continue
					}
					repair, ok := r.gen.InstantiateTemplate(id, profile)
					if !ok {
						continue
					}
					r.log.Infof("auto-inserting %s to satisfy %s for %s", repair.ID, req, t.ID)
					tasks = append(tasks, repair)
					inserted = true
					changed = true
					break
				}
				if !inserted {
					return nil, &MissingDependencyError{TaskID: t.ID, Category: req}
				}
			}
			if changed {
				break
			}
		}
	}
	return tasks, nil
}

// earliestProviderDays maps each provided category to the earliest day a
// task provides it.
func earliestProviderDays(tasks []model.Task) map[model.Category]int {
	out := make(map[model.Category]int)
	for _, t := range tasks {
		for _, c := range t.Provides {
			if cur, ok := out[c]; !ok || t.Day < cur {
				out[c] = t.Day
			}
		}
	}
	return out
}
