package planner

import (
	"sort"

	"github.com/relokit/settler/core/geo"
	"github.com/relokit/settler/core/model"
)

// OrderByProximity orders each day's tasks with a greedy nearest-neighbor
// walk so consecutive stops are close together. The walk starts from the
// first located task of the day and repeatedly visits the nearest
// unvisited location; ties break on original insertion order, which
// keeps runs deterministic. Tasks without a resolved location keep their
// relative order at the end of the day. The result is a heuristic, not a
// shortest tour.
func OrderByProximity(tasks []model.Task) []model.Task {
	byDay := make(map[int][]model.Task)
	var days []int
	for _, t := range tasks {
		if _, ok := byDay[t.Day]; !ok {
			days = append(days, t.Day)
		}
		byDay[t.Day] = append(byDay[t.Day], t)
	}
	sort.Ints(days)

	out := make([]model.Task, 0, len(tasks))
	for _, day := range days {
		out = append(out, orderDay(byDay[day])...)
	}
	return out
}

func orderDay(tasks []model.Task) []model.Task {
	var located, unlocated []model.Task
	for _, t := range tasks {
		if t.Location.Resolved() {
			located = append(located, t)
		} else {
			unlocated = append(unlocated, t)
		}
	}
	if len(located) < 2 {
		return append(located, unlocated...)
	}

	ordered := make([]model.Task, 0, len(located))
	current := located[0]
	ordered = append(ordered, current)
	remaining := append([]model.Task{}, located[1:]...)

	for len(remaining) > 0 {
		best := 0
		bestDist := geo.DistanceKm(current.Location.Lat, current.Location.Lon,
			remaining[0].Location.Lat, remaining[0].Location.Lon)
		for i := 1; i < len(remaining); i++ {
			d := geo.DistanceKm(current.Location.Lat, current.Location.Lon,
				remaining[i].Location.Lat, remaining[i].Location.Lon)
			if d < bestDist {
				best, bestDist = i, d
			}
		}
		current = remaining[best]
		ordered = append(ordered, current)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return append(ordered, unlocated...)
}
