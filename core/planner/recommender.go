package planner

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/relokit/settler/core/catalog"
	"github.com/relokit/settler/core/geo"
	"github.com/relokit/settler/core/logger"
	"github.com/relokit/settler/core/model"
	"github.com/relokit/settler/core/poi"
)

// categoryWeights are the fixed per-category convenience weights.
var categoryWeights = map[string]float64{
	"supermarket":       0.30,
	"pharmacy":          0.25,
	"clinic":            0.25,
	"bank":              0.20,
	"market":            0.15,
	"convenience_store": 0.15,
	"cafe":              0.10,
	"gym":               0.10,
	"restaurant":        0.10,
	"mall":              0.10,
	"atm":               0.05,
}

// visitDurations estimates how long a stop at each category takes.
var visitDurations = map[string]time.Duration{
	"supermarket":       45 * time.Minute,
	"pharmacy":          20 * time.Minute,
	"convenience_store": 15 * time.Minute,
	"restaurant":        90 * time.Minute,
	"cafe":              45 * time.Minute,
	"gym":               90 * time.Minute,
	"clinic":            45 * time.Minute,
	"mall":              2 * time.Hour,
	"market":            time.Hour,
	"bank":              45 * time.Minute,
	"atm":               10 * time.Minute,
}

// locations around which nearby amenities are not worth suggesting.
var skipAnchorCategories = map[string]bool{
	"airport": true,
	"transit": true,
}

// Recommender attaches POI-derived extended tasks to core task days.
// POI queries run on a bounded pool; scoring and selection stay
// sequential so the outcome is deterministic for a given set of query
// results.
type Recommender struct {
	src poi.Source
	cat *catalog.Catalog
	cfg Config
	log logger.Logger
}

// NewRecommender builds a Recommender over the given POI source.
func NewRecommender(src poi.Source, cat *catalog.Catalog, cfg Config, log logger.Logger) *Recommender {
	return &Recommender{src: src, cat: cat, cfg: cfg, log: log}
}

type anchorQuery struct {
	anchor     model.Task
	categories []string
	candidates []poi.Candidate
	err        error
}

// Recommend returns extended tasks for the given core tasks plus any
// recoverable lookup failures. A failed query yields zero
// recommendations for its anchor, never an aborted run.
func (r *Recommender) Recommend(ctx context.Context, core []model.Task, profile model.CustomerProfile) ([]model.Task, []LookupFailure) {
	if r.src == nil {
		return nil, nil
	}
	queries := r.selectAnchors(core, profile)
	r.runQueries(ctx, queries)

	var (
		extended  []model.Task
		failures  []LookupFailure
		footprint = map[string][]int{} // category|district -> days recommended
		seq       int
	)
	for _, q := range queries {
		if q.err != nil {
			failures = append(failures, LookupFailure{TaskID: q.anchor.ID, Op: "poi-search", Err: q.err})
			continue
		}
		day := r.targetDay(q.anchor)
		picked := 0
		for _, sc := range r.scoreAndRank(q, profile) {
			if picked >= r.cfg.MaxRecsPerAnchor {
				break
			}
			key := sc.cand.Category + "|" + sc.district
			if conflictsWithFootprint(footprint[key], day) {
				continue
			}
			seq++
			extended = append(extended, r.buildTask(sc, q.anchor, day, seq))
			footprint[key] = append(footprint[key], day)
			picked++
		}
	}
	return extended, failures
}

// selectAnchors picks one anchor per day carrying core tasks: the first
// high-priority task with a usable resolved location, else the first
// task with one. Airports and transit hubs are skipped; they rarely have
// the amenities worth recommending.
func (r *Recommender) selectAnchors(core []model.Task, profile model.CustomerProfile) []*anchorQuery {
	byDay := make(map[int][]model.Task)
	var days []int
	for _, t := range core {
		if _, ok := byDay[t.Day]; !ok {
			days = append(days, t.Day)
		}
		byDay[t.Day] = append(byDay[t.Day], t)
	}
	sort.Ints(days)

	var queries []*anchorQuery
	for _, day := range days {
		anchor, ok := pickAnchor(byDay[day])
		if !ok {
			continue
		}
		queries = append(queries, &anchorQuery{
			anchor:     anchor,
			categories: r.categoriesFor(anchor, profile),
		})
	}
	return queries
}

func pickAnchor(tasks []model.Task) (model.Task, bool) {
	usable := func(t model.Task) bool {
		return t.Location.Resolved() && !skipAnchorCategories[t.Location.Category]
	}
	for _, t := range tasks {
		if t.Priority == model.PriorityHigh && usable(t) {
			return t, true
		}
	}
	for _, t := range tasks {
		if usable(t) {
			return t, true
		}
	}
	return model.Task{}, false
}

// categoriesFor combines the anchor's phase defaults with profile
// signals: families get pharmacies and clinics, low budgets markets and
// convenience stores, high budgets cafes and gyms.
func (r *Recommender) categoriesFor(anchor model.Task, profile model.CustomerProfile) []string {
	var base []string
	if tmpl, ok := r.cat.Template(anchor.TemplateID); ok {
		switch tmpl.Phase {
		case catalog.PhaseArrival:
			base = []string{"supermarket", "convenience_store", "pharmacy", "restaurant"}
		case catalog.PhaseHousing:
			base = []string{"supermarket", "restaurant", "cafe", "market"}
		case catalog.PhaseIdentity:
			base = []string{"bank", "atm", "cafe"}
		default:
			base = []string{"supermarket", "pharmacy", "clinic", "cafe"}
		}
	} else {
		base = []string{"supermarket", "pharmacy", "convenience_store"}
	}
	if profile.HasChildren {
		base = append(base, "pharmacy", "clinic", "supermarket")
	}
	switch profile.Tier() {
	case model.BudgetLow:
		base = append(base, "convenience_store", "market")
	case model.BudgetHigh:
		base = append(base, "cafe", "gym")
	}
	if profile.RemoteWork {
		base = append(base, "cafe")
	}
	return dedupeStrings(base)
}

// runQueries executes the POI searches on a bounded worker pool with a
// per-call timeout. Results land back on the query structs, so ordering
// of the subsequent sequential pass is unaffected by completion order.
func (r *Recommender) runQueries(ctx context.Context, queries []*anchorQuery) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.LookupConcurrency)
	var mu sync.Mutex
	for _, q := range queries {
		q := q
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, r.cfg.LookupTimeout)
			defer cancel()
			cands, err := r.src.SearchNearby(callCtx, q.anchor.Location.Lat, q.anchor.Location.Lon, r.cfg.SearchRadiusM, q.categories)
			mu.Lock()
			q.candidates, q.err = cands, err
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
}

type scored struct {
	cand     poi.Candidate
	score    float64
	district string
	distKm   float64
	order    int
}

func (r *Recommender) scoreAndRank(q *anchorQuery, profile model.CustomerProfile) []scored {
	requested := make(map[string]bool, len(q.categories))
	for _, c := range q.categories {
		requested[c] = true
	}
	var out []scored
	for i, cand := range q.candidates {
		distM := geo.DistanceM(q.anchor.Location.Lat, q.anchor.Location.Lon, cand.Lat, cand.Lon)
		if distM > float64(r.cfg.SearchRadiusM) {
			continue
		}
		distKm := distM / 1000
		s := score(cand, requested, distKm, profile)
		if s < r.cfg.RelevanceThreshold {
			continue
		}
		out = append(out, scored{
			cand:     cand,
			score:    s,
			district: extractDistrict(cand.Address),
			distKm:   distKm,
			order:    i,
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].score != out[b].score {
			return out[a].score > out[b].score
		}
		return out[a].order < out[b].order
	})
	return out
}

// score is the composite relevance value:
//
//	0.4*base_relevance + 0.6*convenience
//
// where convenience sums a distance factor, profile match bonuses and
// the fixed category weight, capped at 1.0.
func score(cand poi.Candidate, requested map[string]bool, distKm float64, profile model.CustomerProfile) float64 {
	base := 0.5
	if requested[cand.Category] {
		base = 1.0
	}

	var distance float64
	switch {
	case distKm < 0.5:
		distance = 0.4
	case distKm < 1.0:
		distance = 0.3
	case distKm < 2.0:
		distance = 0.2
	default:
		distance = 0.1
	}

	var bonus float64
	if profile.HasChildren && familyCategories[cand.Category] {
		bonus += 0.2
	}
	switch profile.Tier() {
	case model.BudgetLow:
		if lowBudgetCategories[cand.Category] {
			bonus += 0.2
		}
	case model.BudgetHigh:
		if highBudgetCategories[cand.Category] {
			bonus += 0.2
		}
	}
	if profile.RemoteWork && cand.Category == "cafe" {
		bonus += 0.2
	}

	convenience := distance + bonus + categoryWeights[cand.Category]
	if convenience > 1.0 {
		convenience = 1.0
	}
	return 0.4*base + 0.6*convenience
}

var familyCategories = map[string]bool{
	"pharmacy": true, "clinic": true, "supermarket": true,
}

var lowBudgetCategories = map[string]bool{
	"market": true, "convenience_store": true,
}

var highBudgetCategories = map[string]bool{
	"cafe": true, "gym": true, "mall": true,
}

// targetDay applies the same-day exclusivity rule. User-specified core
// days stay undiluted; other anchors keep same-day suggestions only when
// the anchor wraps up before the cutoff hour.
func (r *Recommender) targetDay(anchor model.Task) int {
	if anchor.UserSpecified {
		return anchor.Day + 1
	}
	if anchor.EndHour() >= r.cfg.SameDayCutoffHour {
		return anchor.Day + 1
	}
	return anchor.Day
}

func (r *Recommender) buildTask(sc scored, anchor model.Task, day, seq int) model.Task {
	dur, ok := visitDurations[sc.cand.Category]
	if !ok {
		dur = 30 * time.Minute
	}
	return model.Task{
		ID:          fmt.Sprintf("ext-%03d", seq),
		Title:       "Visit " + sc.cand.Name,
		Description: fmt.Sprintf("%s near %s", titleCategory(sc.cand.Category), anchor.Location.Name),
		Kind:        model.KindExtended,
		Day:         day,
		Priority:    model.PriorityLow,
		Duration:    dur,
		Location: model.Location{
			ID:       sc.cand.ID,
			Name:     sc.cand.Name,
			Address:  sc.cand.Address,
			State:    model.LocationResolved,
			Lat:      sc.cand.Lat,
			Lon:      sc.cand.Lon,
			Rating:   sc.cand.Rating,
			Category: sc.cand.Category,
		},
		Reason:   recommendationReason(sc, anchor),
		AnchorID: anchor.ID,
	}
}

// recommendationReason renders the human-readable rationale shown with
// the suggestion.
func recommendationReason(sc scored, anchor model.Task) string {
	var distance string
	switch {
	case sc.distKm < 0.5:
		distance = "just around the corner"
	case sc.distKm < 1.0:
		distance = "within walking distance"
	default:
		distance = fmt.Sprintf("about %.1fkm away", sc.distKm)
	}
	reason := fmt.Sprintf("%s %s from %s. Convenient to visit while you're in the area", titleCategory(sc.cand.Category), distance, anchor.Location.Name)
	if sc.score > 0.8 {
		reason += ". Highly recommended for your needs"
	}
	return reason + "."
}

// conflictsWithFootprint blocks a (category, district) pair already
// recommended on the same or an adjacent day.
func conflictsWithFootprint(days []int, day int) bool {
	for _, d := range days {
		if abs(day-d) <= 2 {
			return true
		}
	}
	return false
}

// extractDistrict pulls a known district name out of a free-form
// address, "unknown" when none matches.
func extractDistrict(address string) string {
	lower := strings.ToLower(address)
	for _, d := range catalog.Districts() {
		if strings.Contains(lower, strings.ToLower(d)) {
			return d
		}
	}
	return "unknown"
}

func titleCategory(category string) string {
	words := strings.Split(strings.ReplaceAll(category, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
