package planner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/relokit/settler/core/catalog"
	"github.com/relokit/settler/core/events"
	"github.com/relokit/settler/core/logger"
	"github.com/relokit/settler/core/model"
	"github.com/relokit/settler/core/poi"
	"github.com/relokit/settler/internal/eventbus"
)

// Assembler runs the full scheduling pipeline: template instantiation,
// address resolution, dependency ordering, POI recommendation, load
// balancing and route ordering. It is safe for concurrent use; each call
// works on its own task slices.
type Assembler struct {
	cat      *catalog.Catalog
	cfg      Config
	gen      *Generator
	resolver *Resolver
	rec      *Recommender
	balancer *Balancer
	geocoder poi.Geocoder
	bus      eventbus.EventBus
	log      logger.Logger
}

// Option customizes an Assembler.
type Option func(*Assembler)

// WithGeocoder injects the address resolver used for pending locations.
// Without one, pending locations stay pending.
func WithGeocoder(g poi.Geocoder) Option {
	return func(a *Assembler) { a.geocoder = g }
}

// WithEventBus injects the bus diagnostic events are published on.
func WithEventBus(bus eventbus.EventBus) Option {
	return func(a *Assembler) { a.bus = bus }
}

// NewAssembler wires the pipeline stages over a validated catalog. The
// POI source may be nil, in which case plans carry core tasks only.
func NewAssembler(cat *catalog.Catalog, src poi.Source, cfg Config, log logger.Logger, opts ...Option) (*Assembler, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gen := NewGenerator(cat, log)
	resolver := NewResolver(cat, gen, cfg.MissingDependency, log)
	a := &Assembler{
		cat:      cat,
		cfg:      cfg,
		gen:      gen,
		resolver: resolver,
		balancer: NewBalancer(cfg, resolver, log),
		log:      log,
	}
	if src != nil {
		a.rec = NewRecommender(src, cat, cfg, log)
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Result carries a finished plan along with its run diagnostics.
type Result struct {
	Plan      model.Plan
	Deferrals []Deferral
	Failures  []LookupFailure
	Elapsed   time.Duration
}

// Assemble produces the settlement plan for the profile. External lookup
// failures degrade the plan rather than failing the run; the error return
// covers profile validation and scheduling infeasibility only.
func (a *Assembler) Assemble(ctx context.Context, profile model.CustomerProfile) (Result, error) {
	start := time.Now()
	if err := profile.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid profile: %w", err)
	}

	tasks := a.gen.Generate(profile)
	failures := a.geocodePending(ctx, tasks)

	tasks, err := a.resolver.Resolve(tasks, profile)
	if err != nil {
		return Result{}, err
	}

	if a.rec != nil {
		extended, recFailures := a.rec.Recommend(ctx, tasks, profile)
		failures = append(failures, recFailures...)
		tasks = append(tasks, extended...)
	}

	tasks, deferrals, err := a.balancer.Balance(tasks)
	if err != nil {
		return Result{}, err
	}

	plan := model.Plan{
		ID:          uuid.NewString(),
		Customer:    profile.Name,
		ArrivalDate: profile.ArrivalDate,
		Horizon:     a.cfg.HorizonDays,
		Tasks:       OrderByProximity(tasks),
	}
	if err := plan.Validate(); err != nil {
		return Result{}, fmt.Errorf("assembled plan invalid: %w", err)
	}

	res := Result{
		Plan:      plan,
		Deferrals: deferrals,
		Failures:  failures,
		Elapsed:   time.Since(start),
	}
	a.publish(res)
	a.log.Infof("plan %s assembled: %d tasks over %d days", plan.ID, len(plan.Tasks), len(plan.Days()))
	return res, nil
}

// geocodePending resolves pending task locations through the geocoder
// with a bounded worker pool. Tasks whose lookup fails keep their pending
// location.
func (a *Assembler) geocodePending(ctx context.Context, tasks []model.Task) []LookupFailure {
	if a.geocoder == nil {
		return nil
	}
	var (
		mu       sync.Mutex
		failures []LookupFailure
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.LookupConcurrency)
	for i := range tasks {
		if tasks[i].Location.State != model.LocationPending {
			continue
		}
		i := i
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, a.cfg.LookupTimeout)
			defer cancel()
			res, err := a.geocoder.Geocode(cctx, tasks[i].Location.Address)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, LookupFailure{TaskID: tasks[i].ID, Op: "geocode", Err: err})
				return nil
			}
			loc := tasks[i].Location
			tasks[i].Location = model.ResolvedLocation(loc.ID, loc.Name, res.DisplayName, res.Lat, res.Lon)
			return nil
		})
	}
	_ = g.Wait()
	return failures
}

// publish emits run diagnostics on the event bus, if one was injected.
func (a *Assembler) publish(res Result) {
	if a.bus == nil {
		return
	}
	for _, f := range res.Failures {
		a.bus.Publish(events.LookupEvent{TaskID: f.TaskID, Op: f.Op, Success: false, Err: f.Err})
	}
	for _, d := range res.Deferrals {
		a.bus.Publish(events.DeferralEvent{TaskID: d.TaskID, FromDay: d.FromDay, ToDay: d.ToDay})
	}
	core, ext := 0, 0
	for _, t := range res.Plan.Tasks {
		if t.Kind == model.KindExtended {
			ext++
		} else {
			core++
		}
	}
	a.bus.Publish(events.PlanEvent{
		Customer:      res.Plan.Customer,
		TotalTasks:    len(res.Plan.Tasks),
		CoreTasks:     core,
		ExtendedTasks: ext,
		Days:          len(res.Plan.Days()),
		Failures:      len(res.Failures),
		Elapsed:       res.Elapsed,
	})
}
