// Package app wires the configuration into a runnable planning service.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/relokit/settler/config"
	"github.com/relokit/settler/core/catalog"
	coremetrics "github.com/relokit/settler/core/metrics"
	"github.com/relokit/settler/core/model"
	"github.com/relokit/settler/core/planner"
	"github.com/relokit/settler/core/poi"
	"github.com/relokit/settler/infra/logger"
	"github.com/relokit/settler/infra/metrics"
	infrapoi "github.com/relokit/settler/infra/poi"
	"github.com/relokit/settler/internal/eventbus"
)

// Service owns the assembler and its observability plumbing.
type Service struct {
	Assembler *planner.Assembler
	bus       *eventbus.Bus
	sink      coremetrics.MetricsSink
	log       logger.Logger
	stop      context.CancelFunc
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	var (
		src      poi.Source
		geocoder poi.Geocoder
	)
	if cfg.Lookup.Provider == "overpass" {
		var srcOpts []infrapoi.OverpassOption
		if cfg.Lookup.OverpassURL != "" {
			srcOpts = append(srcOpts, infrapoi.WithOverpassURL(cfg.Lookup.OverpassURL))
		}
		srcOpts = append(srcOpts, infrapoi.WithOverpassLimit(cfg.Lookup.ResultsPerCategory))
		src = infrapoi.NewOverpassSource(srcOpts...)

		geoOpts := []infrapoi.NominatimOption{infrapoi.WithCity(cfg.Lookup.City)}
		if cfg.Lookup.NominatimURL != "" {
			geoOpts = append(geoOpts, infrapoi.WithNominatimURL(cfg.Lookup.NominatimURL))
		}
		geocoder = infrapoi.NewNominatimGeocoder(geoOpts...)
	}

	bus := eventbus.New()
	ctx, stop := context.WithCancel(context.Background())
	metrics.StartEventCollector(ctx, bus, sink)

	opts := []planner.Option{planner.WithEventBus(bus)}
	if geocoder != nil {
		opts = append(opts, planner.WithGeocoder(geocoder))
	}
	asm, err := planner.NewAssembler(cat, src, cfg.Planner, logg, opts...)
	if err != nil {
		stop()
		return nil, fmt.Errorf("assembler: %w", err)
	}

	return &Service{Assembler: asm, bus: bus, sink: sink, log: logg, stop: stop}, nil
}

// Plan runs a scheduling pass for the profile and records the outcome.
func (s *Service) Plan(ctx context.Context, profile model.CustomerProfile) (planner.Result, error) {
	res, err := s.Assembler.Assemble(ctx, profile)
	if err != nil {
		return planner.Result{}, err
	}

	core, ext := 0, 0
	for _, t := range res.Plan.Tasks {
		if t.Kind == model.KindExtended {
			ext++
		} else {
			core++
		}
	}
	if err := s.sink.RecordPlanResult(coremetrics.PlanResult{
		PlanID:        res.Plan.ID,
		Customer:      res.Plan.Customer,
		ArrivalDate:   res.Plan.ArrivalDate,
		HorizonDays:   res.Plan.Horizon,
		CoreTasks:     core,
		ExtendedTasks: ext,
		Deferrals:     len(res.Deferrals),
		Duration:      res.Elapsed,
		Time:          time.Now(),
	}); err != nil {
		s.log.Warnf("record plan result: %v", err)
	}
	if rec, ok := s.sink.(coremetrics.TaskVolumeRecorder); ok {
		if err := rec.RecordTaskVolume(taskVolumes(res.Plan)); err != nil {
			s.log.Warnf("record task volumes: %v", err)
		}
	}
	return res, nil
}

// taskVolumes snapshots the per-day load of a plan, one entry per day and
// task kind, ascending by day.
func taskVolumes(plan model.Plan) []coremetrics.TaskVolume {
	byDay := plan.ByDay()
	var vols []coremetrics.TaskVolume
	for _, day := range plan.Days() {
		core, ext := 0, 0
		for _, t := range byDay[day] {
			if t.Kind == model.KindExtended {
				ext++
			} else {
				core++
			}
		}
		if core > 0 {
			vols = append(vols, coremetrics.TaskVolume{PlanID: plan.ID, Day: day, Kind: model.KindCore, Count: core})
		}
		if ext > 0 {
			vols = append(vols, coremetrics.TaskVolume{PlanID: plan.ID, Day: day, Kind: model.KindExtended, Count: ext})
		}
	}
	return vols
}

// Close releases the event bus and collector.
func (s *Service) Close() error {
	s.stop()
	s.bus.Close()
	return nil
}
