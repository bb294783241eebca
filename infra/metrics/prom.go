package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/relokit/settler/core/metrics"
)

// PromSink records planning events in Prometheus metrics.
type PromSink struct {
	plans     *prometheus.CounterVec
	lookups   *prometheus.CounterVec
	deferrals prometheus.Counter
	duration  prometheus.Histogram
	tasks     *prometheus.HistogramVec
}

// NewPromSink registers planning metrics on the default Prometheus registerer.
// The Prometheus server should be started separately.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_plans_total",
		Help: "Total number of generated settlement plans",
	}, []string{"customer"})
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_lookups_total",
		Help: "Total number of external map-service lookups",
	}, []string{"provider", "success"})
	deferrals := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "settlement_deferrals_total",
		Help: "Total number of tasks deferred by load balancing",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "settlement_plan_duration_seconds",
		Help:    "Time spent assembling a plan",
		Buckets: prometheus.DefBuckets,
	})
	tasks := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "settlement_plan_tasks",
		Help:    "Number of tasks per generated plan",
		Buckets: []float64{5, 10, 20, 30, 40, 60},
	}, []string{"kind"})

	collectors := []prometheus.Collector{plans, lookups, deferrals, duration, tasks}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			switch i {
			case 0:
				plans = are.ExistingCollector.(*prometheus.CounterVec)
			case 1:
				lookups = are.ExistingCollector.(*prometheus.CounterVec)
			case 2:
				deferrals = are.ExistingCollector.(prometheus.Counter)
			case 3:
				duration = are.ExistingCollector.(prometheus.Histogram)
			case 4:
				tasks = are.ExistingCollector.(*prometheus.HistogramVec)
			}
		}
	}

	return &PromSink{plans: plans, lookups: lookups, deferrals: deferrals, duration: duration, tasks: tasks}, nil
}

// RecordPlanResult increments the plan counter and observes durations and sizes.
func (s *PromSink) RecordPlanResult(res coremetrics.PlanResult) error {
	s.plans.WithLabelValues(res.Customer).Inc()
	s.duration.Observe(res.Duration.Seconds())
	s.tasks.WithLabelValues("core").Observe(float64(res.CoreTasks))
	s.tasks.WithLabelValues("extended").Observe(float64(res.ExtendedTasks))
	return nil
}

// RecordLookup increments the lookup counter.
func (s *PromSink) RecordLookup(ev coremetrics.LookupEvent) error {
	s.lookups.WithLabelValues(ev.Provider, strconv.FormatBool(ev.Err == "")).Inc()
	return nil
}

// RecordDeferral increments the deferral counter.
func (s *PromSink) RecordDeferral(coremetrics.DeferralEvent) error {
	s.deferrals.Inc()
	return nil
}
