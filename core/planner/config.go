package planner

import "time"

// MissingDependencyPolicy decides what happens when a required category
// has no providing task in the run.
type MissingDependencyPolicy string

const (
	// PolicyAutoInsert inserts the catalog's providing template into the
	// plan at the earliest feasible day.
	PolicyAutoInsert MissingDependencyPolicy = "auto-insert"
	// PolicyFail surfaces a SchedulingInfeasibleError instead.
	PolicyFail MissingDependencyPolicy = "fail"
)

// Config carries the scheduling knobs. Zero values are replaced by the
// defaults in SetDefaults.
type Config struct {
	HorizonDays        int           `json:"horizon_days" yaml:"horizon_days"`
	MaxTasksPerDay     int           `json:"max_tasks_per_day" yaml:"max_tasks_per_day"`
	SearchRadiusM      int           `json:"search_radius_m" yaml:"search_radius_m"`
	RelevanceThreshold float64       `json:"relevance_threshold" yaml:"relevance_threshold"`
	MaxRecsPerAnchor   int           `json:"max_recs_per_anchor" yaml:"max_recs_per_anchor"`
	SameDayCutoffHour  int           `json:"same_day_cutoff_hour" yaml:"same_day_cutoff_hour"`
	LookupConcurrency  int           `json:"lookup_concurrency" yaml:"lookup_concurrency"`
	LookupTimeout      time.Duration `json:"lookup_timeout" yaml:"lookup_timeout"`

	MissingDependency MissingDependencyPolicy `json:"missing_dependency" yaml:"missing_dependency"`
}

// SetDefaults fills unset fields with the documented defaults.
func (c *Config) SetDefaults() {
	if c.HorizonDays == 0 {
		c.HorizonDays = 30
	}
	if c.MaxTasksPerDay == 0 {
		c.MaxTasksPerDay = 4
	}
	if c.SearchRadiusM == 0 {
		c.SearchRadiusM = 2000
	}
	if c.RelevanceThreshold == 0 {
		c.RelevanceThreshold = 0.6
	}
	if c.MaxRecsPerAnchor == 0 {
		c.MaxRecsPerAnchor = 2
	}
	if c.SameDayCutoffHour == 0 {
		c.SameDayCutoffHour = 17
	}
	if c.LookupConcurrency == 0 {
		c.LookupConcurrency = 5
	}
	if c.LookupTimeout == 0 {
		c.LookupTimeout = 5 * time.Second
	}
	if c.MissingDependency == "" {
		c.MissingDependency = PolicyAutoInsert
	}
}

// Validate rejects configurations the scheduler cannot honor.
func (c Config) Validate() error {
	if c.MaxTasksPerDay < 1 {
		return errInvalid("max_tasks_per_day must be at least 1")
	}
	if c.HorizonDays < 1 {
		return errInvalid("horizon_days must be at least 1")
	}
	if c.RelevanceThreshold < 0 || c.RelevanceThreshold > 1 {
		return errInvalid("relevance_threshold must be within [0,1]")
	}
	if c.MissingDependency != PolicyAutoInsert && c.MissingDependency != PolicyFail {
		return errInvalid("missing_dependency must be auto-insert or fail")
	}
	return nil
}

type errInvalid string

func (e errInvalid) Error() string { return "planner config: " + string(e) }
