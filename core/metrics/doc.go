package metrics

// Package metrics defines interfaces and implementations for collecting
// planning metrics. Sinks like PromSink and InfluxSink record plan results,
// external lookups and load-balancing deferrals and can be combined with
// NewMultiSink. The factory helpers return a MultiSink automatically when
// multiple sinks are configured.
