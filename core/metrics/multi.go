package metrics

// MultiSink fans plan results out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlanResult forwards the record to all sinks, returning the first error encountered.
func (m *MultiSink) RecordPlanResult(res PlanResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlanResult(res); err != nil {
			return err
		}
	}
	return nil
}

// RecordLookup forwards lookup events when supported by the sink.
func (m *MultiSink) RecordLookup(ev LookupEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(LookupRecorder); ok {
			if err := rec.RecordLookup(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordDeferral forwards deferral events when supported by the sink.
func (m *MultiSink) RecordDeferral(ev DeferralEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(DeferralRecorder); ok {
			if err := rec.RecordDeferral(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordTaskVolume forwards load snapshots when supported by the sink.
func (m *MultiSink) RecordTaskVolume(vols []TaskVolume) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(TaskVolumeRecorder); ok {
			if err := rec.RecordTaskVolume(vols); err != nil {
				return err
			}
		}
	}
	return nil
}
