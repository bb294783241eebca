package metrics

import "testing"

type recordSink struct {
	count int
}

func (r *recordSink) RecordPlanResult(PlanResult) error {
	r.count++
	return nil
}

func (r *recordSink) RecordDeferral(DeferralEvent) error {
	r.count++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordPlanResult(PlanResult{}); err != nil {
		t.Fatalf("record result: %v", err)
	}
	if err := m.RecordDeferral(DeferralEvent{}); err != nil {
		t.Fatalf("record deferral: %v", err)
	}
	if s1.count != 2 || s2.count != 2 {
		t.Fatal("events not forwarded to all sinks")
	}
	// Lookup events are dropped for sinks that do not implement the recorder.
	if err := m.RecordLookup(LookupEvent{}); err != nil {
		t.Fatalf("record lookup: %v", err)
	}
	if s1.count != 2 {
		t.Fatal("lookup should not reach a sink without LookupRecorder")
	}
}
