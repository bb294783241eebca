package metrics

import (
	"context"
	"time"

	"github.com/relokit/settler/core/events"
	coremetrics "github.com/relokit/settler/core/metrics"
	"github.com/relokit/settler/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// planning events. It stops when the context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.LookupEvent:
					if r, ok := sink.(coremetrics.LookupRecorder); ok {
						errStr := ""
						if e.Err != nil {
							errStr = e.Err.Error()
						}
						_ = r.RecordLookup(coremetrics.LookupEvent{
							Provider: e.Op,
							Anchor:   e.TaskID,
							Err:      errStr,
							Time:     time.Now(),
						})
					}
				case events.DeferralEvent:
					if r, ok := sink.(coremetrics.DeferralRecorder); ok {
						_ = r.RecordDeferral(coremetrics.DeferralEvent{
							TaskID:  e.TaskID,
							FromDay: e.FromDay,
							ToDay:   e.ToDay,
							Time:    time.Now(),
						})
					}
				}
			}
		}
	}()
}
