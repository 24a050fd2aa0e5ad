// Package status holds the run's live metrics: counters written by the
// simulation loop and read by the renderer and the exit summary.
package status

import "sync/atomic"

// Metric keys published by the simulation
const (
	EventsFired      = "events.fired"
	EntitiesSpawned  = "entities.spawned"
	EntitiesConsumed = "entities.consumed"
	EntitiesEvicted  = "entities.evicted"
	Transforms       = "transforms"
	Deposits         = "deposits"
	Collected        = "collected"
	Ticks            = "ticks"

	SimTime   = "sim.time_seconds"
	TimeScale = "sim.time_scale"
	SimState  = "sim.state"
)

// Registry is the central metrics facade
// Writers cache pointers at setup; the hot path touches only atomics
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Counter returns the integer metric for key, creating it on first use
func (r *Registry) Counter(key string) *atomic.Int64 {
	return r.Ints.Get(key)
}

// Snapshot copies every metric into a flat map keyed by metric name
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		out[key] = v.Load()
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		out[key] = v.Get()
	})
	r.Strings.Range(func(key string, v *AtomicString) {
		out[key] = v.Load()
	})
	return out
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}
