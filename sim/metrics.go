package sim

import (
	"sync/atomic"

	"github.com/lixenwraith/reef/status"
	"github.com/lixenwraith/reef/world"
)

// metrics is the observer feeding the status registry
type metrics struct {
	fired      *atomic.Int64
	ticks      *atomic.Int64
	spawned    *atomic.Int64
	consumed   *atomic.Int64
	evicted    *atomic.Int64
	transforms *atomic.Int64
	deposits   *atomic.Int64
}

func newMetrics(reg *status.Registry) *metrics {
	return &metrics{
		fired:      reg.Counter(status.EventsFired),
		ticks:      reg.Counter(status.Ticks),
		spawned:    reg.Counter(status.EntitiesSpawned),
		consumed:   reg.Counter(status.EntitiesConsumed),
		evicted:    reg.Counter(status.EntitiesEvicted),
		transforms: reg.Counter(status.Transforms),
		deposits:   reg.Counter(status.Deposits),
	}
}

func (m *metrics) Spawned(world.Entity)          { m.spawned.Add(1) }
func (m *metrics) Consumed(_, _ world.Entity)    { m.consumed.Add(1) }
func (m *metrics) Evicted(_, _ world.Entity)     { m.evicted.Add(1) }
func (m *metrics) Transformed(_, _ world.Entity) { m.transforms.Add(1) }
func (m *metrics) Deposited(_, _ world.Entity)   { m.deposits.Add(1) }
