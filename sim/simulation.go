// Package sim binds the world, scheduler and entity behaviors into a single
// simulation that a driver advances and the UI queries.
package sim

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/reef/asset"
	"github.com/lixenwraith/reef/core"
	"github.com/lixenwraith/reef/engine"
	"github.com/lixenwraith/reef/entity"
	"github.com/lixenwraith/reef/status"
	"github.com/lixenwraith/reef/world"
)

// Option configures a Simulation
type Option func(*settings)

type settings struct {
	timeScale float64
	rand      *rand.Rand
	observers entity.Observers
	registry  *status.Registry
	reach     int
}

// WithTimeScale multiplies every scheduled delay by scale
func WithTimeScale(scale float64) Option {
	return func(s *settings) { s.timeScale = scale }
}

// WithSeed makes spawn lifespans and animation periods reproducible
func WithSeed(seed int64) Option {
	return func(s *settings) { s.rand = rand.New(rand.NewSource(seed)) }
}

// WithObserver adds an observer after the built-in metrics observer
func WithObserver(obs entity.Observer) Option {
	return func(s *settings) { s.observers = append(s.observers, obs) }
}

// WithRegistry publishes metrics into reg instead of a private registry
func WithRegistry(reg *status.Registry) Option {
	return func(s *settings) { s.registry = reg }
}

// WithReach sets the radius seaGrass searches for open cells
func WithReach(reach int) Option {
	return func(s *settings) { s.reach = reach }
}

// Simulation owns the world and its scheduler
// Not safe for concurrent use: one goroutine drives it
type Simulation struct {
	world     *world.World
	scheduler *engine.Scheduler
	store     *asset.Store
	env       *entity.Env
	log       logrus.FieldLogger

	collector *entity.Collector
	started   bool

	registry *status.Registry
	metrics  *metrics
}

// New creates an empty cols x rows simulation with the default background
func New(cols, rows int, store *asset.Store, log logrus.FieldLogger, opts ...Option) *Simulation {
	cfg := settings{
		timeScale: engine.DefaultTimeScale,
		reach:     world.DefaultReach,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rand == nil {
		cfg.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.registry == nil {
		cfg.registry = status.NewRegistry()
	}
	if store == nil {
		store = asset.NewDefaultStore()
	}

	bg := world.NewBackground(asset.KeyBackgroundDefault, store.ImageList(asset.KeyBackgroundDefault))
	w := world.New(cols, rows, bg, world.WithReach(cfg.reach))
	sched := engine.NewScheduler(cfg.timeScale)
	m := newMetrics(cfg.registry)

	s := &Simulation{
		world:     w,
		scheduler: sched,
		store:     store,
		log:       log,
		registry:  cfg.registry,
		metrics:   m,
	}
	s.env = &entity.Env{
		World:     w,
		Store:     store,
		Scheduler: sched,
		Rand:      cfg.rand,
		Log:       log,
		Observer:  append(entity.Observers{m}, cfg.observers...),
	}
	cfg.registry.Floats.Get(status.TimeScale).Set(sched.TimeScale())
	cfg.registry.Strings.Get(status.SimState).Store("loading")
	return s
}

func (s *Simulation) World() *world.World              { return s.world }
func (s *Simulation) Scheduler() *engine.Scheduler     { return s.scheduler }
func (s *Simulation) Store() *asset.Store              { return s.store }
func (s *Simulation) Registry() *status.Registry       { return s.registry }
func (s *Simulation) Now() time.Duration               { return s.scheduler.Now() }
func (s *Simulation) CurrentFrame(obj any) asset.Frame { return s.world.CurrentFrame(obj) }

// Start seeds the recurring events of every loaded entity with an action period
// Obstacles and the collector are never scheduled. Only the first call has effect
func (s *Simulation) Start() int {
	if s.started {
		return 0
	}
	s.started = true

	seeded := 0
	for _, e := range s.world.Entities() {
		switch e.Kind() {
		case core.KindObstacle, core.KindCollector:
			continue
		}
		a, ok := e.(entity.Actor)
		if !ok {
			continue
		}
		if p, ok := e.(entity.Periodic); !ok || p.ActionPeriod() <= 0 {
			continue
		}
		a.ScheduleActions(s.env)
		seeded++
	}

	s.registry.Strings.Get(status.SimState).Store("running")
	s.log.WithFields(logrus.Fields{
		"entities": s.world.Len(),
		"seeded":   seeded,
		"scale":    s.scheduler.TimeScale(),
	}).Info("simulation started")
	return seeded
}

// AdvanceTo fires every event due by t; returns the number fired
func (s *Simulation) AdvanceTo(t time.Duration) int {
	fired := s.scheduler.AdvanceTo(t, s.env)
	s.metrics.fired.Add(int64(fired))
	s.metrics.ticks.Add(1)
	s.registry.Floats.Get(status.SimTime).Set(s.scheduler.Now().Seconds())
	if s.GameOver() {
		s.registry.Strings.Get(status.SimState).Store("game over")
	}
	return fired
}

// Collector returns the player while it is live
func (s *Simulation) Collector() (*entity.Collector, bool) {
	if s.collector == nil || !s.world.IsLive(s.collector) {
		return nil, false
	}
	return s.collector, true
}

// GameOver reports whether the collector has left the world
func (s *Simulation) GameOver() bool {
	_, ok := s.Collector()
	return !ok
}

// Collected is the number of resources the collector has picked up
func (s *Simulation) Collected() int {
	return s.world.Collected()
}

// MoveCollector steps the player by delta
func (s *Simulation) MoveCollector(delta core.Point) entity.MoveResult {
	c, ok := s.Collector()
	if !ok {
		return entity.MoveNone
	}
	res := c.Move(s.env, delta)
	if res == entity.MoveCollected {
		s.registry.Counter(status.Collected).Store(int64(s.world.Collected()))
	}
	return res
}

// Terraform floods the patch at p and clears its obstacles
func (s *Simulation) Terraform(p core.Point) entity.TerraformResult {
	return entity.Terraform(s.env, p)
}

// Census is a point-in-time count of the world's population
type Census struct {
	At        time.Duration
	Counts    map[core.Kind]int
	Collected int
	Pending   int
}

// Census samples the live population
func (s *Simulation) Census() Census {
	return Census{
		At:        s.scheduler.Now(),
		Counts:    s.world.CountByKind(),
		Collected: s.world.Collected(),
		Pending:   s.scheduler.Len(),
	}
}
