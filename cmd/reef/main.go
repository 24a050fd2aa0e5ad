// Command reef runs the underwater world simulation in a terminal, or headless
// when stdout is not a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/lixenwraith/reef/asset"
	"github.com/lixenwraith/reef/audio"
	"github.com/lixenwraith/reef/config"
	"github.com/lixenwraith/reef/core"
	"github.com/lixenwraith/reef/generate"
	"github.com/lixenwraith/reef/history"
	"github.com/lixenwraith/reef/input"
	"github.com/lixenwraith/reef/render"
	"github.com/lixenwraith/reef/sim"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Panic Recovery: hand the terminal back before printing the stack
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flags := config.BindFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reef: %v\n", err)
		return 2
	}

	log, logCloser, err := setupLogging(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reef: %v\n", err)
		return 2
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	app, err := newApp(cfg, log)
	if err != nil {
		log.WithError(err).Error("startup failed")
		fmt.Fprintf(os.Stderr, "reef: %v\n", err)
		return 1
	}
	defer app.close()

	headless := cfg.Sim.Headless || !term.IsTerminal(int(os.Stdout.Fd()))
	if headless {
		err = app.runHeadless()
	} else {
		err = app.runTerminal()
	}
	app.finish()
	if err != nil {
		log.WithError(err).Error("run failed")
		fmt.Fprintf(os.Stderr, "reef: %v\n", err)
		return 1
	}
	return 0
}

// app is one run: the simulation plus the optional collaborators around it
type app struct {
	cfg    *config.Config
	log    *logrus.Logger
	sim    *sim.Simulation
	driver *sim.Driver
	cues   *audio.Cues
	census *censusRecorder
}

func newApp(cfg *config.Config, log *logrus.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	store := asset.NewDefaultStore()
	if cfg.Sprites.File != "" {
		if n, err := store.LoadFile(cfg.Sprites.File, log); err != nil {
			log.WithError(err).Warn("sprite list unavailable, using built-in sprites")
		} else {
			log.WithField("frames", n).Info("sprites loaded")
		}
	}

	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := []sim.Option{sim.WithTimeScale(cfg.TimeScale), sim.WithSeed(seed)}

	if cfg.Audio.Enabled {
		cues := audio.NewCues()
		if err := cues.Initialize(); err != nil {
			log.WithError(err).Warn("audio unavailable, continuing without sound")
		} else {
			a.cues = cues
			opts = append(opts, sim.WithObserver(cues))
		}
	}

	a.sim = sim.New(cfg.World.Cols, cfg.World.Rows, store, log, opts...)
	if err := a.populate(); err != nil {
		return nil, err
	}
	a.sim.Start()
	a.driver = sim.NewDriver(a.sim, nil, cfg.Sim.TickInterval)
	a.census = openCensus(cfg, log, seed)
	return a, nil
}

// populate loads the world file, generating a world when asked to or when
// the file does not exist
func (a *app) populate() error {
	cfg := a.cfg
	if !cfg.World.Generate {
		stats, err := a.sim.LoadFile(cfg.World.File)
		if err == nil {
			if stats.Loaded == 0 {
				a.log.WithField("file", cfg.World.File).Warn("world file holds no entities")
			}
			return nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		a.log.WithField("file", cfg.World.File).Warn("world file missing, generating a world")
	}

	gen := generate.DefaultConfig(cfg.World.Cols, cfg.World.Rows)
	gen.Seed = cfg.World.Seed
	w := generate.Generate(gen)
	stats := a.sim.LoadLines(w.Records)
	a.log.WithFields(logrus.Fields{
		"seed":    w.Seed,
		"records": len(w.Records),
		"loaded":  stats.Loaded,
	}).Info("world generated")
	return nil
}

// tick advances the simulation and samples history when due
func (a *app) tick() int {
	fired := a.driver.Tick()
	a.census.observe(a.sim)
	return fired
}

func (a *app) runHeadless() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if d := a.cfg.Sim.Duration; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	a.log.WithField("duration", a.cfg.Sim.Duration).Info("running headless")
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.driver.Run(runCtx, func(int) {
		a.census.observe(a.sim)
		if a.sim.GameOver() {
			cancel()
		}
	})
	return nil
}

func (a *app) runTerminal() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	core.SetCrashHook(screen.Fini)
	defer func() {
		core.SetCrashHook(nil)
		screen.Fini()
	}()
	screen.EnableMouse()
	screen.HideCursor()

	renderer := render.NewRenderer(screen)
	translator := input.NewTranslator(nil)
	hud := render.HUD{Muted: a.cues == nil}

	// Event polling goroutine; PollEvent returns nil once the screen is finalized
	eventChan := make(chan tcell.Event, 16)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	})

	ticker := time.NewTicker(a.driver.TickInterval())
	defer ticker.Stop()

	renderer.RenderFrame(a.sim, hud)
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			intent := translator.Translate(ev)
			switch intent.Type {
			case input.IntentQuit:
				return nil
			case input.IntentPause:
				hud.Paused = a.driver.TogglePause()
			case input.IntentToggleDebug:
				hud.Debug = !hud.Debug
			case input.IntentToggleSound:
				if a.cues != nil {
					hud.Muted = !hud.Muted
					a.cues.SetMuted(audio.CueChime, hud.Muted)
					a.cues.SetMuted(audio.CueBlip, hud.Muted)
				}
			case input.IntentResize:
				screen.Sync()
				renderer.Resize()
			case input.IntentMove:
				if !hud.Paused {
					a.sim.MoveCollector(intent.Delta)
				}
			case input.IntentTerraform:
				if p, ok := renderer.ScreenToWorld(intent.Screen); ok && !hud.Paused {
					a.sim.Terraform(p)
				}
			case input.IntentNone:
				continue
			}
			renderer.RenderFrame(a.sim, hud)

		case <-ticker.C:
			a.tick()
			renderer.RenderFrame(a.sim, hud)
		}
	}
}

// finish logs the run summary and closes the history record
func (a *app) finish() {
	reg := a.sim.Registry()
	summary := history.Summary{
		SimTime:   a.sim.Now(),
		Collected: a.sim.Collected(),
		GameOver:  a.sim.GameOver(),
	}

	a.log.WithFields(logrus.Fields{
		"sim_time":  summary.SimTime.Round(time.Millisecond),
		"collected": humanize.Comma(int64(summary.Collected)),
		"game_over": summary.GameOver,
		"ticks":     a.driver.TickCount(),
		"metrics":   reg.Snapshot(),
	}).Info("run finished")

	if a.log.IsLevelEnabled(logrus.DebugLevel) {
		a.log.Debugf("pending events at exit:\n%s", spew.Sdump(a.sim.Scheduler().Pending()))
	}

	a.census.finish(summary)
}

func (a *app) close() {
	a.census.close()
	if a.cues != nil {
		a.cues.Close()
	}
}

// censusRecorder samples the population into the history database every
// interval of simulated time; a nil recorder does nothing
type censusRecorder struct {
	db       *history.DB
	runID    string
	interval time.Duration
	next     time.Duration
	log      logrus.FieldLogger
}

func openCensus(cfg *config.Config, log logrus.FieldLogger, seed int64) *censusRecorder {
	if cfg.History.File == "" {
		return nil
	}
	db, err := history.Open(cfg.History.File)
	if err != nil {
		log.WithError(err).Warn("run history unavailable")
		return nil
	}
	runID, err := db.StartRun(history.Run{
		Cols:      cfg.World.Cols,
		Rows:      cfg.World.Rows,
		TimeScale: cfg.TimeScale,
		Seed:      seed,
		WorldFile: cfg.World.File,
	})
	if err != nil {
		log.WithError(err).Warn("run history unavailable")
		db.Close()
		return nil
	}
	log.WithField("run", runID).Info("recording run history")
	return &censusRecorder{
		db:       db,
		runID:    runID,
		interval: cfg.History.CensusInterval,
		log:      log.WithField("run", runID),
	}
}

func (r *censusRecorder) observe(s *sim.Simulation) {
	if r == nil || r.interval <= 0 {
		return
	}
	now := s.Now()
	if now < r.next {
		return
	}
	c := s.Census()
	if err := r.db.RecordCensus(r.runID, c.At, c.Counts, c.Collected, c.Pending); err != nil {
		r.log.WithError(err).Warn("census not recorded")
	}
	r.next = (now/r.interval + 1) * r.interval
}

func (r *censusRecorder) finish(summary history.Summary) {
	if r == nil {
		return
	}
	if err := r.db.FinishRun(r.runID, summary); err != nil {
		r.log.WithError(err).Warn("run summary not recorded")
	}
}

func (r *censusRecorder) close() {
	if r == nil {
		return
	}
	if err := r.db.Close(); err != nil {
		r.log.WithError(err).Warn("close run history")
	}
}
