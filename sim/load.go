package sim

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/reef/asset"
	"github.com/lixenwraith/reef/core"
	"github.com/lixenwraith/reef/entity"
	"github.com/lixenwraith/reef/world"
)

// LoadStats summarizes a world load
type LoadStats struct {
	Lines   int
	Loaded  int
	Skipped int
}

// Load reads world records from r, one per line
// Bad records are logged with their line number and skipped
func (s *Simulation) Load(r io.Reader) (LoadStats, error) {
	var stats LoadStats
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		stats.Lines++
		s.loadLine(stats.Lines, scanner.Text(), &stats)
	}
	if err := scanner.Err(); err != nil {
		return stats, errors.Wrap(err, "read world")
	}

	s.log.WithFields(logrus.Fields{
		"loaded":  stats.Loaded,
		"skipped": stats.Skipped,
	}).Info("world loaded")
	return stats, nil
}

// LoadFile loads the world file at path
func (s *Simulation) LoadFile(path string) (LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return LoadStats{}, errors.Wrap(err, "open world file")
	}
	defer f.Close()
	return s.Load(f)
}

// LoadLines loads records already split into lines
func (s *Simulation) LoadLines(lines []string) LoadStats {
	var stats LoadStats
	for i, line := range lines {
		stats.Lines++
		s.loadLine(i+1, line, &stats)
	}
	return stats
}

func (s *Simulation) loadLine(n int, line string, stats *LoadStats) {
	rec, ok, err := world.ParseRecord(line)
	if err == nil && !ok {
		return
	}
	if err == nil {
		err = s.addRecord(rec)
	}
	if err != nil {
		stats.Skipped++
		s.log.WithError(err).WithField("line", n).Warn("skipping world record")
		return
	}
	stats.Loaded++
}

// addRecord builds the record's background or entity and places it
func (s *Simulation) addRecord(rec world.Record) error {
	if !s.world.WithinBounds(rec.Pos) {
		return errors.Wrapf(core.ErrOutOfBounds, "%s %s at %v", rec.Tag, rec.Name, rec.Pos)
	}

	if rec.Tag == world.TagBackground {
		s.world.SetBackground(rec.Pos, world.NewBackground(rec.Name, s.store.ImageList(rec.Name)))
		return nil
	}

	e, err := s.newEntity(rec)
	if err != nil {
		return err
	}
	if !s.world.TryAdd(e) {
		return errors.Wrapf(core.ErrOccupiedCell, "%s %s at %v", rec.Tag, rec.Name, rec.Pos)
	}
	if c, ok := e.(*entity.Collector); ok {
		s.collector = c
	}
	return nil
}

// newEntity is the record-to-entity factory
func (s *Simulation) newEntity(rec world.Record) (world.Entity, error) {
	id := s.world.NextID()
	ms := func(i int) time.Duration { return time.Duration(rec.Args[i]) * time.Millisecond }

	switch rec.Tag {
	case world.TagObstacle:
		return entity.NewObstacle(id, rec.Name, rec.Pos, s.store.ImageList(asset.KeyObstacle)), nil
	case world.TagAtlantis:
		return entity.NewAtlantis(id, rec.Name, rec.Pos, s.store.ImageList(asset.KeyAtlantis)), nil
	case world.TagSeaGrass:
		return entity.NewSeaGrass(id, rec.Name, rec.Pos, s.store.ImageList(asset.KeySeaGrass), ms(0)), nil
	case world.TagFish:
		return entity.NewFish(id, rec.Name, rec.Pos, s.store.ImageList(asset.KeyFish), ms(0)), nil
	case world.TagOcto:
		return entity.NewOctoNotFull(id, rec.Name, rec.Pos, s.store.ImageList(asset.KeyOcto), rec.Args[0], ms(1), ms(2)), nil
	case world.TagCollector:
		if s.collector != nil {
			return nil, errors.Wrapf(core.ErrMalformedRecord, "second collector %s, already have %s", rec.Name, s.collector.Name())
		}
		return entity.NewCollector(id, rec.Name, rec.Pos, s.store.ImageList(asset.KeyCollector)), nil
	default:
		return nil, errors.Wrapf(core.ErrMalformedRecord, "no entity for tag %q", rec.Tag)
	}
}
