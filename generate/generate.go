// Package generate builds random reef worlds from layered simplex noise.
// Output is world-load records, so generated worlds go through the same
// loader as saved ones.
package generate

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/lixenwraith/reef/asset"
	"github.com/lixenwraith/reef/core"
	"github.com/lixenwraith/reef/world"
)

// Config holds generation parameters
type Config struct {
	Cols, Rows int
	Seed       int64 // 0 picks a random seed

	// Depth thresholds on normalized depth in [0, 1]
	DeepLevel  float64 // at or above: deep water
	WaterLevel float64 // at or above: water; below: sand
	RidgeLevel float64 // sand at or below this depth becomes rock

	SeaGrass int
	Atlantis int
	Octopi   int

	SeaGrassPeriodMin int // ms
	SeaGrassPeriodMax int // ms
	OctoLimit         int
	OctoActionMs      int
	OctoAnimationMs   int
}

// DefaultConfig scales population to the grid area
func DefaultConfig(cols, rows int) Config {
	area := cols * rows
	return Config{
		Cols:              cols,
		Rows:              rows,
		DeepLevel:         0.62,
		WaterLevel:        0.38,
		RidgeLevel:        0.22,
		SeaGrass:          max(area/160, 1),
		Atlantis:          max(area/800, 1),
		Octopi:            max(area/400, 1),
		SeaGrassPeriodMin: 4000,
		SeaGrassPeriodMax: 9000,
		OctoLimit:         4,
		OctoActionMs:      800,
		OctoAnimationMs:   150,
	}
}

// World is a generated world
type World struct {
	Seed    int64
	Records []string
}

// Generate lays out backgrounds, rock ridges and a starting population
// The same seed and config always produce the same records
func Generate(cfg Config) World {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	depthNoise := opensimplex.NewNormalized(seed)
	rng := rand.New(rand.NewSource(seed))

	var records []string
	var open []core.Point
	rocks := 0

	for y := 0; y < cfg.Rows; y++ {
		for x := 0; x < cfg.Cols; x++ {
			depth := octaveNoise(depthNoise, float64(x), float64(y), 4, 0.06, 0.5)

			bg := asset.KeySand
			switch {
			case depth >= cfg.DeepLevel:
				bg = asset.KeyDeep
			case depth >= cfg.WaterLevel:
				bg = asset.KeyWater
			}
			records = append(records, fmt.Sprintf("%s %s %d %d", world.TagBackground, bg, x, y))

			if depth <= cfg.RidgeLevel {
				rocks++
				records = append(records, fmt.Sprintf("%s rock_%d %d %d", world.TagObstacle, rocks, x, y))
				continue
			}
			if bg != asset.KeySand {
				open = append(open, core.Point{X: x, Y: y})
			}
		}
	}

	if len(open) == 0 {
		return World{Seed: seed, Records: records}
	}

	// Collector starts on the open tile nearest the centre
	centre := core.Point{X: cfg.Cols / 2, Y: cfg.Rows / 2}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].DistanceSquared(centre) < open[j].DistanceSquared(centre)
	})
	start := open[0]
	records = append(records, fmt.Sprintf("%s collector %d %d", world.TagCollector, start.X, start.Y))
	open = open[1:]

	rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })
	take := func() (core.Point, bool) {
		if len(open) == 0 {
			return core.Point{}, false
		}
		p := open[0]
		open = open[1:]
		return p, true
	}

	for i := 1; i <= cfg.Atlantis; i++ {
		p, ok := take()
		if !ok {
			break
		}
		records = append(records, fmt.Sprintf("%s atlantis_%d %d %d", world.TagAtlantis, i, p.X, p.Y))
	}
	for i := 1; i <= cfg.SeaGrass; i++ {
		p, ok := take()
		if !ok {
			break
		}
		period := cfg.SeaGrassPeriodMin
		if span := cfg.SeaGrassPeriodMax - cfg.SeaGrassPeriodMin; span > 0 {
			period += rng.Intn(span)
		}
		records = append(records, fmt.Sprintf("%s grass_%d %d %d %d", world.TagSeaGrass, i, p.X, p.Y, period))
	}
	for i := 1; i <= cfg.Octopi; i++ {
		p, ok := take()
		if !ok {
			break
		}
		records = append(records, fmt.Sprintf("%s octo_%d %d %d %d %d %d",
			world.TagOcto, i, p.X, p.Y, cfg.OctoLimit, cfg.OctoActionMs, cfg.OctoAnimationMs))
	}

	return World{Seed: seed, Records: records}
}

// octaveNoise layers frequencies of noise into a value in [0, 1]
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return math.Max(0, math.Min(1, total/maxVal))
}
