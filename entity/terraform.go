package entity

import (
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/reef/asset"
	"github.com/lixenwraith/reef/core"
	"github.com/lixenwraith/reef/world"
)

// terraformPattern is the patch turned to water around a clicked tile
var terraformPattern = [...]core.Point{
	{X: 0, Y: 0},
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: 1, Y: -1},
	{X: -1, Y: 1},
}

// TerraformResult summarizes one terraform
type TerraformResult struct {
	Tiles   int
	Cleared int
	Quake   *Quake
}

// Terraform floods the patch at p with water, clears its obstacles and
// drops a quake marker on p when the tile is free
func Terraform(env *Env, p core.Point) TerraformResult {
	var res TerraformResult
	if !env.World.WithinBounds(p) {
		return res
	}

	water := world.NewBackground(asset.KeyWater, env.Store.ImageList(asset.KeyWater))
	for _, off := range terraformPattern {
		tile := p.Add(off)
		if !env.World.WithinBounds(tile) {
			continue
		}
		env.World.SetBackground(tile, water)
		res.Tiles++

		if occupant, ok := env.World.Occupant(tile); ok && occupant.Kind() == core.KindObstacle {
			env.destroy(occupant)
			res.Cleared++
		}
	}

	if !env.World.IsOccupied(p) {
		quake := NewQuake(env.World.NextID(), p, env.Store.ImageList(asset.KeyQuake))
		if env.spawn(quake) {
			res.Quake = quake
		}
	}

	env.Log.WithFields(logrus.Fields{
		"pos":     p.String(),
		"tiles":   res.Tiles,
		"cleared": res.Cleared,
	}).Debug("terraformed")
	return res
}
