package render

import "github.com/lixenwraith/reef/core"

// Viewport is the window of world tiles shown on screen
type Viewport struct {
	Origin        core.Point
	Width, Height int
}

// Follow recentres on focus, clamped so the view stays inside a cols x rows world
func (v *Viewport) Follow(focus core.Point, cols, rows int) {
	v.Origin.X = clampOrigin(focus.X-v.Width/2, cols, v.Width)
	v.Origin.Y = clampOrigin(focus.Y-v.Height/2, rows, v.Height)
}

// Resize changes the view size, keeping the origin
func (v *Viewport) Resize(width, height int) {
	v.Width = max(width, 0)
	v.Height = max(height, 0)
}

// ToWorld maps a screen cell to a world tile; false outside the view
func (v *Viewport) ToWorld(screen core.Point) (core.Point, bool) {
	if screen.X < 0 || screen.Y < 0 || screen.X >= v.Width || screen.Y >= v.Height {
		return core.Point{}, false
	}
	return v.Origin.Add(screen), true
}

// ToScreen maps a world tile to its screen cell; false when not visible
func (v *Viewport) ToScreen(p core.Point) (core.Point, bool) {
	s := core.Point{X: p.X - v.Origin.X, Y: p.Y - v.Origin.Y}
	if s.X < 0 || s.Y < 0 || s.X >= v.Width || s.Y >= v.Height {
		return core.Point{}, false
	}
	return s, true
}

func clampOrigin(o, worldSize, viewSize int) int {
	if worldSize <= viewSize {
		return 0
	}
	return max(0, min(o, worldSize-viewSize))
}
