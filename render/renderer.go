// Package render draws the reef into a tcell screen.
package render

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/reef/asset"
	"github.com/lixenwraith/reef/core"
	"github.com/lixenwraith/reef/sim"
	"github.com/lixenwraith/reef/status"
)

const statusLines = 1

// HUD carries UI state the simulation does not own
type HUD struct {
	Paused bool
	Debug  bool
	Muted  bool
}

// Renderer draws a Simulation into a tcell screen
// The bottom row is the status line; the rest is the world viewport
type Renderer struct {
	screen   tcell.Screen
	viewport Viewport

	statusStyle   tcell.Style
	gameOverStyle tcell.Style
}

// NewRenderer creates a renderer sized to screen
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{
		screen:        screen,
		statusStyle:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(20, 30, 48)),
		gameOverStyle: tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack).Bold(true),
	}
	r.Resize()
	return r
}

// Resize re-reads the screen size
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.viewport.Resize(w, h-statusLines)
}

// Viewport returns the current view window
func (r *Renderer) Viewport() Viewport {
	return r.viewport
}

// ScreenToWorld maps a clicked cell to a world tile
func (r *Renderer) ScreenToWorld(p core.Point) (core.Point, bool) {
	return r.viewport.ToWorld(p)
}

// RenderFrame draws one full frame and shows it
func (r *Renderer) RenderFrame(s *sim.Simulation, hud HUD) {
	w := s.World()
	if c, ok := s.Collector(); ok {
		r.viewport.Follow(c.Position(), w.Cols(), w.Rows())
	}

	r.screen.Clear()
	r.drawWorld(s)
	r.drawStatusBar(s, hud)
	if s.GameOver() {
		r.drawGameOver(s)
	}
	r.screen.Show()
}

func (r *Renderer) drawWorld(s *sim.Simulation) {
	w := s.World()
	for sy := 0; sy < r.viewport.Height; sy++ {
		for sx := 0; sx < r.viewport.Width; sx++ {
			p, _ := r.viewport.ToWorld(core.Point{X: sx, Y: sy})
			if !w.WithinBounds(p) {
				continue
			}

			frame := asset.FallbackFrame
			if bg, ok := w.Background(p); ok && bg != nil {
				frame = w.CurrentFrame(bg)
			}
			if e, ok := w.Occupant(p); ok {
				frame = overlay(w.CurrentFrame(e), frame)
			}
			r.screen.SetContent(sx, sy, frame.Glyph, nil, frame.Style)
		}
	}
}

// overlay draws fg over bg, inheriting bg's background colour when fg has none
func overlay(fg, bg asset.Frame) asset.Frame {
	_, fgBack, _ := fg.Style.Decompose()
	if fgBack != tcell.ColorDefault {
		return fg
	}
	_, bgBack, _ := bg.Style.Decompose()
	return asset.Frame{Glyph: fg.Glyph, Style: fg.Style.Background(bgBack)}
}

func (r *Renderer) drawStatusBar(s *sim.Simulation, hud HUD) {
	width, height := r.screen.Size()
	y := height - 1
	if y < 0 {
		return
	}

	text := fmt.Sprintf(" collected %s | %s | x%.2g | %s alive",
		humanize.Comma(int64(s.Collected())),
		s.Now().Truncate(100*time.Millisecond),
		1/s.Scheduler().TimeScale(),
		humanize.Comma(int64(s.World().Len())),
	)
	switch {
	case s.GameOver():
		text += " | GAME OVER"
	case hud.Paused:
		text += " | PAUSED"
	}
	if hud.Muted {
		text += " | muted"
	}
	if hud.Debug {
		reg := s.Registry()
		text += fmt.Sprintf(" | ev %s pend %s spawn %s dep %s",
			humanize.Comma(reg.Counter(status.EventsFired).Load()),
			humanize.Comma(int64(s.Scheduler().Len())),
			humanize.Comma(reg.Counter(status.EntitiesSpawned).Load()),
			humanize.Comma(reg.Counter(status.Deposits).Load()),
		)
	}

	drawText(r.screen, 0, y, width, text, r.statusStyle, true)
}

func (r *Renderer) drawGameOver(s *sim.Simulation) {
	lines := []string{
		"  GAME OVER  ",
		fmt.Sprintf("  collected %s  ", humanize.Comma(int64(s.Collected()))),
	}
	top := r.viewport.Height/2 - len(lines)/2
	for i, line := range lines {
		x := (r.viewport.Width - len([]rune(line))) / 2
		drawText(r.screen, max(x, 0), top+i, r.viewport.Width, line, r.gameOverStyle, false)
	}
}

// drawText writes text from x, clipped at width; fill pads the rest of the row
func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style, fill bool) {
	if y < 0 {
		return
	}
	col := x
	for _, ch := range text {
		if col >= width {
			return
		}
		screen.SetContent(col, y, ch, nil, style)
		col++
	}
	if fill {
		for ; col < width; col++ {
			screen.SetContent(col, y, ' ', nil, style)
		}
	}
}
