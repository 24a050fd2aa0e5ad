package world

import "github.com/lixenwraith/reef/asset"

// Background is the non-occupying layer drawn under entities
// Cells may share one Background value
type Background struct {
	Name   string
	Frames []asset.Frame
	Index  int
}

// NewBackground creates a background showing its first frame
func NewBackground(name string, frames []asset.Frame) *Background {
	return &Background{Name: name, Frames: frames}
}

// Current returns the frame currently shown
func (b *Background) Current() asset.Frame {
	return frameAt(b.Frames, b.Index)
}

func frameAt(frames []asset.Frame, index int) asset.Frame {
	if len(frames) == 0 {
		return asset.FallbackFrame
	}
	return frames[index%len(frames)]
}
