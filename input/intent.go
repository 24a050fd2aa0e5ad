// Package input maps terminal events to simulation intents.
package input

import "github.com/lixenwraith/reef/core"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit        // q, Ctrl+C, Ctrl+Q
	IntentPause       // p, space
	IntentToggleDebug // Ctrl+D
	IntentToggleSound // Ctrl+S
	IntentResize      // Terminal resize event

	// World interaction
	IntentMove      // arrows, hjkl
	IntentTerraform // left click
)

func (t IntentType) String() string {
	switch t {
	case IntentNone:
		return "None"
	case IntentQuit:
		return "Quit"
	case IntentPause:
		return "Pause"
	case IntentToggleDebug:
		return "ToggleDebug"
	case IntentToggleSound:
		return "ToggleSound"
	case IntentResize:
		return "Resize"
	case IntentMove:
		return "Move"
	case IntentTerraform:
		return "Terraform"
	default:
		return "Unknown"
	}
}

// Intent is one translated event
type Intent struct {
	Type IntentType
	// Delta is the collector step for IntentMove
	Delta core.Point
	// Screen is the clicked cell for IntentTerraform, or the new size for IntentResize
	Screen core.Point
}
