package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/reef/core"
)

// KeyEntry describes what a key does
type KeyEntry struct {
	Intent IntentType
	Delta  core.Point
}

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows)
	SpecialKeys map[tcell.Key]KeyEntry
	// Plain rune bindings
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC: {Intent: IntentQuit},
			tcell.KeyCtrlQ: {Intent: IntentQuit},
			tcell.KeyCtrlD: {Intent: IntentToggleDebug},
			tcell.KeyCtrlS: {Intent: IntentToggleSound},
			tcell.KeyUp:    {Intent: IntentMove, Delta: core.Up},
			tcell.KeyDown:  {Intent: IntentMove, Delta: core.Down},
			tcell.KeyLeft:  {Intent: IntentMove, Delta: core.Left},
			tcell.KeyRight: {Intent: IntentMove, Delta: core.Right},
		},
		Runes: map[rune]KeyEntry{
			'q': {Intent: IntentQuit},
			'p': {Intent: IntentPause},
			' ': {Intent: IntentPause},
			'h': {Intent: IntentMove, Delta: core.Left},
			'j': {Intent: IntentMove, Delta: core.Down},
			'k': {Intent: IntentMove, Delta: core.Up},
			'l': {Intent: IntentMove, Delta: core.Right},
		},
	}
}

// Lookup returns the binding for a key event
func (kt *KeyTable) Lookup(ev *tcell.EventKey) (KeyEntry, bool) {
	if ev.Key() == tcell.KeyRune {
		entry, ok := kt.Runes[ev.Rune()]
		return entry, ok
	}
	entry, ok := kt.SpecialKeys[ev.Key()]
	return entry, ok
}
