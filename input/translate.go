package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/reef/core"
)

// Translator turns tcell events into intents
// Mouse clicks fire on press only, so it tracks button state between events
type Translator struct {
	keys    *KeyTable
	buttons tcell.ButtonMask
}

// NewTranslator creates a translator; nil keys uses DefaultKeyTable
func NewTranslator(keys *KeyTable) *Translator {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Translator{keys: keys}
}

// Translate maps ev to an intent; unbound events give IntentNone
func (t *Translator) Translate(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		entry, ok := t.keys.Lookup(ev)
		if !ok {
			return Intent{}
		}
		return Intent{Type: entry.Intent, Delta: entry.Delta}

	case *tcell.EventMouse:
		pressed := ev.Buttons()
		wasDown := t.buttons&tcell.Button1 != 0
		t.buttons = pressed
		if pressed&tcell.Button1 == 0 || wasDown {
			return Intent{}
		}
		x, y := ev.Position()
		return Intent{Type: IntentTerraform, Screen: core.Point{X: x, Y: y}}

	case *tcell.EventResize:
		w, h := ev.Size()
		return Intent{Type: IntentResize, Screen: core.Point{X: w, Y: h}}
	}
	return Intent{}
}
