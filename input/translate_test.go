package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/reef/core"
)

func TestTranslateKeys(t *testing.T) {
	tests := []struct {
		name      string
		ev        *tcell.EventKey
		want      IntentType
		wantDelta core.Point
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), IntentMove, core.Up},
		{"arrow right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), IntentMove, core.Right},
		{"h", tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), IntentMove, core.Left},
		{"j", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), IntentMove, core.Down},
		{"k", tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), IntentMove, core.Up},
		{"l", tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), IntentMove, core.Right},
		{"pause", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), IntentPause, core.Point{}},
		{"quit", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), IntentQuit, core.Point{}},
		{"ctrl c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), IntentQuit, core.Point{}},
		{"ctrl s", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), IntentToggleSound, core.Point{}},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), IntentNone, core.Point{}},
	}

	tr := NewTranslator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.Translate(tt.ev)
			if got.Type != tt.want || got.Delta != tt.wantDelta {
				t.Errorf("Translate = %v %v, want %v %v", got.Type, got.Delta, tt.want, tt.wantDelta)
			}
		})
	}
}

func TestTranslateClickFiresOnPress(t *testing.T) {
	tr := NewTranslator(nil)

	got := tr.Translate(tcell.NewEventMouse(4, 7, tcell.Button1, tcell.ModNone))
	if got.Type != IntentTerraform || got.Screen != (core.Point{X: 4, Y: 7}) {
		t.Fatalf("press = %v at %v, want Terraform at (4,7)", got.Type, got.Screen)
	}

	// held while dragging
	if got := tr.Translate(tcell.NewEventMouse(5, 7, tcell.Button1, tcell.ModNone)); got.Type != IntentNone {
		t.Errorf("drag = %v, want None", got.Type)
	}
	if got := tr.Translate(tcell.NewEventMouse(5, 7, tcell.ButtonNone, tcell.ModNone)); got.Type != IntentNone {
		t.Errorf("release = %v, want None", got.Type)
	}
	if got := tr.Translate(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone)); got.Type != IntentTerraform {
		t.Errorf("second press = %v, want Terraform", got.Type)
	}
}

func TestTranslateResize(t *testing.T) {
	tr := NewTranslator(nil)
	got := tr.Translate(tcell.NewEventResize(120, 40))
	if got.Type != IntentResize || got.Screen != (core.Point{X: 120, Y: 40}) {
		t.Errorf("Translate(resize) = %v %v, want Resize (120,40)", got.Type, got.Screen)
	}
}
