package asset

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestStoreLoad(t *testing.T) {
	log, hook := test.NewNullLogger()
	s := NewStore(FallbackFrame)

	input := `
# comment
fish > #ffffff
fish ≻ white navy
crab
octo OO red
`
	n, err := s.Load(strings.NewReader(input), log)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if n != 2 {
		t.Errorf("frames added = %d, want 2", n)
	}

	fish := s.ImageList("fish")
	if len(fish) != 2 {
		t.Fatalf("fish frames = %d, want 2", len(fish))
	}
	if fish[0].Glyph != '>' || fish[1].Glyph != '≻' {
		t.Errorf("fish glyphs = %q %q", fish[0].Glyph, fish[1].Glyph)
	}
	fg, bg, _ := fish[1].Style.Decompose()
	if fg != tcell.ColorWhite || bg != tcell.ColorNavy {
		t.Errorf("fish[1] colors = %v/%v, want white/navy", fg, bg)
	}

	if len(hook.AllEntries()) != 2 {
		t.Fatalf("warnings = %d, want 2", len(hook.AllEntries()))
	}
	if line := hook.AllEntries()[0].Data["line"]; line != 5 {
		t.Errorf("first warning line = %v, want 5", line)
	}
	if hook.LastEntry().Level != logrus.WarnLevel {
		t.Errorf("level = %v, want warn", hook.LastEntry().Level)
	}
}

func TestStoreFallback(t *testing.T) {
	s := NewStore(FallbackFrame)
	frames := s.ImageList("missing")
	if len(frames) != 1 || frames[0] != FallbackFrame {
		t.Errorf("missing key returned %v, want fallback", frames)
	}
	if s.Has("missing") {
		t.Error("Has(missing) = true")
	}
}

func TestDefaultStoreCoversEveryKey(t *testing.T) {
	s := NewDefaultStore()
	keys := []string{
		KeyBackgroundDefault, KeyWater, KeySand, KeyDeep, KeyObstacle, KeyAtlantis,
		KeyQuake, KeySeaGrass, KeyFish, KeyCrab, KeyOcto, KeyCollector,
	}
	for _, k := range keys {
		if !s.Has(k) {
			t.Errorf("default store missing %q", k)
		}
	}
	if got := len(s.ImageList(KeyAtlantis)); got != 4 {
		t.Errorf("atlantis frames = %d, want 4", got)
	}
}

func TestLoadFileMissing(t *testing.T) {
	log, _ := test.NewNullLogger()
	s := NewStore(FallbackFrame)
	if _, err := s.LoadFile("does/not/exist.sprites", log); err == nil {
		t.Error("expected error for missing file")
	}
}
