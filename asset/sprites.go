package asset

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

// Sprite keys shared by the loader, entities and renderer
const (
	KeyBackgroundDefault = "background_default"
	KeyWater             = "water"
	KeySand              = "sand"
	KeyDeep              = "deep"
	KeyObstacle          = "obstacle"
	KeyAtlantis          = "atlantis"
	KeyQuake             = "quake"
	KeySeaGrass          = "seaGrass"
	KeyFish              = "fish"
	KeyCrab              = "crab"
	KeyOcto              = "octo"
	KeyCollector         = "collector"
)

// FallbackFrame is drawn for keys with no registered frames
var FallbackFrame = Frame{Glyph: '?', Style: tcell.StyleDefault.Foreground(tcell.ColorFuchsia)}

// DefaultSpriteList is the built-in sprite list, used when no sprite file is configured
// A sprite file loaded on top appends frames to these keys or introduces new ones
const DefaultSpriteList = `
# key glyph fg bg
background_default . #3a5f7d #0b2a45
water   ~ #5fafd7 #0b2a45
water   ≈ #5fafd7 #0b2a45
sand    . #d7af5f #5f4b1e
deep    ~ #1c4f78 #04172a

obstacle ▓ #8a8a8a
atlantis Ω #ffd75f
atlantis Ω #ffaf00
atlantis ω #ffaf00
atlantis Ω #ffd75f
quake    * #ff5f5f
quake    + #ff8700
quake    x #ffd700
seaGrass ψ #5fd75f
fish     > #d7d7ff
fish     ≻ #afafff
crab     ¤ #ff875f
crab     ¥ #ff5f00
octo     Ö #d787ff
octo     O #af5fff
octo     ö #d787ff
collector @ #ffffff
`

// NewDefaultStore returns a store populated from DefaultSpriteList
func NewDefaultStore() *Store {
	s := NewStore(FallbackFrame)
	// The built-in list is known-good; a parse failure here is a programming error
	if _, err := s.Load(strings.NewReader(DefaultSpriteList), logrus.StandardLogger()); err != nil {
		panic(err)
	}
	return s
}
