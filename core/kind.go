package core

// EntityID identifies a live entity for the whole run
// Zero is never allocated
type EntityID uint64

// Kind is the closed set of entity variants
type Kind uint8

const (
	KindObstacle Kind = iota
	KindAtlantis
	KindQuake
	KindSeaGrass
	KindFish
	KindCrab
	KindOctoNotFull
	KindOctoFull
	KindCollector

	kindCount
)

var kindNames = [kindCount]string{
	KindObstacle:    "Obstacle",
	KindAtlantis:    "Atlantis",
	KindQuake:       "Quake",
	KindSeaGrass:    "SeaGrass",
	KindFish:        "Fish",
	KindCrab:        "Crab",
	KindOctoNotFull: "OctoNotFull",
	KindOctoFull:    "OctoFull",
	KindCollector:   "Collector",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Unknown"
}

// Kinds returns every variant in declaration order
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
