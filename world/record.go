package world

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/lixenwraith/reef/core"
)

// World-load record tags
const (
	TagBackground = "background"
	TagObstacle   = "obstacle"
	TagAtlantis   = "atlantis"
	TagSeaGrass   = "seaGrass"
	TagCollector  = "collector"
	TagOcto       = "octo"
	TagFish       = "fish"
)

// Token positions shared by every record
const (
	propertyKey = 0
	propertyID  = 1
	propertyCol = 2
	propertyRow = 3
)

// recordFields is the exact token count per tag, tag included
var recordFields = map[string]int{
	TagBackground: 4, // background <name> <col> <row>
	TagObstacle:   4, // obstacle <name> <col> <row>
	TagAtlantis:   4, // atlantis <name> <col> <row>
	TagSeaGrass:   5, // seaGrass <name> <col> <row> <actionPeriodMs>
	TagCollector:  4, // collector <name> <col> <row>
	TagOcto:       7, // octo <name> <col> <row> <limit> <actionPeriodMs> <animationPeriodMs>
	TagFish:       5, // fish <name> <col> <row> <actionPeriodMs>
}

// Record is one parsed world-load line
type Record struct {
	Tag  string
	Name string
	Pos  core.Point
	// Args holds the integer fields after the row, in file order
	Args []int
}

// ParseRecord parses a world-load line
// Returns ok=false for blank and # comment lines. Errors wrap core.ErrMalformedRecord
func ParseRecord(line string) (Record, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Record{}, false, nil
	}

	properties := strings.Fields(trimmed)
	tag := properties[propertyKey]
	want, known := recordFields[tag]
	if !known {
		return Record{}, false, errors.Wrapf(core.ErrMalformedRecord, "unknown tag %q", tag)
	}
	if len(properties) != want {
		return Record{}, false, errors.Wrapf(core.ErrMalformedRecord, "%s wants %d fields, got %d", tag, want, len(properties))
	}

	ints := make([]int, 0, want-propertyCol)
	for _, tok := range properties[propertyCol:] {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return Record{}, false, errors.Wrapf(core.ErrMalformedRecord, "%s field %q is not an integer", tag, tok)
		}
		ints = append(ints, v)
	}

	return Record{
		Tag:  tag,
		Name: properties[propertyID],
		Pos:  core.Point{X: ints[0], Y: ints[1]},
		Args: ints[propertyRow-propertyCol+1:],
	}, true, nil
}

// String renders the record back into world-load syntax
func (r Record) String() string {
	var b strings.Builder
	b.WriteString(r.Tag)
	b.WriteByte(' ')
	b.WriteString(r.Name)
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(r.Pos.X))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(r.Pos.Y))
	for _, a := range r.Args {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(a))
	}
	return b.String()
}
