package asset

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Frame is one sprite image: a single glyph with its style
type Frame struct {
	Glyph rune
	Style tcell.Style
}

// Store maps sprite keys to ordered frame lists
// Populated at startup and read-only afterwards
type Store struct {
	lists    map[string][]Frame
	fallback []Frame
}

// NewStore creates an empty store whose misses resolve to the fallback frame
func NewStore(fallback Frame) *Store {
	return &Store{
		lists:    make(map[string][]Frame),
		fallback: []Frame{fallback},
	}
}

// ImageList returns the frames registered for key, or the fallback list
func (s *Store) ImageList(key string) []Frame {
	if frames, ok := s.lists[key]; ok && len(frames) > 0 {
		return frames
	}
	return s.fallback
}

// Has reports whether key has at least one frame
func (s *Store) Has(key string) bool {
	return len(s.lists[key]) > 0
}

// Keys returns the number of distinct sprite keys
func (s *Store) Keys() int {
	return len(s.lists)
}

// Add appends a frame to key
func (s *Store) Add(key string, f Frame) {
	s.lists[key] = append(s.lists[key], f)
}

// Load reads a sprite list: one frame per line as "<key> <glyph> [fg] [bg]"
// Colors are tcell color names or #rrggbb. Blank lines and # comments are skipped,
// bad lines are logged with their line number and skipped. Returns frames added
func (s *Store) Load(r io.Reader, log logrus.FieldLogger) (int, error) {
	scanner := bufio.NewScanner(r)
	added := 0
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, frame, err := parseFrame(line)
		if err != nil {
			log.WithField("line", lineNumber).WithError(err).Warn("skipping sprite entry")
			continue
		}
		s.Add(key, frame)
		added++
	}

	if err := scanner.Err(); err != nil {
		return added, errors.Wrap(err, "read sprite list")
	}
	return added, nil
}

// LoadFile loads a sprite list from disk
// A missing file is reported to the caller; the store keeps whatever it already holds
func (s *Store) LoadFile(path string, log logrus.FieldLogger) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "open sprite list %s", path)
	}
	defer f.Close()

	n, err := s.Load(f, log.WithField("file", path))
	if err != nil {
		return n, errors.Wrapf(err, "load sprite list %s", path)
	}
	return n, nil
}

func parseFrame(line string) (string, Frame, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || len(fields) > 4 {
		return "", Frame{}, errors.Errorf("want 2-4 fields, got %d", len(fields))
	}

	glyph, size := utf8.DecodeRuneInString(fields[1])
	if glyph == utf8.RuneError || size != len(fields[1]) {
		return "", Frame{}, errors.Errorf("glyph %q is not a single rune", fields[1])
	}

	style := tcell.StyleDefault
	if len(fields) > 2 {
		fg := tcell.GetColor(fields[2])
		if fg == tcell.ColorDefault && fields[2] != "default" {
			return "", Frame{}, errors.Errorf("unknown foreground color %q", fields[2])
		}
		style = style.Foreground(fg)
	}
	if len(fields) > 3 {
		bg := tcell.GetColor(fields[3])
		if bg == tcell.ColorDefault && fields[3] != "default" {
			return "", Frame{}, errors.Errorf("unknown background color %q", fields[3])
		}
		style = style.Background(bg)
	}

	return fields[0], Frame{Glyph: glyph, Style: style}, nil
}
