// Package pattern reads and writes Life pattern files in the plaintext (.cells)
// and run-length encoded (.rle) dialects used by the LifeWiki pattern archive.
package pattern

import (
	"bufio"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

// Logger receives recoverable problems such as malformed headers
var Logger = log.New(os.Stderr, "pattern: ", log.LstdFlags)

// maxLineLength bounds a single line; rows of an unbounded plane can be far wider than bufio's default
const maxLineLength = math.MaxInt32

// headerLine matches the start of an "x = 3, y = 3" dimension header
var headerLine = regexp.MustCompile(`^\s*x\s*=`)

// Pattern is a decoded pattern file.
// Cells are relative to the top-left origin (0,0); Width and Height are advisory.
type Pattern struct {
	Name     string
	Comments []string
	Cells    []model.Coord
	Width    int
	Height   int
}

// Empty reports whether the pattern has no live cells
func (p *Pattern) Empty() bool {
	return len(p.Cells) == 0
}

// FromCells builds a pattern from an arbitrary set of cells, moving its top-left corner to (0,0)
func FromCells(name string, cells []model.Coord) *Pattern {
	p := &Pattern{Name: name}
	if len(cells) == 0 {
		return p
	}

	r := model.Rect{Min: cells[0], Max: cells[0]}
	for _, c := range cells[1:] {
		r.Min.X = min(r.Min.X, c.X)
		r.Min.Y = min(r.Min.Y, c.Y)
		r.Max.X = max(r.Max.X, c.X)
		r.Max.Y = max(r.Max.Y, c.Y)
	}

	offset := model.Coord{X: -r.Min.X, Y: -r.Min.Y}
	p.Cells = make([]model.Coord, 0, len(cells))
	for _, c := range cells {
		p.Cells = append(p.Cells, c.Add(offset))
	}
	p.Width, p.Height = r.Width(), r.Height()
	return p
}

// Decode parses r with the dialect implied by the file name's extension.
// Unknown extensions are read as plaintext.
func Decode(name string, r io.Reader) (*Pattern, error) {
	var (
		p   *Pattern
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".rle":
		p, err = ParseRLE(r)
	default:
		p, err = Parse(r)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[Decode] %s", name)
	}

	if p.Name == "" {
		p.Name = Stem(name)
	}
	return p, nil
}

// newLineScanner splits r into lines without bufio's 64 KiB token limit
func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return scanner
}

// Stem strips the directory and extension from a pattern file name
func Stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Translated returns a copy of p with every cell moved by offset
func (p *Pattern) Translated(offset model.Coord) *Pattern {
	out := *p
	out.Comments = slices.Clone(p.Comments)
	out.Cells = make([]model.Coord, len(p.Cells))
	for i, c := range p.Cells {
		out.Cells[i] = c.Add(offset)
	}
	return &out
}

// header is a parsed "x = m, y = n, rule = ..." line
type header struct {
	width  int
	height int
	rule   string
}

func parseHeader(line string, lineNo int) (header, error) {
	var (
		h         header
		seenX     bool
		seenY     bool
		malformed = func(msg string) error {
			return &ParseError{Kind: MalformedHeader, Line: lineNo, Msg: msg}
		}
	)

	for _, field := range strings.Split(line, ",") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return h, malformed("expected key = value, got " + strconv.Quote(strings.TrimSpace(field)))
		}
		key, value = strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value)

		switch key {
		case "x", "y":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return h, malformed("bad dimension " + key + " = " + strconv.Quote(value))
			}
			if key == "x" {
				h.width, seenX = n, true
			} else {
				h.height, seenY = n, true
			}
		case "rule":
			h.rule = value
		}
	}

	if !seenX || !seenY {
		return h, malformed("missing x or y")
	}
	return h, nil
}

// cellSet deduplicates coordinates while keeping first-seen order
type cellSet struct {
	seen  map[model.Coord]struct{}
	cells []model.Coord
}

func (s *cellSet) add(c model.Coord) {
	if s.seen == nil {
		s.seen = make(map[model.Coord]struct{})
	}
	if _, ok := s.seen[c]; ok {
		return
	}
	s.seen[c] = struct{}{}
	s.cells = append(s.cells, c)
}
