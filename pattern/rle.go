package pattern

import (
	"io"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/rules"
)

const (
	rleComment = '#'
	rleDead    = 'b'
	rleAlive   = 'o'
	rleEOL     = '$'
	rleEnd     = '!'

	// maxRunCount caps a single run so a short file cannot demand unbounded cells
	maxRunCount = 1 << 20
)

// rleDecoder tracks the cursor while walking the run-length body
type rleDecoder struct {
	cells cellSet
	x, y  int
	run   int

	width  int
	height int
}

// count consumes the pending run count, which defaults to 1
func (d *rleDecoder) count() int {
	n := max(d.run, 1)
	d.run = 0
	return n
}

func (d *rleDecoder) tag(ch rune) {
	switch ch {
	case rleAlive:
		n := d.count()
		for i := range n {
			d.cells.add(model.Coord{X: d.x + i, Y: d.y})
		}
		d.x += n
	case rleDead:
		d.x += d.count()
	case rleEOL:
		d.y += d.count()
		d.x = 0
		return
	}
	d.width = max(d.width, d.x)
	d.height = max(d.height, d.y+1)
}

/*
ParseRLE decodes the run-length encoded (.rle) dialect.

Lines starting with '#' are metadata (#N name, #C/#c/#O comments). The first other line is
the "x = m, y = n, rule = B3/S23" header; a rule other than B3/S23 is rejected. The body is a
sequence of <count><tag> items where 'b' is dead, 'o' is alive and '$' ends a row, terminated by '!'.
*/
func ParseRLE(r io.Reader) (*Pattern, error) {
	var (
		p        = &Pattern{}
		d        rleDecoder
		declared *header

		scanner    = newLineScanner(r)
		lineNo     int
		seenHeader bool
		done       bool
	)

	for !done && scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), " \t\r")

		if strings.HasPrefix(line, string(rleComment)) {
			addRLEMetadata(p, line[1:])
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !seenHeader {
			seenHeader = true
			if headerLine.MatchString(line) {
				h, err := parseHeader(line, lineNo)
				if err != nil {
					Logger.Printf("ignoring header: %v", err)
					continue
				}
				if h.rule != "" && !rules.IsConway(h.rule) {
					return nil, &ParseError{Kind: UnsupportedRule, Line: lineNo, Msg: h.rule}
				}
				declared = &h
				continue
			}
			Logger.Printf("ignoring header: %v", &ParseError{Kind: MalformedHeader, Line: lineNo, Msg: "missing x = m, y = n line"})
		}

		for i, ch := range []rune(line) {
			switch {
			case ch >= '0' && ch <= '9':
				digit := int(ch - '0')
				if d.run > (maxRunCount-digit)/10 {
					return nil, &ParseError{Kind: InvalidGlyph, Line: lineNo, Col: i + 1, Glyph: ch, Msg: "run count too large"}
				}
				d.run = d.run*10 + digit
			case ch == rleAlive || ch == rleDead || ch == rleEOL:
				d.tag(ch)
			case ch == rleEnd:
				done = true
			case unicode.IsSpace(ch):
			default:
				return nil, &ParseError{Kind: InvalidGlyph, Line: lineNo, Col: i + 1, Glyph: ch}
			}
			if done {
				break
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "[ParseRLE] failed to read pattern")
	}

	p.Cells = d.cells.cells
	p.Width, p.Height = d.width, d.height
	if declared != nil {
		p.Width, p.Height = declared.width, declared.height
	}
	return p, nil
}

func addRLEMetadata(p *Pattern, text string) {
	if text == "" {
		return
	}
	kind, body := text[0], strings.TrimSpace(text[1:])
	switch kind {
	case 'N':
		if p.Name == "" {
			p.Name = body
		}
	case 'C', 'c', 'O':
		if body != "" {
			p.Comments = append(p.Comments, body)
		}
	}
}
