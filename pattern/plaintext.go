package pattern

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

const (
	plainComment  = '!'
	plainAlive    = 'O'
	plainAliveAlt = '*'
	plainDead     = '.'
)

/*
Parse decodes the plaintext (.cells) dialect.

Lines starting with '!' are metadata; "!Name: ..." names the pattern and anything else is
kept as a comment. An optional "x = W, y = H" line before the first data row declares the
dimensions. Data rows use 'O' (or '*') for alive and '.' for dead, row order = increasing y.
Blank lines before the first row are skipped, blank lines between rows are all-dead rows.
*/
func Parse(r io.Reader) (*Pattern, error) {
	var (
		p        = &Pattern{}
		cells    cellSet
		declared *header

		scanner = newLineScanner(r)
		lineNo  int
		row     int
		width   int
		blanks  int
		started bool
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), " \t\r")

		if strings.HasPrefix(line, string(plainComment)) {
			addPlainMetadata(p, line[1:])
			continue
		}

		if line == "" {
			if started {
				blanks++
			}
			continue
		}

		if !started && headerLine.MatchString(line) {
			h, err := parseHeader(line, lineNo)
			if err != nil {
				Logger.Printf("ignoring header: %v", err)
				continue
			}
			declared = &h
			continue
		}

		started = true
		row += blanks
		blanks = 0

		col := 0
		for _, ch := range line {
			switch ch {
			case plainAlive, plainAliveAlt:
				cells.add(model.Coord{X: col, Y: row})
			case plainDead:
			default:
				return nil, &ParseError{Kind: InvalidGlyph, Line: lineNo, Col: col + 1, Glyph: ch}
			}
			col++
		}
		width = max(width, col)
		row++
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "[Parse] failed to read pattern")
	}

	p.Cells = cells.cells
	p.Width, p.Height = width, row
	if declared != nil {
		p.Width, p.Height = declared.width, declared.height
	}
	return p, nil
}

func addPlainMetadata(p *Pattern, text string) {
	if name, ok := strings.CutPrefix(text, "Name:"); ok && p.Name == "" {
		p.Name = strings.TrimSpace(name)
		return
	}
	if text = strings.TrimSpace(text); text != "" {
		p.Comments = append(p.Comments, text)
	}
}
