package pattern

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

// Write encodes p as a plaintext (.cells) file.
// Cells are shifted so the top-left live cell's row and column start at zero,
// and each row stops at its last live cell.
func Write(w io.Writer, p *Pattern) error {
	bw := bufio.NewWriter(w)

	if p.Name != "" {
		bw.WriteString("!Name: " + p.Name + "\n")
	}
	for _, c := range p.Comments {
		bw.WriteString("! " + c + "\n")
	}

	for _, row := range plainRows(FromCells(p.Name, p.Cells).Cells) {
		bw.WriteString(row)
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "[Write] failed to write pattern")
	}
	return nil
}

// plainRows lays normalized cells out as rows of glyphs
func plainRows(cells []model.Coord) []string {
	if len(cells) == 0 {
		return nil
	}

	lastCol := make(map[int]int)
	alive := make(map[model.Coord]struct{}, len(cells))
	height := 0
	for _, c := range cells {
		alive[c] = struct{}{}
		lastCol[c.Y] = max(lastCol[c.Y], c.X)
		height = max(height, c.Y+1)
	}

	rows := make([]string, height)
	for y := range height {
		end, ok := lastCol[y]
		if !ok {
			rows[y] = string(plainDead)
			continue
		}

		var sb strings.Builder
		for x := 0; x <= end; x++ {
			if _, ok := alive[model.Coord{X: x, Y: y}]; ok {
				sb.WriteRune(plainAlive)
			} else {
				sb.WriteRune(plainDead)
			}
		}
		rows[y] = sb.String()
	}
	return rows
}
