package renderer

import "github.com/mattn/go-runewidth"

// cell is one drawn rune and the number of columns it takes.
type cell struct {
	r rune
	w int
}

// frame is a laid-out buffer: screen rows plus the cursor position in
// row coordinates.
type frame struct {
	rows    [][]cell
	cursorX int
	cursorY int
}

// layoutText lays text out in rows of at most width columns, expanding
// tabs to tabWidth stops, and finds the screen position of point.
func layoutText(text []rune, point, width, tabWidth int) frame {
	width = max(width, 1)
	tabWidth = max(tabWidth, 1)

	f := frame{rows: make([][]cell, 1)}
	x := 0
	newRow := func() {
		f.rows = append(f.rows, nil)
		x = 0
	}
	put := func(c cell) {
		if x+c.w > width {
			newRow()
		}
		last := len(f.rows) - 1
		f.rows[last] = append(f.rows[last], c)
		x += c.w
	}
	mark := func() {
		if x >= width {
			newRow()
		}
		f.cursorX, f.cursorY = x, len(f.rows)-1
	}

	for i, r := range text {
		if i == point {
			mark()
		}
		switch r {
		case '\n':
			newRow()
		case '\t':
			for n := tabWidth - x%tabWidth; n > 0; n-- {
				put(cell{' ', 1})
			}
		default:
			if c, ok := displayCell(r); ok {
				put(c)
			}
		}
	}
	if point >= len(text) {
		mark()
	}
	return f
}

// displayCell returns how r is drawn. Control characters show as '?';
// zero-width runes are not drawn.
func displayCell(r rune) (cell, bool) {
	if r < 0x20 || r == 0x7f {
		return cell{'?', 1}, true
	}
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return cell{}, false
	}
	return cell{r, w}, true
}
