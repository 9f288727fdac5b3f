package render

// Canvas is a braille dot buffer: every terminal cell holds 2x4 dots.
type Canvas struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &Canvas{w: w, h: h, m: m}
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (w, h int) { return c.w, c.h }

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (w, h int) { return c.w * 2, c.h * 4 }

// dotBits[rx][ry] is the braille bit for the dot at column rx, row ry.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// Set turns on the dot at (mx, my). Dots outside the canvas are ignored.
func (c *Canvas) Set(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= c.h || cx >= c.w {
		return
	}
	c.m[cy][cx] |= dotBits[rx][ry]
}

// IsSet reports whether the dot at (mx, my) is on.
func (c *Canvas) IsSet(mx, my int) bool {
	if mx < 0 || my < 0 || mx/2 >= c.w || my/4 >= c.h {
		return false
	}
	return c.m[my/4][mx/2]&dotBits[mx%2][my%4] != 0
}

// Line draws a segment between two dots using Bresenham.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Lines returns one string per cell row. Empty cells are spaces.
func (c *Canvas) Lines() []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		row := make([]rune, c.w)
		for x := 0; x < c.w; x++ {
			mask := c.m[y][x]
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
