package renderer

import (
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/jot/internal/renderer/backend"
)

// BufferReader provides read access to buffer content.
type BufferReader interface {
	// Runes returns the whole buffer as display runes.
	Runes() []rune

	// Point returns the cursor offset in runes.
	Point() int
}

// Options configures the renderer.
type Options struct {
	// Banner is drawn on the first row when non-empty.
	Banner string

	// TabWidth is the distance between tab stops.
	TabWidth int
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		TabWidth: 8,
	}
}

// Renderer draws a buffer on a backend.
type Renderer struct {
	mu sync.Mutex

	opts    Options
	backend backend.Backend
	buf     BufferReader

	// top is the first layout row on screen.
	top int

	frames uint64
}

// New creates a new renderer with the given backend and options.
func New(b backend.Backend, opts Options) *Renderer {
	if opts.TabWidth <= 0 {
		opts.TabWidth = DefaultOptions().TabWidth
	}
	return &Renderer{
		opts:    opts,
		backend: b,
	}
}

// SetBuffer sets the buffer to draw.
func (r *Renderer) SetBuffer(buf BufferReader) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf = buf
	r.top = 0
}

// SetBanner changes the banner line.
func (r *Renderer) SetBanner(banner string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.opts.Banner = banner
}

// Redisplay redraws the whole screen from the buffer.
func (r *Renderer) Redisplay() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.buf == nil {
		return
	}

	width, height := r.backend.Size()
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.Clear()

	row := 0
	if r.opts.Banner != "" && height > 1 {
		r.drawBanner(width)
		row = 1
	}
	avail := height - row

	f := layoutText(r.buf.Runes(), r.buf.Point(), width, r.opts.TabWidth)
	r.scrollTo(f.cursorY, avail)

	for i := 0; i < avail && r.top+i < len(f.rows); i++ {
		x := 0
		for _, c := range f.rows[r.top+i] {
			r.backend.SetCell(x, row+i, c.r, backend.StyleNormal)
			x += c.w
		}
	}

	r.backend.ShowCursor(f.cursorX, row+f.cursorY-r.top)
	r.backend.Show()
	r.frames++
}

// drawBanner draws the banner on row 0, truncated to the screen width.
func (r *Renderer) drawBanner(width int) {
	x := 0
	for _, ch := range runewidth.Truncate(r.opts.Banner, width, "") {
		c, ok := displayCell(ch)
		if !ok {
			continue
		}
		r.backend.SetCell(x, 0, c.r, backend.StyleBanner)
		x += c.w
	}
}

// scrollTo moves the view so that layout row y is one of the avail rows
// on screen.
func (r *Renderer) scrollTo(y, avail int) {
	switch {
	case y < r.top:
		r.top = y
	case y >= r.top+avail:
		r.top = y - avail + 1
	}
}

// Bell rings the terminal bell.
func (r *Renderer) Bell() {
	r.backend.Beep()
}

// Top returns the first buffer layout row on screen.
func (r *Renderer) Top() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.top
}

// FrameCount returns the number of redisplays drawn.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}
