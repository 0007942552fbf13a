// Package backend provides the terminal backend for the renderer.
package backend

import "github.com/dshills/jot/internal/input/key"

// Style selects how a cell is drawn.
type Style int

const (
	// StyleNormal is the terminal's default style.
	StyleNormal Style = iota
	// StyleBanner is used for the banner line.
	StyleBanner
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int
}

// Backend defines the interface for the display surface.
type Backend interface {
	// Init takes over the terminal. Must be called before any other method.
	Init() error

	// Shutdown gives the terminal back.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// Clear blanks the whole screen.
	Clear()

	// SetCell sets a single cell. Positions outside the screen are ignored.
	SetCell(x, y int, r rune, style Style)

	// Show flushes pending changes to the display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent blocks until the next event.
	PollEvent() Event

	// Interrupt wakes PollEvent with an EventInterrupt. Safe to call from
	// any goroutine.
	Interrupt()

	// Beep rings the terminal bell.
	Beep()

	// Suspend gives the terminal back temporarily.
	Suspend() error

	// Resume takes the terminal over again after Suspend.
	Resume() error
}

// NullBackend is an in-memory backend for tests.
type NullBackend struct {
	width, height int
	cells         [][]rune
	cursorX       int
	cursorY       int
	cursorVisible bool
	events        chan Event

	// Beeps counts Beep calls.
	Beeps int
	// Suspended is true between Suspend and Resume.
	Suspended bool
	// Shows counts Show calls.
	Shows int
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.Clear()
	return nil
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) Clear() {
	b.cells = make([][]rune, b.height)
	for y := range b.cells {
		b.cells[y] = make([]rune, b.width)
		for x := range b.cells[y] {
			b.cells[y][x] = ' '
		}
	}
}

func (b *NullBackend) SetCell(x, y int, r rune, _ Style) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = r
	}
}

func (b *NullBackend) Show() { b.Shows++ }

func (b *NullBackend) ShowCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.cursorVisible = false
}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

// PostEvent queues an event for PollEvent. Events are dropped when the
// queue is full.
func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
	}
}

// PostKey queues a key event.
func (b *NullBackend) PostKey(ev key.Event) {
	b.PostEvent(Event{Type: EventKey, Key: ev})
}

func (b *NullBackend) Interrupt() {
	b.PostEvent(Event{Type: EventInterrupt})
}

func (b *NullBackend) Beep() { b.Beeps++ }

func (b *NullBackend) Suspend() error {
	b.Suspended = true
	return nil
}

func (b *NullBackend) Resume() error {
	b.Suspended = false
	return nil
}

// Row returns the text of screen row y with trailing blanks removed.
func (b *NullBackend) Row(y int) string {
	if y < 0 || y >= len(b.cells) {
		return ""
	}
	row := b.cells[y]
	end := len(row)
	for end > 0 && row[end-1] == ' ' {
		end--
	}
	return string(row[:end])
}

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}
