package renderer_test

import (
	"testing"

	"github.com/dshills/jot/internal/engine/buffer"
	"github.com/dshills/jot/internal/renderer"
	"github.com/dshills/jot/internal/renderer/backend"
)

func render(t *testing.T, text string, point, width, height int, opts renderer.Options) *backend.NullBackend {
	t.Helper()
	nb := backend.NewNullBackend(width, height)
	if err := nb.Init(); err != nil {
		t.Fatal(err)
	}
	buf := buffer.New(text)
	buf.SetPoint(point)

	r := renderer.New(nb, opts)
	r.SetBuffer(buf)
	r.Redisplay()
	return nb
}

func TestRedisplay(t *testing.T) {
	tabs := renderer.Options{TabWidth: 4}

	tests := []struct {
		name   string
		text   string
		point  int
		width  int
		height int
		opts   renderer.Options
		rows   []string
		cx, cy int
	}{
		{"two lines", "ab\ncd", 4, 10, 3, renderer.DefaultOptions(), []string{"ab", "cd", ""}, 1, 1},
		{"empty", "", 0, 10, 2, renderer.DefaultOptions(), []string{"", ""}, 0, 0},
		{"banner", "ab\ncd", 4, 10, 3, renderer.Options{Banner: "hello"}, []string{"hello", "ab", "cd"}, 1, 2},
		{"banner truncated", "x", 0, 4, 2, renderer.Options{Banner: "too long"}, []string{"too", "x"}, 0, 1},
		{"tab", "\tx", 1, 10, 1, tabs, []string{"    x"}, 4, 0},
		{"tab stop", "ab\tc", 3, 10, 1, tabs, []string{"ab  c"}, 4, 0},
		{"wrap", "abcdef", 6, 4, 2, tabs, []string{"abcd", "ef"}, 2, 1},
		{"cursor at wrap point", "abcdef", 4, 4, 2, tabs, []string{"abcd", "ef"}, 0, 1},
		{"full row at end", "abcd", 4, 4, 2, tabs, []string{"abcd", ""}, 0, 1},
		{"wide runes", "日本", 2, 3, 2, tabs, []string{"日", "本"}, 2, 1},
		{"control char", "a\x01b", 3, 10, 1, tabs, []string{"a?b"}, 3, 0},
		{"raw byte", "caf\xe9x", 5, 10, 1, tabs, []string{"caf\ufffdx"}, 5, 0},
		{"scroll to cursor", "a\nb\nc\nd", 7, 5, 2, tabs, []string{"c", "d"}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nb := render(t, tt.text, tt.point, tt.width, tt.height, tt.opts)

			for y, want := range tt.rows {
				if got := nb.Row(y); got != want {
					t.Errorf("row %d = %q, want %q", y, got, want)
				}
			}
			x, y, visible := nb.CursorPosition()
			if x != tt.cx || y != tt.cy || !visible {
				t.Errorf("cursor = (%d, %d, %v), want (%d, %d, true)", x, y, visible, tt.cx, tt.cy)
			}
		})
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	nb := backend.NewNullBackend(5, 2)
	_ = nb.Init()
	buf := buffer.New("a\nb\nc\nd")
	buf.SetPoint(buf.Len())

	r := renderer.New(nb, renderer.DefaultOptions())
	r.SetBuffer(buf)
	r.Redisplay()
	if r.Top() != 2 {
		t.Fatalf("top = %d, want 2", r.Top())
	}

	// Moving up inside the visible rows does not scroll.
	buf.SetPoint(4)
	r.Redisplay()
	if r.Top() != 2 {
		t.Errorf("top = %d, want 2", r.Top())
	}

	buf.SetPoint(0)
	r.Redisplay()
	if r.Top() != 0 {
		t.Errorf("top = %d, want 0", r.Top())
	}
	if nb.Row(0) != "a" || nb.Row(1) != "b" {
		t.Errorf("rows = %q, %q", nb.Row(0), nb.Row(1))
	}
	if r.FrameCount() != 3 {
		t.Errorf("frames = %d, want 3", r.FrameCount())
	}
}

func TestRedisplayWithoutBuffer(t *testing.T) {
	nb := backend.NewNullBackend(5, 2)
	_ = nb.Init()
	r := renderer.New(nb, renderer.DefaultOptions())
	r.Redisplay()
	if nb.Shows != 0 {
		t.Error("drew without a buffer")
	}
}

func TestBell(t *testing.T) {
	nb := backend.NewNullBackend(5, 2)
	r := renderer.New(nb, renderer.DefaultOptions())
	r.Bell()
	if nb.Beeps != 1 {
		t.Errorf("beeps = %d, want 1", nb.Beeps)
	}
}
