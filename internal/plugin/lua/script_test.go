package lua_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/jot/internal/dispatcher"
	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/dispatcher/handler"
	"github.com/dshills/jot/internal/dispatcher/handlers/editor"
	"github.com/dshills/jot/internal/engine/buffer"
	"github.com/dshills/jot/internal/input"
	"github.com/dshills/jot/internal/plugin/lua"
)

func load(t *testing.T, code string, opts ...lua.Option) *lua.Script {
	t.Helper()
	s, err := lua.LoadString("test", code, opts...)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func run(s *lua.Script, b *buffer.Buffer, name string, count int) handler.Result {
	action := input.NewAction(name)
	if count > 0 {
		action = action.WithCount(count)
	}
	return s.Handle(action, execctx.NewWithAction(action).WithEngine(b))
}

const commands = `
jot.command("shout", function(n)
  for i = 1, n do jot.insert("!") end
end)

jot.command("upcase-line", function()
  local s, e = jot.line_start(), jot.line_end()
  local word = jot.delete(s, e)
  jot.set_point(s)
  jot.insert(string.upper(word))
end)

jot.command("report", function()
  jot.insert(tostring(jot.point()) .. ":" .. #jot.text())
end)

jot.command("refuse", function()
  jot.bell()
end)

jot.command("explode", function()
  error("boom")
end)
`

func TestScriptCommands(t *testing.T) {
	s := load(t, commands)

	want := []string{"explode", "refuse", "report", "shout", "upcase-line"}
	if got := s.Commands(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Commands() = %v, want %v", got, want)
	}
	if s.Name() != lua.GroupName {
		t.Errorf("Name() = %q", s.Name())
	}

	tests := []struct {
		name    string
		command string
		count   int
		text    string
		point   int
		after   string
		bell    bool
		err     bool
	}{
		{"count passed", "shout", 3, "hi", 2, "hi!!!", false, false},
		{"default count", "shout", 0, "", 0, "!", false, false},
		{"line edit", "upcase-line", 0, "one\ntwo\nthree", 5, "one\nTWO\nthree", false, false},
		{"reads", "report", 0, "abc", 1, "a1:3bc", false, false},
		{"bell", "refuse", 0, "x", 0, "x", true, false},
		{"lua error", "explode", 0, "x", 0, "x", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buffer.New(tt.text)
			b.SetPoint(tt.point)

			result := run(s, b, tt.command, tt.count)
			if got := b.Text(); got != tt.after {
				t.Errorf("text = %q, want %q", got, tt.after)
			}
			if result.Bell != tt.bell {
				t.Errorf("bell = %v, want %v", result.Bell, tt.bell)
			}
			if result.IsError() != tt.err {
				t.Errorf("error = %v, want error %v", result.Error, tt.err)
			}
		})
	}
}

func TestScriptErrorKeepsSession(t *testing.T) {
	s := load(t, commands)
	b := buffer.New("")

	if r := run(s, b, "explode", 0); r.IsFatal() || !strings.Contains(r.Error.Error(), "boom") {
		t.Fatalf("explode = %+v", r)
	}
	if r := run(s, b, "shout", 0); !r.IsOK() || b.Text() != "!" {
		t.Errorf("command after error: %+v, text %q", r, b.Text())
	}
}

func TestScriptRejectsNames(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"suppressed", `jot.command("complete", function() end)`},
		{"empty", `jot.command("  ", function() end)`},
		{"twice", `jot.command("a", function() end); jot.command("a", function() end)`},
		{"not a function", `jot.command("a", 42)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if s, err := lua.LoadString("test", tt.code); err == nil {
				s.Close()
				t.Fatal("expected load error")
			}
		})
	}
}

func TestScriptSandbox(t *testing.T) {
	for _, global := range []string{"io", "os", "require", "dofile", "loadfile", "load", "debug", "package"} {
		t.Run(global, func(t *testing.T) {
			code := `assert(` + global + ` == nil, "` + global + ` is reachable")`
			if _, err := lua.LoadString("sandbox", code); err != nil {
				t.Errorf("%s: %v", global, err)
			}
		})
	}
}

func TestScriptTimeout(t *testing.T) {
	s := load(t, `jot.command("spin", function() while true do end end)`,
		lua.WithTimeout(50*time.Millisecond))

	b := buffer.New("")
	result := run(s, b, "spin", 0)
	if !errors.Is(result.Error, lua.ErrExecutionTimeout) {
		t.Fatalf("error = %v, want ErrExecutionTimeout", result.Error)
	}

	_, err := lua.LoadString("spin", `while true do end`, lua.WithTimeout(50*time.Millisecond))
	if !errors.Is(err, lua.ErrExecutionTimeout) {
		t.Errorf("load error = %v, want ErrExecutionTimeout", err)
	}
}

func TestScriptNoBufferAtLoad(t *testing.T) {
	_, err := lua.LoadString("early", `jot.insert("x")`)
	if err == nil || !strings.Contains(err.Error(), lua.ErrNoBuffer.Error()) {
		t.Errorf("err = %v, want %v", err, lua.ErrNoBuffer)
	}
}

func TestScriptLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.lua")
	if err := os.WriteFile(path, []byte(commands), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := lua.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer s.Close()
	if !s.CanHandle("shout") || s.CanHandle("missing") {
		t.Errorf("CanHandle wrong for %v", s.Commands())
	}

	if _, err := lua.Load(filepath.Join(t.TempDir(), "none.lua")); err == nil {
		t.Error("missing script loaded")
	}
}

func TestScriptInDispatcher(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	if err := d.RegisterGroup(editor.NewCombinedHandler()); err != nil {
		t.Fatal(err)
	}

	s := load(t, commands)
	if err := d.RegisterGroup(s); err != nil {
		t.Fatalf("RegisterGroup: %v", err)
	}

	b := buffer.New("a")
	b.SetPoint(1)
	d.SetEngine(b)
	if r := d.Dispatch(input.NewAction("shout").WithCount(2)); !r.IsOK() {
		t.Fatalf("Dispatch: %+v", r)
	}
	if b.Text() != "a!!" {
		t.Errorf("text = %q", b.Text())
	}

	clash := load(t, `jot.command("`+editor.CommandKillLine+`", function() end)`)
	if err := d.RegisterGroup(clash); !errors.Is(err, dispatcher.ErrDuplicateCommand) {
		t.Errorf("err = %v, want ErrDuplicateCommand", err)
	}
}
