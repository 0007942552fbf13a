package dispatcher_test

import (
	"errors"
	"testing"

	"github.com/dshills/jot/internal/dispatcher"
	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/dispatcher/handler"
	"github.com/dshills/jot/internal/engine/buffer"
	"github.com/dshills/jot/internal/input"
	"github.com/dshills/jot/internal/input/keymap"
)

type fakeDisplay struct {
	redraws int
	bells   int
}

func (f *fakeDisplay) Redisplay() { f.redraws++ }
func (f *fakeDisplay) Bell()      { f.bells++ }

type fakeModes struct {
	scope keymap.Scope
}

func (f *fakeModes) Scope() keymap.Scope             { return f.scope }
func (f *fakeModes) EditingMode() keymap.EditingMode { return keymap.EditingVi }
func (f *fakeModes) SetScope(s keymap.Scope) bool {
	f.scope = s
	return true
}

func TestNewWithDefaults(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	if d.Registry() == nil {
		t.Error("expected non-nil registry")
	}
	if d.Metrics() != nil {
		t.Error("expected nil metrics by default")
	}
	if !d.Config().RecoverFromPanic {
		t.Error("expected panic recovery by default")
	}
}

func TestDispatchNoHandler(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	display := &fakeDisplay{}
	d.SetDisplay(display)

	result := d.Dispatch(input.NewAction("unknown-command"))

	if !errors.Is(result.Error, dispatcher.ErrNoHandler) {
		t.Errorf("expected ErrNoHandler, got %v", result.Error)
	}
	if display.bells != 1 {
		t.Errorf("bells = %d, want 1", display.bells)
	}
}

func TestDispatchEmptyName(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	if r := d.Dispatch(input.Action{}); !errors.Is(r.Error, dispatcher.ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction, got %v", r.Error)
	}
}

func TestDispatchBuildsContext(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMaxRepeatCount(10))
	buf := buffer.New("abc")
	d.SetEngine(buf)
	modes := &fakeModes{scope: keymap.ScopeNormal}
	d.SetModeManager(modes)

	var got *execctx.ExecutionContext
	if err := d.RegisterHandlerFunc("probe", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		got = ctx
		return handler.Success()
	}); err != nil {
		t.Fatal(err)
	}

	d.Dispatch(input.NewAction("probe").WithCount(500))

	if got == nil {
		t.Fatal("handler not called")
	}
	if got.Engine != buf {
		t.Error("context engine not set")
	}
	if got.Scope() != keymap.ScopeNormal {
		t.Errorf("context scope = %s", got.Scope())
	}
	if got.GetCount() != 10 || !got.Explicit {
		t.Errorf("count = %d explicit = %v, want 10/true", got.GetCount(), got.Explicit)
	}
	if got.Context == nil {
		t.Error("context.Context not set")
	}
}

func TestProcessResult(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	display := &fakeDisplay{}
	modes := &fakeModes{scope: keymap.ScopeNormal}
	d.SetDisplay(display)
	d.SetModeManager(modes)

	mustRegister(t, d, "open", handler.Success().WithModeChange(keymap.ScopeInsert))
	mustRegister(t, d, "stuck", handler.Bell())

	d.Dispatch(input.NewAction("open"))
	if modes.scope != keymap.ScopeInsert {
		t.Errorf("scope = %s, want insert", modes.scope)
	}
	if display.redraws != 1 || display.bells != 0 {
		t.Errorf("after open: redraws=%d bells=%d", display.redraws, display.bells)
	}

	d.Dispatch(input.NewAction("stuck"))
	if display.redraws != 1 || display.bells != 1 {
		t.Errorf("after stuck: redraws=%d bells=%d", display.redraws, display.bells)
	}
}

func TestPanicRecovery(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	if err := d.RegisterHandlerFunc("boom", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		panic("kaboom")
	}); err != nil {
		t.Fatal(err)
	}

	result := d.Dispatch(input.NewAction("boom"))

	if !errors.Is(result.Error, dispatcher.ErrPanic) {
		t.Errorf("expected ErrPanic, got %v", result.Error)
	}
	if d.Metrics().TotalPanics() != 1 {
		t.Errorf("TotalPanics = %d, want 1", d.Metrics().TotalPanics())
	}
}

func TestHooks(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	mustRegister(t, d, "guarded", handler.Success())

	var seen []string
	d.RegisterPreHook(dispatcher.PreDispatchFunc(func(action *input.Action, ctx *execctx.ExecutionContext) bool {
		seen = append(seen, "pre:"+action.Name)
		return action.Name != "guarded"
	}))
	d.RegisterPostHook(dispatcher.PostDispatchFunc(func(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
		seen = append(seen, "post:"+action.Name)
	}))

	r := d.Dispatch(input.NewAction("guarded"))
	if !errors.Is(r.Error, dispatcher.ErrActionCancelled) {
		t.Errorf("expected ErrActionCancelled, got %v", r.Error)
	}

	mustRegister(t, d, "open", handler.Success())
	d.Dispatch(input.NewAction("open"))

	want := []string{"pre:guarded", "pre:open", "post:open"}
	if len(seen) != len(want) {
		t.Fatalf("hooks = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("hooks[%d] = %s, want %s", i, seen[i], want[i])
		}
	}
}

func TestMetrics(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	mustRegister(t, d, "ok", handler.Success())
	mustRegister(t, d, "bad", handler.Errorf("nope"))

	d.Dispatch(input.NewAction("ok"))
	d.Dispatch(input.NewAction("ok"))
	d.Dispatch(input.NewAction("bad"))

	m := d.Metrics()
	if m.TotalDispatches() != 3 || m.TotalErrors() != 1 {
		t.Errorf("dispatches=%d errors=%d", m.TotalDispatches(), m.TotalErrors())
	}
	top := m.TopCommands(1)
	if len(top) != 1 || top[0].Name != "ok" || top[0].DispatchCount != 2 {
		t.Errorf("TopCommands(1) = %+v", top)
	}
	if s := m.CommandStats("bad"); s == nil || s.ErrorCount != 1 {
		t.Errorf("CommandStats(bad) = %+v", s)
	}

	m.Reset()
	if m.TotalDispatches() != 0 || m.CommandStats("ok") != nil {
		t.Error("Reset did not clear metrics")
	}
}

func mustRegister(t *testing.T, d *dispatcher.Dispatcher, name string, r handler.Result) {
	t.Helper()
	err := d.RegisterHandlerFunc(name, func(input.Action, *execctx.ExecutionContext) handler.Result {
		return r
	})
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
}
