package handler_test

import (
	"reflect"
	"testing"

	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/dispatcher/handler"
	"github.com/dshills/jot/internal/input"
)

func TestHandlerFunc(t *testing.T) {
	called := false
	fn := handler.NewHandlerFunc(func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})

	result := fn.Handle(input.Action{Name: "test"}, execctx.New())

	if !called {
		t.Error("expected handler func to be called")
	}
	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}
	if !fn.CanHandle("anything") {
		t.Error("expected CanHandle to return true")
	}
}

func TestHandlerFuncNil(t *testing.T) {
	fn := &handler.HandlerFunc{}
	result := fn.Handle(input.Action{Name: "test"}, execctx.New())

	if result.Status != handler.StatusError {
		t.Errorf("expected StatusError for nil func, got %v", result.Status)
	}
}

func TestBaseGroup(t *testing.T) {
	g := handler.NewBaseGroup("motion")
	var got string
	for _, name := range []string{"move-up", "move-down"} {
		g.Register(name, func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
			got = action.Name
			return handler.Success()
		})
	}

	if g.Name() != "motion" {
		t.Errorf("Name() = %s", g.Name())
	}
	if want := []string{"move-down", "move-up"}; !reflect.DeepEqual(g.Commands(), want) {
		t.Errorf("Commands() = %v, want %v", g.Commands(), want)
	}
	if !g.CanHandle("move-up") || g.CanHandle("goto-line") {
		t.Error("CanHandle reported wrong membership")
	}

	if r := g.Handle(input.NewAction("move-down"), execctx.New()); !r.IsOK() || got != "move-down" {
		t.Errorf("Handle(move-down) = %v, ran %q", r.Status, got)
	}
	if r := g.Handle(input.NewAction("goto-line"), execctx.New()); !r.IsError() {
		t.Errorf("Handle(goto-line) status = %v, want error", r.Status)
	}
}
