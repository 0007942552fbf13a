package handler_test

import (
	"errors"
	"testing"

	"github.com/dshills/jot/internal/dispatcher/handler"
	"github.com/dshills/jot/internal/input/keymap"
)

func TestResultStatusString(t *testing.T) {
	tests := []struct {
		status handler.ResultStatus
		want   string
	}{
		{handler.StatusOK, "ok"},
		{handler.StatusNoOp, "no-op"},
		{handler.StatusError, "error"},
		{handler.StatusFatal, "fatal"},
		{handler.ResultStatus(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("%d.String() = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestResultBuilders(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name   string
		result handler.Result
		status handler.ResultStatus
		redraw bool
		bell   bool
		accept bool
	}{
		{"success", handler.Success(), handler.StatusOK, true, false, false},
		{"noop", handler.NoOp(), handler.StatusNoOp, false, false, false},
		{"bell", handler.Bell(), handler.StatusNoOp, false, true, false},
		{"accepted", handler.Accepted(), handler.StatusOK, false, false, true},
		{"error", handler.Error(boom), handler.StatusError, false, true, false},
		{"fatal", handler.Fatal(boom), handler.StatusFatal, false, false, false},
		{"success with bell", handler.Success().WithBell(), handler.StatusOK, true, true, false},
		{"noop with redraw", handler.NoOp().WithRedraw(), handler.StatusNoOp, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.result
			if r.Status != tt.status || r.Redraw != tt.redraw || r.Bell != tt.bell || r.Accept != tt.accept {
				t.Errorf("got status=%v redraw=%v bell=%v accept=%v", r.Status, r.Redraw, r.Bell, r.Accept)
			}
		})
	}
}

func TestResultInterrupted(t *testing.T) {
	r := handler.Interrupted()
	if !r.Interrupt || r.Accept || r.IsError() || r.Redraw {
		t.Errorf("Interrupted: %+v", r)
	}
	if handler.Accepted().Interrupt {
		t.Error("Accepted should not interrupt")
	}
}

func TestResultErrors(t *testing.T) {
	r := handler.Errorf("bad %d", 3)
	if !r.IsError() || r.IsFatal() || r.Error.Error() != "bad 3" {
		t.Errorf("Errorf: %+v", r)
	}

	boom := errors.New("boom")
	r = handler.Fatal(boom)
	if !r.IsError() || !r.IsFatal() || !errors.Is(r.Error, boom) {
		t.Errorf("Fatal: %+v", r)
	}
}

func TestResultModifiers(t *testing.T) {
	r := handler.Success().
		WithMessage("opened").
		WithModeChange(keymap.ScopeInsert).
		WithData("line", "x")

	if r.Message != "opened" {
		t.Errorf("Message = %q", r.Message)
	}
	if r.ModeChange != keymap.ScopeInsert {
		t.Errorf("ModeChange = %q", r.ModeChange)
	}
	if r.GetDataString("line") != "x" {
		t.Errorf("GetDataString(line) = %q", r.GetDataString("line"))
	}
	if r.GetDataString("missing") != "" {
		t.Error("GetDataString(missing) should be empty")
	}
}

func TestResultImmutability(t *testing.T) {
	base := handler.NoOp()
	_ = base.WithBell()
	if base.Bell {
		t.Error("WithBell modified the receiver")
	}
}
