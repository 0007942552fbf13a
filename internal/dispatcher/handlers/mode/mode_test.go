package mode_test

import (
	"strings"
	"testing"

	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/dispatcher/handlers/mode"
	"github.com/dshills/jot/internal/engine/buffer"
	"github.com/dshills/jot/internal/input"
	"github.com/dshills/jot/internal/input/keymap"
)

func TestModeCommands(t *testing.T) {
	tests := []struct {
		command string
		before  string
		after   string
		scope   keymap.Scope
	}{
		{mode.CommandMovementMode, "ab|c", "a|bc", keymap.ScopeNormal},
		{mode.CommandMovementMode, "ab\n|c", "ab\n|c", keymap.ScopeNormal},
		{mode.CommandInsertionMode, "a|bc", "a|bc", keymap.ScopeInsert},
		{mode.CommandAppendMode, "a|bc", "ab|c", keymap.ScopeInsert},
		{mode.CommandAppendMode, "abc|\nd", "abc|\nd", keymap.ScopeInsert},
		{mode.CommandInsertBeginning, "  ab|c", "  |abc", keymap.ScopeInsert},
		{mode.CommandAppendEOL, "a|bc\nd", "abc|\nd", keymap.ScopeInsert},
	}

	h := mode.NewHandler()
	for _, tt := range tests {
		point := strings.IndexRune(tt.before, '|')
		b := buffer.New(strings.Replace(tt.before, "|", "", 1))
		b.SetPoint(point)

		action := input.NewAction(tt.command)
		r := h.Handle(action, execctx.NewWithAction(action).WithEngine(b))

		if got := b.String(); got != tt.after {
			t.Errorf("%s on %q = %q, want %q", tt.command, tt.before, got, tt.after)
		}
		if r.ModeChange != tt.scope {
			t.Errorf("%s: ModeChange = %q, want %q", tt.command, r.ModeChange, tt.scope)
		}
	}
}

func TestModeUnknown(t *testing.T) {
	h := mode.NewHandler()
	if h.CanHandle("move-up") {
		t.Error("mode handler claims move-up")
	}
	r := h.Handle(input.NewAction("move-up"), execctx.New().WithEngine(buffer.New("")))
	if !r.IsError() {
		t.Error("expected error for unknown command")
	}
}
