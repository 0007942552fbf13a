package editor

import (
	"strings"

	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/dispatcher/handler"
	"github.com/dshills/jot/internal/input"
	"github.com/dshills/jot/internal/input/keymap"
)

// Command names for insertion.
const (
	CommandSelfInsert      = input.CommandSelfInsert
	CommandInsertNewline   = "insert-newline"
	CommandInsertLineBelow = "vi-insert-line-below" // o
	CommandInsertLineAbove = "vi-insert-line-above" // O
)

var insertCommands = []string{
	CommandSelfInsert,
	CommandInsertNewline,
	CommandInsertLineBelow,
	CommandInsertLineAbove,
}

// InsertHandler handles text insertion.
type InsertHandler struct{}

// NewInsertHandler creates a new insert handler.
func NewInsertHandler() *InsertHandler {
	return &InsertHandler{}
}

// Commands returns the insertion command names.
func (h *InsertHandler) Commands() []string {
	return clone(insertCommands)
}

// CanHandle returns true if this handler can process the command.
func (h *InsertHandler) CanHandle(name string) bool {
	return contains(insertCommands, name)
}

// Handle processes an insertion command.
func (h *InsertHandler) Handle(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	count := ctx.GetCount()

	switch action.Name {
	case CommandSelfInsert:
		return h.selfInsert(ctx, action.Text, count)
	case CommandInsertNewline:
		ctx.Engine.Insert(strings.Repeat("\n", count))
		return handler.Success()
	case CommandInsertLineBelow:
		return h.openBelow(ctx)
	case CommandInsertLineAbove:
		return h.openAbove(ctx)
	default:
		return handler.Errorf("unknown insert command: %s", action.Name)
	}
}

// selfInsert inserts the typed text count times.
func (h *InsertHandler) selfInsert(ctx *execctx.ExecutionContext, text string, count int) handler.Result {
	if text == "" {
		return handler.Bell()
	}
	ctx.Engine.Insert(strings.Repeat(text, count))
	return handler.Success()
}

// openBelow opens an empty line after the current one and enters insert scope.
func (h *InsertHandler) openBelow(ctx *execctx.ExecutionContext) handler.Result {
	e := ctx.Engine
	end := e.LineEnd(e.Point())
	e.InsertAt(end, "\n")
	e.SetPoint(end + 1)
	return handler.Success().WithModeChange(keymap.ScopeInsert)
}

// openAbove opens an empty line before the current one and enters insert scope.
func (h *InsertHandler) openAbove(ctx *execctx.ExecutionContext) handler.Result {
	e := ctx.Engine
	start := e.LineStart(e.Point())
	e.InsertAt(start, "\n")
	e.SetPoint(start)
	return handler.Success().WithModeChange(keymap.ScopeInsert)
}
