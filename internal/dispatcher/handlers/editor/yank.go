package editor

import (
	"strings"

	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/dispatcher/handler"
	"github.com/dshills/jot/internal/input"
)

// CommandYank re-inserts the most recent kill at the point.
const CommandYank = "yank" // C-y

var yankCommands = []string{CommandYank}

// YankHandler handles yanking from the kill ring.
type YankHandler struct{}

// NewYankHandler creates a new yank handler.
func NewYankHandler() *YankHandler {
	return &YankHandler{}
}

// Commands returns the yank command names.
func (h *YankHandler) Commands() []string {
	return clone(yankCommands)
}

// CanHandle returns true if this handler can process the command.
func (h *YankHandler) CanHandle(name string) bool {
	return contains(yankCommands, name)
}

// Handle inserts the latest kill count times. An empty kill ring rings the bell.
func (h *YankHandler) Handle(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	if action.Name != CommandYank {
		return handler.Errorf("unknown yank command: %s", action.Name)
	}

	text, ok := ctx.Engine.Kills().Latest()
	if !ok {
		return handler.Bell()
	}
	ctx.Engine.Insert(strings.Repeat(text, ctx.GetCount()))
	return handler.Success()
}
