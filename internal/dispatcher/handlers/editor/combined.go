package editor

import (
	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/dispatcher/handler"
	"github.com/dshills/jot/internal/input"
)

// group is the shape shared by the specialized editor handlers.
type group interface {
	CanHandle(name string) bool
	Commands() []string
	Handle(action input.Action, ctx *execctx.ExecutionContext) handler.Result
}

// CombinedHandler handles all editor commands by delegating to specialized handlers.
type CombinedHandler struct {
	groups []group
}

// NewCombinedHandler creates a handler that combines all editor handlers.
func NewCombinedHandler() *CombinedHandler {
	return &CombinedHandler{
		groups: []group{
			NewInsertHandler(),
			NewDeleteHandler(),
			NewKillHandler(),
			NewYankHandler(),
			NewAcceptHandler(),
		},
	}
}

// Name returns the group name.
func (h *CombinedHandler) Name() string {
	return "editor"
}

// Commands returns every editor command name.
func (h *CombinedHandler) Commands() []string {
	var out []string
	for _, g := range h.groups {
		out = append(out, g.Commands()...)
	}
	return out
}

// CanHandle returns true if this handler can process the command.
func (h *CombinedHandler) CanHandle(name string) bool {
	for _, g := range h.groups {
		if g.CanHandle(name) {
			return true
		}
	}
	return false
}

// Handle processes an editor command by delegating to the appropriate handler.
func (h *CombinedHandler) Handle(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	for _, g := range h.groups {
		if g.CanHandle(action.Name) {
			return g.Handle(action, ctx)
		}
	}
	return handler.Errorf("unknown editor command: %s", action.Name)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func clone(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
