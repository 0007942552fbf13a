// Package handler provides the handler interface and types for command dispatch.
package handler

import (
	"sort"

	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/input"
)

// Handler executes a named command.
type Handler interface {
	// Handle executes the action and returns a result.
	Handle(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the command.
	CanHandle(name string) bool
}

// Func is the signature shared by all command implementations.
type Func func(action input.Action, ctx *execctx.ExecutionContext) Result

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc struct {
	fn Func
}

// NewHandlerFunc creates a HandlerFunc from a function.
func NewHandlerFunc(fn Func) *HandlerFunc {
	return &HandlerFunc{fn: fn}
}

// Handle implements Handler.Handle.
func (f *HandlerFunc) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	if f.fn == nil {
		return Errorf("handler function is nil")
	}
	return f.fn(action, ctx)
}

// CanHandle implements Handler.CanHandle.
// HandlerFunc always returns true; the registry does the routing.
func (f *HandlerFunc) CanHandle(string) bool {
	return true
}

// Group is a set of related commands served by one handler, such as all
// cursor motions.
type Group interface {
	Handler

	// Name identifies the group in logs.
	Name() string

	// Commands lists the command names the group serves.
	Commands() []string
}

// BaseGroup provides a name → function table implementing Group.
type BaseGroup struct {
	name     string
	commands map[string]Func
}

// NewBaseGroup creates an empty command group.
func NewBaseGroup(name string) *BaseGroup {
	return &BaseGroup{
		name:     name,
		commands: make(map[string]Func),
	}
}

// Register adds a command to the group, replacing any previous one with
// the same name.
func (g *BaseGroup) Register(name string, fn Func) {
	g.commands[name] = fn
}

// Name implements Group.Name.
func (g *BaseGroup) Name() string {
	return g.name
}

// Commands implements Group.Commands. Names are sorted.
func (g *BaseGroup) Commands() []string {
	names := make([]string, 0, len(g.commands))
	for name := range g.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CanHandle implements Handler.CanHandle.
func (g *BaseGroup) CanHandle(name string) bool {
	_, ok := g.commands[name]
	return ok
}

// Handle implements Handler.Handle.
func (g *BaseGroup) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	fn, ok := g.commands[action.Name]
	if !ok {
		return Errorf("unknown command in group %s: %s", g.name, action.Name)
	}
	return fn(action, ctx)
}
