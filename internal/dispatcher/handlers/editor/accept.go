package editor

import (
	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/dispatcher/handler"
	"github.com/dshills/jot/internal/input"
)

// Command names that end the session.
const (
	CommandAcceptLine     = "accept-line"      // C-n
	CommandAcceptOrDelete = "accept-or-delete" // C-d
	CommandInterrupt      = "interrupt"        // C-c
)

var acceptCommands = []string{
	CommandAcceptLine,
	CommandAcceptOrDelete,
	CommandInterrupt,
}

// AcceptHandler handles accepting the buffer.
type AcceptHandler struct{}

// NewAcceptHandler creates a new accept handler.
func NewAcceptHandler() *AcceptHandler {
	return &AcceptHandler{}
}

// Commands returns the accept command names.
func (h *AcceptHandler) Commands() []string {
	return clone(acceptCommands)
}

// CanHandle returns true if this handler can process the command.
func (h *AcceptHandler) CanHandle(name string) bool {
	return contains(acceptCommands, name)
}

// Handle processes an accept command. interrupt stands in for the
// terminal's interrupt character, which the raw-mode screen turns off.
func (h *AcceptHandler) Handle(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case CommandAcceptLine:
		return handler.Accepted()
	case CommandAcceptOrDelete:
		e := ctx.Engine
		if e.AtEnd() {
			return handler.Accepted()
		}
		p := e.Point()
		if _, err := e.Delete(p, p+1); err != nil {
			return handler.Error(err)
		}
		return handler.Success()
	case CommandInterrupt:
		return handler.Interrupted()
	default:
		return handler.Errorf("unknown accept command: %s", action.Name)
	}
}
