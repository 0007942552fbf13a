package editor

import (
	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/dispatcher/handler"
	"github.com/dshills/jot/internal/input"
)

// Command names for the kill family.
const (
	CommandKillLine          = "kill-line"                // C-k
	CommandKillBackwardLine  = "kill-backward-line"       // C-u
	CommandKillWholeLine     = "kill-whole-line"          // unbound by default
	CommandDeleteLines       = "vi-delete-lines"          // dd
	CommandDeleteToEndOfLine = "vi-delete-to-end-of-line" // D
)

var killCommands = []string{
	CommandKillLine,
	CommandKillBackwardLine,
	CommandKillWholeLine,
	CommandDeleteLines,
	CommandDeleteToEndOfLine,
}

// KillHandler handles deletions that store the removed text in the kill ring.
type KillHandler struct{}

// NewKillHandler creates a new kill handler.
func NewKillHandler() *KillHandler {
	return &KillHandler{}
}

// Commands returns the kill command names.
func (h *KillHandler) Commands() []string {
	return clone(killCommands)
}

// CanHandle returns true if this handler can process the command.
func (h *KillHandler) CanHandle(name string) bool {
	return contains(killCommands, name)
}

// Handle processes a kill command.
func (h *KillHandler) Handle(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	e := ctx.Engine
	p := e.Point()
	count := ctx.GetCount()

	switch action.Name {
	case CommandKillLine:
		return kill(e, p, e.LineEnd(p))
	case CommandKillBackwardLine:
		return kill(e, e.LineStart(p), p)
	case CommandKillWholeLine:
		return h.killWholeLine(e)
	case CommandDeleteLines:
		return h.deleteLines(e, count)
	case CommandDeleteToEndOfLine:
		return h.deleteToEndOfLine(e, count)
	default:
		return handler.Errorf("unknown kill command: %s", action.Name)
	}
}

// killWholeLine kills the point's line with its newline. On the last line
// there is no newline to take.
func (h *KillHandler) killWholeLine(e execctx.EngineInterface) handler.Result {
	p := e.Point()
	start, end := e.LineStart(p), e.LineEnd(p)
	if end < e.Len() {
		end++
	}
	return kill(e, start, end)
}

// deleteLines kills count lines from the start of the point's line, each
// with its newline except the buffer's final line. The point lands on the
// first non-blank of the line that moved up.
func (h *KillHandler) deleteLines(e execctx.EngineInterface, count int) handler.Result {
	start := e.LineStart(e.Point())
	end := start
	for i := 0; i < count; i++ {
		end = e.LineEnd(end)
		if end >= e.Len() {
			break
		}
		end++
	}

	result := kill(e, start, end)
	e.SetPoint(e.FirstNonBlank(e.LineStart(e.Point())))
	return result
}

// deleteToEndOfLine kills from the point to the end of its line and then
// count-1 further lines, newlines between them included. The final
// segment's newline is not killed, so the content after it reflows up to
// become the line right after the point's.
func (h *KillHandler) deleteToEndOfLine(e execctx.EngineInterface, count int) handler.Result {
	start := e.Point()
	end := e.LineEnd(start)
	for i := 1; i < count && end < e.Len(); i++ {
		end = e.LineEnd(end + 1)
	}
	return kill(e, start, end)
}

// kill removes [start, end) into the kill ring. An empty range is a no-op.
func kill(e execctx.EngineInterface, start, end int) handler.Result {
	if start >= end {
		return handler.NoOp().WithRedraw()
	}
	if _, err := e.Kill(start, end); err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}
