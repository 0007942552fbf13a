package cursor

import (
	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/dispatcher/handler"
	"github.com/dshills/jot/internal/input"
)

// Command names for cursor motions.
const (
	CommandBeginningOfLine       = "beginning-of-line"
	CommandEndOfLine             = "end-of-line"
	CommandMoveUp                = "move-up"
	CommandMoveDown              = "move-down"
	CommandGotoLine              = "goto-line"
	CommandGotoFirstLine         = "goto-first-line"
	CommandFirstNonblankNextLine = "first-nonblank-next-line"
	CommandForwardChar           = "forward-char"
	CommandBackwardChar          = "backward-char"
	CommandBeginningOfBuffer     = "beginning-of-buffer"
	CommandEndOfBuffer           = "end-of-buffer"
)

var commands = []string{
	CommandBeginningOfLine,
	CommandEndOfLine,
	CommandMoveUp,
	CommandMoveDown,
	CommandGotoLine,
	CommandGotoFirstLine,
	CommandFirstNonblankNextLine,
	CommandForwardChar,
	CommandBackwardChar,
	CommandBeginningOfBuffer,
	CommandEndOfBuffer,
}

// Handler implements the cursor motion commands.
type Handler struct{}

// NewHandler creates a new cursor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Name returns the group name.
func (h *Handler) Name() string {
	return "cursor"
}

// Commands returns the command names served by this handler.
func (h *Handler) Commands() []string {
	out := make([]string, len(commands))
	copy(out, commands)
	return out
}

// CanHandle returns true if this handler can process the command.
func (h *Handler) CanHandle(name string) bool {
	for _, c := range commands {
		if c == name {
			return true
		}
	}
	return false
}

// Handle processes a cursor command.
func (h *Handler) Handle(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	count := ctx.GetCount()

	switch action.Name {
	case CommandBeginningOfLine:
		return h.beginningOfLine(ctx)
	case CommandEndOfLine:
		return h.endOfLine(ctx)
	case CommandMoveUp:
		return repeat(ctx, count, stepUp)
	case CommandMoveDown:
		return repeat(ctx, count, stepDown)
	case CommandGotoLine:
		return h.gotoLine(ctx, ctx.Engine.LineCount())
	case CommandGotoFirstLine:
		return h.gotoLine(ctx, 1)
	case CommandFirstNonblankNextLine:
		return repeat(ctx, count, stepNextLineNonblank)
	case CommandForwardChar:
		return h.forwardChar(ctx, count)
	case CommandBackwardChar:
		return h.backwardChar(ctx, count)
	case CommandBeginningOfBuffer:
		ctx.Engine.SetPoint(0)
		return handler.Success()
	case CommandEndOfBuffer:
		ctx.Engine.SetPoint(ctx.Engine.Len())
		return handler.Success()
	default:
		return handler.Errorf("unknown cursor command: %s", action.Name)
	}
}

// beginningOfLine moves point to the start of its line. The count is not
// honored.
func (h *Handler) beginningOfLine(ctx *execctx.ExecutionContext) handler.Result {
	e := ctx.Engine
	e.SetPoint(e.LineStart(e.Point()))
	return handler.Success()
}

// endOfLine moves point onto the newline ending its line, or the buffer end.
func (h *Handler) endOfLine(ctx *execctx.ExecutionContext) handler.Result {
	e := ctx.Engine
	e.SetPoint(e.LineEnd(e.Point()))
	return handler.Success()
}

// gotoLine lands on the first non-blank of a line. An explicit count names
// the 1-indexed line; otherwise fallback is used. Out-of-range lines clamp.
func (h *Handler) gotoLine(ctx *execctx.ExecutionContext, fallback int) handler.Result {
	n := fallback
	if ctx.Explicit {
		n = ctx.GetCount()
	}
	e := ctx.Engine
	e.SetPoint(e.FirstNonBlank(e.LineOffset(n)))
	return handler.Success()
}

func (h *Handler) forwardChar(ctx *execctx.ExecutionContext, count int) handler.Result {
	e := ctx.Engine
	if e.AtEnd() {
		return handler.Bell()
	}
	target := e.Point() + count
	e.SetPoint(target)
	if target > e.Len() {
		return handler.Success().WithBell()
	}
	return handler.Success()
}

func (h *Handler) backwardChar(ctx *execctx.ExecutionContext, count int) handler.Result {
	e := ctx.Engine
	if e.Point() == 0 {
		return handler.Bell()
	}
	target := e.Point() - count
	e.SetPoint(target)
	if target < 0 {
		return handler.Success().WithBell()
	}
	return handler.Success()
}

// step moves point by one unit and reports false when it cannot.
type step func(e execctx.EngineInterface) bool

// repeat runs step count times. A failed step rings the bell and abandons
// the remaining repeats; earlier steps stay.
func repeat(ctx *execctx.ExecutionContext, count int, s step) handler.Result {
	for i := 0; i < count; i++ {
		if s(ctx.Engine) {
			continue
		}
		if i == 0 {
			return handler.Bell()
		}
		return handler.Success().WithBell()
	}
	return handler.Success()
}

// stepUp moves to the previous line, keeping the column when that line is
// long enough and landing on its end otherwise.
func stepUp(e execctx.EngineInterface) bool {
	p := e.Point()
	start := e.LineStart(p)
	if start == 0 {
		return false
	}
	column := p - start
	prevEnd := start - 1
	prevStart := e.LineStart(prevEnd)
	e.SetPoint(prevStart + min(column, prevEnd-prevStart))
	return true
}

// stepDown moves to the next line the same way stepUp does.
func stepDown(e execctx.EngineInterface) bool {
	p := e.Point()
	if !e.HasNextLine(p) {
		return false
	}
	column := p - e.LineStart(p)
	nextStart := e.LineEnd(p) + 1
	nextEnd := e.LineEnd(nextStart)
	e.SetPoint(nextStart + min(column, nextEnd-nextStart))
	return true
}

// stepNextLineNonblank moves to the first non-blank of the next line.
func stepNextLineNonblank(e execctx.EngineInterface) bool {
	p := e.Point()
	if !e.HasNextLine(p) {
		return false
	}
	e.SetPoint(e.FirstNonBlank(e.LineEnd(p) + 1))
	return true
}
