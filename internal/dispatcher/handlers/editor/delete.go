package editor

import (
	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/dispatcher/handler"
	"github.com/dshills/jot/internal/engine/buffer"
	"github.com/dshills/jot/internal/input"
)

// Command names for deletion.
const (
	CommandDeleteChar         = "delete-char"          // x, Delete
	CommandBackwardDeleteChar = "backward-delete-char" // Backspace
	CommandJoinLines          = "vi-join-lines"        // J
)

var deleteCommands = []string{
	CommandDeleteChar,
	CommandBackwardDeleteChar,
	CommandJoinLines,
}

// DeleteHandler handles deletions that do not feed the kill ring.
type DeleteHandler struct{}

// NewDeleteHandler creates a new delete handler.
func NewDeleteHandler() *DeleteHandler {
	return &DeleteHandler{}
}

// Commands returns the deletion command names.
func (h *DeleteHandler) Commands() []string {
	return clone(deleteCommands)
}

// CanHandle returns true if this handler can process the command.
func (h *DeleteHandler) CanHandle(name string) bool {
	return contains(deleteCommands, name)
}

// Handle processes a deletion command.
func (h *DeleteHandler) Handle(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	count := ctx.GetCount()

	switch action.Name {
	case CommandDeleteChar:
		return h.deleteChar(ctx, count)
	case CommandBackwardDeleteChar:
		return h.backwardDeleteChar(ctx, count)
	case CommandJoinLines:
		return h.joinLines(ctx, count)
	default:
		return handler.Errorf("unknown delete command: %s", action.Name)
	}
}

// deleteChar deletes count runes under the point.
func (h *DeleteHandler) deleteChar(ctx *execctx.ExecutionContext, count int) handler.Result {
	e := ctx.Engine
	if e.AtEnd() {
		return handler.Bell()
	}
	start := e.Point()
	if _, err := e.Delete(start, min(start+count, e.Len())); err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}

// backwardDeleteChar deletes count runes before the point.
func (h *DeleteHandler) backwardDeleteChar(ctx *execctx.ExecutionContext, count int) handler.Result {
	e := ctx.Engine
	end := e.Point()
	if end == 0 {
		return handler.Bell()
	}
	if _, err := e.Delete(max(end-count, 0), end); err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}

// joinLines joins the point's line with the following one, count times.
// Leading blanks of the joined line are dropped and a single space goes in
// between unless either side of the seam is empty or blank. Punctuation
// does not suppress the space. The point keeps its original offset.
func (h *DeleteHandler) joinLines(ctx *execctx.ExecutionContext, count int) handler.Result {
	e := ctx.Engine
	origin := e.Point()

	for i := 0; i < count; i++ {
		seam := e.LineEnd(origin)
		if seam >= e.Len() {
			e.SetPoint(origin)
			if i == 0 {
				return handler.Bell()
			}
			return handler.Success().WithBell()
		}

		skip := seam + 1
		for r, ok := e.RuneAt(skip); ok && buffer.IsBlank(r); r, ok = e.RuneAt(skip) {
			skip++
		}
		if _, err := e.Delete(seam, skip); err != nil {
			return handler.Error(err)
		}

		if needsJoinSpace(e, seam) {
			e.InsertAt(seam, " ")
		}
	}

	e.SetPoint(origin)
	return handler.Success()
}

// needsJoinSpace reports whether both sides of a join seam hold text.
func needsJoinSpace(e execctx.EngineInterface, seam int) bool {
	left, ok := e.RuneAt(seam - 1)
	if !ok || left == '\n' || buffer.IsBlank(left) {
		return false
	}
	right, ok := e.RuneAt(seam)
	if !ok || right == '\n' || buffer.IsBlank(right) {
		return false
	}
	return true
}
