package integration

import (
	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/dispatcher/handler"
	"github.com/dshills/jot/internal/input"
)

// CommandExternalEditor edits the whole buffer in $JOT_EDITOR.
const CommandExternalEditor = "external-editor" // C-x C-e, v

// Handler runs the external editor hand-off.
type Handler struct{}

// NewHandler creates a new integration handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Name returns the group name.
func (h *Handler) Name() string {
	return "integration"
}

// Commands returns the command names served by this handler.
func (h *Handler) Commands() []string {
	return []string{CommandExternalEditor}
}

// CanHandle returns true if this handler can process the command.
func (h *Handler) CanHandle(name string) bool {
	return name == CommandExternalEditor
}

// Handle replaces the buffer with the editor's result and leaves the point
// at its end. Any hand-off failure is fatal to the session.
func (h *Handler) Handle(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if action.Name != CommandExternalEditor {
		return handler.Errorf("unknown integration command: %s", action.Name)
	}
	if err := ctx.ValidateForHandoff(); err != nil {
		return handler.Error(err)
	}

	edited, err := ctx.Editor.Edit(ctx.Context, ctx.Engine.Text())
	if err != nil {
		return handler.Fatal(err)
	}
	ctx.Engine.Replace(edited)
	return handler.Success()
}
