package mode

import (
	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/dispatcher/handler"
	"github.com/dshills/jot/internal/input"
	"github.com/dshills/jot/internal/input/keymap"
)

// Command names for scope switching.
const (
	CommandMovementMode    = "vi-movement-mode"    // Esc - switch to normal scope
	CommandInsertionMode   = "vi-insertion-mode"   // i - insert before point
	CommandAppendMode      = "vi-append-mode"      // a - insert after point
	CommandInsertBeginning = "vi-insert-beginning" // I - insert at first non-blank
	CommandAppendEOL       = "vi-append-eol"       // A - insert at end of line
)

var commands = []string{
	CommandMovementMode,
	CommandInsertionMode,
	CommandAppendMode,
	CommandInsertBeginning,
	CommandAppendEOL,
}

// Handler handles scope switching.
type Handler struct{}

// NewHandler creates a new mode handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Name returns the group name.
func (h *Handler) Name() string {
	return "mode"
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

// Handle processes a scope command.
func (h *Handler) Handle(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	e := ctx.Engine
	p := e.Point()

	switch action.Name {
	case CommandMovementMode:
		// Leaving insert scope steps back onto the last inserted rune.
		if p > e.LineStart(p) {
			e.SetPoint(p - 1)
		}
		return handler.Success().WithModeChange(keymap.ScopeNormal)
	case CommandInsertionMode:
	case CommandAppendMode:
		if p < e.LineEnd(p) {
			e.SetPoint(p + 1)
		}
	case CommandInsertBeginning:
		e.SetPoint(e.FirstNonBlank(e.LineStart(p)))
	case CommandAppendEOL:
		e.SetPoint(e.LineEnd(p))
	default:
		return handler.Errorf("unknown mode command: %s", action.Name)
	}
	return handler.Success().WithModeChange(keymap.ScopeInsert)
}
