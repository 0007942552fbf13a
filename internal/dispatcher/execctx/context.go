// Package execctx provides the execution context for command handlers.
package execctx

import (
	"context"

	"github.com/dshills/jot/internal/engine/buffer"
	"github.com/dshills/jot/internal/input"
	"github.com/dshills/jot/internal/input/keymap"
)

// EngineInterface abstracts the text buffer for handlers.
type EngineInterface interface {
	// Text operations
	Insert(text string)
	InsertAt(offset int, text string)
	Delete(start, end int) (string, error)
	Kill(start, end int) (string, error)
	Replace(text string)

	// Read operations
	Text() string
	Slice(start, end int) string
	RuneAt(offset int) (rune, bool)
	Len() int

	// Point
	Point() int
	SetPoint(offset int)
	AtEnd() bool

	// Line operations
	LineStart(offset int) int
	LineEnd(offset int) int
	Column(offset int) int
	FirstNonBlank(offset int) int
	HasNextLine(offset int) bool
	LineCount() int
	LineOffset(n int) int

	// Kill ring
	Kills() *buffer.KillRing
}

// ModeManagerInterface abstracts scope management for handlers.
type ModeManagerInterface interface {
	Scope() keymap.Scope
	EditingMode() keymap.EditingMode
}

// EditorInterface hands the buffer text to an external editor and returns
// the edited text.
type EditorInterface interface {
	Edit(ctx context.Context, text string) (string, error)
}

// ExecutionContext provides context for command execution.
// It contains references to the session subsystems handlers need.
type ExecutionContext struct {
	// Context bounds blocking work such as the external editor.
	Context context.Context

	// Engine provides access to the text buffer.
	Engine EngineInterface

	// ModeManager provides scope state.
	ModeManager ModeManagerInterface

	// Editor runs the external editor hand-off.
	Editor EditorInterface

	// Action is the action being executed.
	Action input.Action

	// Execution options
	Count    int  // Repeat count (1 if not specified)
	Explicit bool // True when the count was typed

	// Data holds handler-specific context data.
	Data map[string]interface{}
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Context: context.Background(),
		Count:   1,
		Data:    make(map[string]interface{}),
	}
}

// NewWithAction creates a new execution context for an action.
func NewWithAction(action input.Action) *ExecutionContext {
	ctx := New()
	ctx.Action = action
	ctx.Count = action.GetCount()
	ctx.Explicit = action.Explicit
	return ctx
}

// WithEngine returns the context with the engine set.
func (ctx *ExecutionContext) WithEngine(engine EngineInterface) *ExecutionContext {
	ctx.Engine = engine
	return ctx
}

// WithModeManager returns the context with mode manager set.
func (ctx *ExecutionContext) WithModeManager(mm ModeManagerInterface) *ExecutionContext {
	ctx.ModeManager = mm
	return ctx
}

// WithEditor returns the context with the external editor set.
func (ctx *ExecutionContext) WithEditor(editor EditorInterface) *ExecutionContext {
	ctx.Editor = editor
	return ctx
}

// WithCount returns the context with an explicit repeat count set.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	if count > 0 {
		ctx.Count = count
		ctx.Explicit = true
	}
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// Scope returns the active scope, insert if unknown.
func (ctx *ExecutionContext) Scope() keymap.Scope {
	if ctx.ModeManager != nil {
		return ctx.ModeManager.Scope()
	}
	return keymap.ScopeInsert
}

// IsVi returns true in vi editing mode.
func (ctx *ExecutionContext) IsVi() bool {
	return ctx.ModeManager != nil && ctx.ModeManager.EditingMode() == keymap.EditingVi
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value interface{}) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]interface{})
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (interface{}, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// Validate checks that the context has all required components.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}

// ValidateForHandoff checks that the context can run the external editor.
func (ctx *ExecutionContext) ValidateForHandoff() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.Editor == nil {
		return ErrMissingEditor
	}
	return nil
}
