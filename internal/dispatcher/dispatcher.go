package dispatcher

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/dispatcher/handler"
	"github.com/dshills/jot/internal/input"
	"github.com/dshills/jot/internal/input/keymap"
)

// Display is the redisplay side of the session.
type Display interface {
	// Redisplay redraws the buffer and cursor.
	Redisplay()

	// Bell signals the user.
	Bell()
}

// ModeController reports and changes the active scope.
type ModeController interface {
	execctx.ModeManagerInterface

	// SetScope switches scope and reports whether the switch happened.
	SetScope(scope keymap.Scope) bool
}

// Dispatcher routes actions to command handlers and applies their results.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry

	// Session subsystems
	engine      execctx.EngineInterface
	modeManager ModeController
	editor      execctx.EditorInterface
	display     Display
	ctx         context.Context

	config  Config
	metrics *Metrics

	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		config:   config,
		ctx:      context.Background(),
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetEngine sets the text buffer.
func (d *Dispatcher) SetEngine(engine execctx.EngineInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.engine = engine
}

// SetModeManager sets the scope controller.
func (d *Dispatcher) SetModeManager(mm ModeController) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.modeManager = mm
}

// SetEditor sets the external editor hand-off.
func (d *Dispatcher) SetEditor(editor execctx.EditorInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editor = editor
}

// SetDisplay sets the redisplay target.
func (d *Dispatcher) SetDisplay(display Display) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.display = display
}

// SetContext sets the context passed to blocking handlers.
func (d *Dispatcher) SetContext(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ctx = ctx
}

// Engine returns the text buffer.
func (d *Dispatcher) Engine() execctx.EngineInterface {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.engine
}

// Dispatch executes an action synchronously and applies its side effects.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	startTime := time.Now()

	if action.Name == "" {
		return handler.Error(ErrInvalidAction)
	}

	ctx := d.buildContext(action)

	if !d.runPreHooks(&action, ctx) {
		return handler.Error(fmt.Errorf("%s: %w", action.Name, ErrActionCancelled))
	}

	var result handler.Result
	h := d.registry.Get(action.Name)
	switch {
	case h == nil:
		result = handler.Error(fmt.Errorf("%s: %w", action.Name, ErrNoHandler))
	case d.config.RecoverFromPanic:
		result = d.executeWithRecovery(h, action, ctx)
	default:
		result = h.Handle(action, ctx)
	}

	d.processResult(result, ctx)
	d.runPostHooks(&action, ctx, &result)

	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, time.Since(startTime), result.Status)
	}

	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			result = handler.Error(fmt.Errorf("%w in %s: %v\n%s", ErrPanic, action.Name, r, stack[:n]))

			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()

	return h.Handle(action, ctx)
}

// buildContext builds an execution context from current state.
func (d *Dispatcher) buildContext(action input.Action) *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if limit := d.config.MaxRepeatCount; limit > 0 && action.Count > limit {
		action.Count = limit
	}

	ctx := execctx.NewWithAction(action)
	ctx.Context = d.ctx
	ctx.Engine = d.engine
	ctx.Editor = d.editor
	if d.modeManager != nil {
		ctx.ModeManager = d.modeManager
	}
	return ctx
}

// processResult applies scope changes and display side effects.
func (d *Dispatcher) processResult(result handler.Result, ctx *execctx.ExecutionContext) {
	d.mu.RLock()
	mm, display := d.modeManager, d.display
	d.mu.RUnlock()

	if result.ModeChange != "" && mm != nil {
		mm.SetScope(result.ModeChange)
	}

	if display == nil {
		return
	}
	if result.Bell {
		display.Bell()
	}
	if result.Redraw {
		display.Redisplay()
	}
}

// RegisterHandler registers a handler under a command name.
func (d *Dispatcher) RegisterHandler(name string, h handler.Handler) error {
	return d.registry.Register(name, h)
}

// RegisterHandlerFunc registers a function under a command name.
func (d *Dispatcher) RegisterHandlerFunc(name string, fn handler.Func) error {
	return d.registry.Register(name, handler.NewHandlerFunc(fn))
}

// RegisterGroup registers every command of a group.
func (d *Dispatcher) RegisterGroup(g handler.Group) error {
	return d.registry.RegisterGroup(g)
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, hook)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, hook)
}

// runPreHooks runs all pre-dispatch hooks.
// Returns false if any hook cancels the action.
func (d *Dispatcher) runPreHooks(action *input.Action, ctx *execctx.ExecutionContext) bool {
	d.mu.RLock()
	hooks := make([]PreDispatchHook, len(d.preHooks))
	copy(hooks, d.preHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(action, ctx) {
			return false
		}
	}
	return true
}

// runPostHooks runs all post-dispatch hooks.
func (d *Dispatcher) runPostHooks(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	d.mu.RLock()
	hooks := make([]PostDispatchHook, len(d.postHooks))
	copy(hooks, d.postHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(action, ctx, result)
	}
}

// Registry returns the command registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Metrics returns the metrics collector (nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
