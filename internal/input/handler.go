package input

import (
	"sync"

	"github.com/dshills/jot/internal/input/key"
	"github.com/dshills/jot/internal/input/keymap"
)

// CommandSelfInsert is the command produced for unbound printable keys in
// insert scope.
const CommandSelfInsert = "self-insert"

// Config configures the input handler.
type Config struct {
	// EditingMode selects emacs (insert scope only) or vi (insert and
	// normal scopes). Default: emacs.
	EditingMode keymap.EditingMode

	// MaxRepeatCount caps typed counts. Zero means no cap.
	MaxRepeatCount int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EditingMode:    keymap.EditingEmacs,
		MaxRepeatCount: 1000000,
	}
}

// Outcome reports what a key event produced.
type Outcome struct {
	// Actions are the commands to execute, in order.
	Actions []Action

	// Bell is set when the key completed no binding.
	Bell bool

	// Pending is set when the key was consumed as part of an unfinished
	// sequence or count.
	Pending bool
}

// Handler resolves key events into actions.
type Handler struct {
	mu sync.Mutex

	config   Config
	registry *keymap.Registry
	context  *Context

	// fallback is the binding of the pending sequence itself when longer
	// bindings extend it.
	fallback *keymap.ParsedBinding
}

// NewHandler creates a new input handler over a binding table.
func NewHandler(config Config, registry *keymap.Registry) *Handler {
	if registry == nil {
		registry = keymap.NewRegistry()
	}
	return &Handler{
		config:   config,
		registry: registry,
		context:  NewContext(),
	}
}

// HandleKeyEvent processes one key event.
func (h *Handler) HandleKeyEvent(event key.Event) Outcome {
	h.mu.Lock()
	defer h.mu.Unlock()

	if event.Key == key.KeyNone {
		return Outcome{}
	}

	if h.consumeCount(event) {
		return Outcome{Pending: true}
	}

	var out Outcome
	h.feed(event, &out)
	return out
}

// consumeCount accumulates count digits. Digits only count between
// sequences; inside a sequence they are ordinary keys.
func (h *Handler) consumeCount(event key.Event) bool {
	if h.context.HasPendingSequence() {
		return false
	}
	digit, ok := event.Digit()
	if !ok {
		return false
	}

	switch {
	case event.Modifiers == key.ModAlt:
	case event.Modifiers == key.ModNone && h.context.Scope == keymap.ScopeNormal:
		if digit == 0 && !h.context.HasPendingCount() {
			return false
		}
	default:
		return false
	}

	h.context.AccumulateCount(digit, h.config.MaxRepeatCount)
	return true
}

// feed appends event to the pending sequence and resolves it.
func (h *Handler) feed(event key.Event, out *Outcome) {
	h.context.AppendToSequence(event)
	seq := h.context.PendingSequence

	m := h.registry.Resolve(seq, h.context.Scope)
	switch m.Kind {
	case keymap.MatchExact:
		out.Actions = append(out.Actions, h.buildAction(m.Binding.Command, event))
		h.reset()

	case keymap.MatchPrefix:
		h.fallback = m.Binding
		out.Pending = true

	default:
		if seq.Len() > 1 && h.fallback != nil {
			// The keys so far were a complete binding; run it and
			// start over with the key that broke the sequence.
			prev := seq.Events[seq.Len()-2]
			out.Actions = append(out.Actions, h.buildAction(h.fallback.Command, prev))
			h.reset()
			h.feed(event, out)
			return
		}

		if seq.Len() == 1 && h.context.Scope == keymap.ScopeInsert && event.IsChar() {
			out.Actions = append(out.Actions, h.buildAction(CommandSelfInsert, event))
		} else {
			out.Bell = true
		}
		h.reset()
	}
	out.Pending = out.Pending && h.context.HasPendingSequence()
}

// buildAction creates an action from a command name and the final key.
func (h *Handler) buildAction(command string, event key.Event) Action {
	return Action{
		Name:     command,
		Source:   SourceKeyboard,
		Count:    h.context.GetCount(),
		Explicit: h.context.HasPendingCount(),
		Key:      event,
		Text:     insertText(event),
	}
}

func (h *Handler) reset() {
	h.context.ClearPending()
	h.fallback = nil
}

// Scope returns the active keymap scope.
func (h *Handler) Scope() keymap.Scope {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.context.Scope
}

// SetScope changes the active scope and drops pending input. Normal scope
// is refused in emacs editing mode.
func (h *Handler) SetScope(scope keymap.Scope) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if scope == keymap.ScopeNormal && h.config.EditingMode != keymap.EditingVi {
		return false
	}
	if scope != keymap.ScopeInsert && scope != keymap.ScopeNormal {
		return false
	}
	h.context.Scope = scope
	h.reset()
	return true
}

// EditingMode returns the configured editing mode.
func (h *Handler) EditingMode() keymap.EditingMode {
	return h.config.EditingMode
}

// PendingKeys returns the pending key sequence as a string.
func (h *Handler) PendingKeys() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.context.PendingSequence.String()
}

// Context returns a copy of the current context.
func (h *Handler) Context() *Context {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.context.Clone()
}

// Reset drops any pending count or sequence.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reset()
}

// KeymapRegistry returns the binding table.
func (h *Handler) KeymapRegistry() *keymap.Registry {
	return h.registry
}
