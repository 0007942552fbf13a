package input

import (
	"github.com/dshills/jot/internal/input/key"
	"github.com/dshills/jot/internal/input/keymap"
)

// Context holds the input state between key events.
type Context struct {
	// Scope is the active keymap scope.
	Scope keymap.Scope

	// PendingCount is the accumulated count prefix.
	PendingCount int

	// CountExplicit is set once a count digit has been typed.
	CountExplicit bool

	// PendingSequence holds the accumulated key sequence.
	PendingSequence *key.Sequence
}

// NewContext creates a new input context in insert scope.
func NewContext() *Context {
	return &Context{
		Scope: keymap.ScopeInsert,
	}
}

// Clone returns a deep copy of the context.
func (c *Context) Clone() *Context {
	clone := &Context{
		Scope:         c.Scope,
		PendingCount:  c.PendingCount,
		CountExplicit: c.CountExplicit,
	}
	if c.PendingSequence != nil {
		clone.PendingSequence = c.PendingSequence.Clone()
	}
	return clone
}

// ClearPending clears all pending state (count and sequence).
func (c *Context) ClearPending() {
	c.PendingCount = 0
	c.CountExplicit = false
	c.PendingSequence = nil
}

// HasPendingCount returns true if a count prefix has been entered.
func (c *Context) HasPendingCount() bool {
	return c.CountExplicit
}

// HasPendingSequence returns true if keys are waiting for completion.
func (c *Context) HasPendingSequence() bool {
	return c.PendingSequence != nil && !c.PendingSequence.IsEmpty()
}

// GetCount returns the pending count, or 1 if no count is set.
func (c *Context) GetCount() int {
	if c.PendingCount <= 0 {
		return 1
	}
	return c.PendingCount
}

// AccumulateCount adds a digit to the pending count, saturating at max.
func (c *Context) AccumulateCount(digit, max int) {
	if digit < 0 || digit > 9 {
		return
	}
	c.CountExplicit = true
	c.PendingCount = c.PendingCount*10 + digit
	if max > 0 && c.PendingCount > max {
		c.PendingCount = max
	}
}

// AppendToSequence adds a key event to the pending sequence.
func (c *Context) AppendToSequence(event key.Event) {
	if c.PendingSequence == nil {
		c.PendingSequence = key.NewSequence()
	}
	c.PendingSequence.Add(event)
}

// ClearSequence clears only the pending sequence.
func (c *Context) ClearSequence() {
	c.PendingSequence = nil
}
