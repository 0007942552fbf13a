package keymap

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/jot/internal/input/key"
)

// MatchKind describes how a key sequence relates to the bindings.
type MatchKind uint8

const (
	// MatchNone means no binding starts with the sequence.
	MatchNone MatchKind = iota

	// MatchPrefix means longer bindings start with the sequence, so more
	// keys are needed. Binding is set if the sequence is also bound on its
	// own.
	MatchPrefix

	// MatchExact means the sequence is bound and nothing longer extends it.
	MatchExact
)

// Match is the result of resolving a key sequence.
type Match struct {
	Kind    MatchKind
	Binding *ParsedBinding
}

// Registry is the binding table: (key sequence, scope) to command name.
type Registry struct {
	mu sync.RWMutex

	// keymaps holds all registered keymaps by name.
	keymaps map[string]*ParsedKeymap

	// prefixTree provides prefix-based binding lookup.
	prefixTree *PrefixTree
}

// NewRegistry creates an empty binding table.
func NewRegistry() *Registry {
	return &Registry{
		keymaps:    make(map[string]*ParsedKeymap),
		prefixTree: NewPrefixTree(),
	}
}

// Register adds every binding of a keymap to the table. Bindings for a
// sequence already bound in the same scope replace the older binding.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return ErrNilKeymap
	}

	parsed, err := km.Parse()
	if err != nil {
		return fmt.Errorf("parsing keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.keymaps[km.Name] = parsed
	for i := range parsed.ParsedBindings {
		r.prefixTree.Insert(&parsed.ParsedBindings[i])
	}
	return nil
}

// Bind binds keys to a command in the given scope.
func (r *Registry) Bind(scope Scope, keys, command string) error {
	if !scope.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownScope, scope)
	}
	b := NewBinding(keys, command)
	if err := validateBinding(b); err != nil {
		return fmt.Errorf("bind %q: %w", keys, err)
	}
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return fmt.Errorf("bind %q: %w", keys, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefixTree.Insert(&ParsedBinding{Binding: b, Sequence: seq, Scope: scope})
	return nil
}

// Unbind removes the binding for keys in the given scope.
func (r *Registry) Unbind(scope Scope, keys string) error {
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return fmt.Errorf("unbind %q: %w", keys, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.prefixTree.Remove(seq, scope) {
		return fmt.Errorf("unbind %q in %s: %w", keys, scope, ErrBindingNotFound)
	}
	return nil
}

// UnbindCommand removes every binding of a command in every scope and
// returns how many were removed.
func (r *Registry) UnbindCommand(command string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for _, pb := range r.prefixTree.All() {
		if pb.Command == command && r.prefixTree.Remove(pb.Sequence, pb.Scope) {
			removed++
		}
	}
	return removed
}

// Get returns a registered keymap by name.
func (r *Registry) Get(name string) *ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.keymaps[name]
}

// Resolve reports how seq relates to the bindings active in scope.
func (r *Registry) Resolve(seq *key.Sequence, scope Scope) Match {
	if seq == nil || seq.IsEmpty() {
		return Match{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	scopes := activeScopes(scope)
	node := r.prefixTree.find(seq)
	if node == nil {
		return Match{}
	}

	var exact *ParsedBinding
	for _, s := range scopes {
		if pb, ok := node.entries[s]; ok {
			exact = pb
			break
		}
	}

	for _, child := range node.children {
		if child.reaches(scopes) {
			return Match{Kind: MatchPrefix, Binding: exact}
		}
	}
	if exact != nil {
		return Match{Kind: MatchExact, Binding: exact}
	}
	return Match{}
}

// Lookup finds the binding for a complete key sequence in scope.
// Scope-specific bindings win over global ones.
func (r *Registry) Lookup(seq *key.Sequence, scope Scope) *Binding {
	if m := r.Resolve(seq, scope); m.Binding != nil {
		return &m.Binding.Binding
	}
	return nil
}

// HasPrefix checks if a longer binding active in scope starts with seq.
func (r *Registry) HasPrefix(seq *key.Sequence, scope Scope) bool {
	return r.Resolve(seq, scope).Kind == MatchPrefix
}

// Bindings returns the bindings defined directly in scope, sorted by keys.
func (r *Registry) Bindings(scope Scope) []ParsedBinding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ParsedBinding, 0)
	for _, pb := range r.prefixTree.All() {
		if pb.Scope == scope {
			result = append(result, *pb)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Sequence.String() < result[j].Sequence.String()
	})
	return result
}

// Keymaps returns all registered keymaps.
func (r *Registry) Keymaps() []*ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*ParsedKeymap, 0, len(r.keymaps))
	for _, km := range r.keymaps {
		result = append(result, km)
	}
	return result
}

func activeScopes(scope Scope) []Scope {
	if scope == ScopeGlobal || scope == "" {
		return []Scope{ScopeGlobal}
	}
	return []Scope{scope, ScopeGlobal}
}

// PrefixTree indexes bindings by key sequence.
type PrefixTree struct {
	root *prefixNode
}

type prefixNode struct {
	children map[string]*prefixNode
	entries  map[Scope]*ParsedBinding
}

func newPrefixNode() *prefixNode {
	return &prefixNode{
		children: make(map[string]*prefixNode),
		entries:  make(map[Scope]*ParsedBinding),
	}
}

// NewPrefixTree creates a new prefix tree.
func NewPrefixTree() *PrefixTree {
	return &PrefixTree{root: newPrefixNode()}
}

// Insert adds a binding, replacing any binding for the same sequence and scope.
func (t *PrefixTree) Insert(pb *ParsedBinding) {
	node := t.root
	for _, event := range pb.Sequence.Events {
		keyStr := event.String()
		child, ok := node.children[keyStr]
		if !ok {
			child = newPrefixNode()
			node.children[keyStr] = child
		}
		node = child
	}
	node.entries[pb.Scope] = pb
}

// Remove deletes the binding for seq in scope and prunes empty nodes.
// It returns false if there was no such binding.
func (t *PrefixTree) Remove(seq *key.Sequence, scope Scope) bool {
	if seq == nil || len(seq.Events) == 0 {
		return false
	}

	path := make([]*prefixNode, 0, len(seq.Events)+1)
	path = append(path, t.root)
	node := t.root
	for _, event := range seq.Events {
		child, ok := node.children[event.String()]
		if !ok {
			return false
		}
		path = append(path, child)
		node = child
	}

	if _, ok := node.entries[scope]; !ok {
		return false
	}
	delete(node.entries, scope)

	for i := len(path) - 1; i > 0; i-- {
		current := path[i]
		if len(current.entries) != 0 || len(current.children) != 0 {
			break
		}
		delete(path[i-1].children, seq.Events[i-1].String())
	}
	return true
}

// All returns every binding in the tree.
func (t *PrefixTree) All() []*ParsedBinding {
	var result []*ParsedBinding
	var walk func(n *prefixNode)
	walk = func(n *prefixNode) {
		for _, pb := range n.entries {
			result = append(result, pb)
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(t.root)
	return result
}

func (t *PrefixTree) find(seq *key.Sequence) *prefixNode {
	node := t.root
	for _, event := range seq.Events {
		child, ok := node.children[event.String()]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// reaches reports whether n or any descendant holds a binding in scopes.
func (n *prefixNode) reaches(scopes []Scope) bool {
	for _, s := range scopes {
		if _, ok := n.entries[s]; ok {
			return true
		}
	}
	for _, child := range n.children {
		if child.reaches(scopes) {
			return true
		}
	}
	return false
}
