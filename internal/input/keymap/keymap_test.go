package keymap

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/jot/internal/input/key"
)

func newDefaultRegistry(t *testing.T, mode EditingMode) *Registry {
	t.Helper()
	r := NewRegistry()
	if err := LoadDefaults(r, mode); err != nil {
		t.Fatalf("LoadDefaults() error = %v", err)
	}
	return r
}

func TestDefaultBindings(t *testing.T) {
	r := newDefaultRegistry(t, EditingVi)

	tests := []struct {
		keys  string
		scope Scope
		want  string
	}{
		{"C-n", ScopeInsert, "accept-line"},
		{"C-n", ScopeNormal, "accept-line"},
		{"C-d", ScopeInsert, "accept-or-delete"},
		{"C-c", ScopeInsert, "interrupt"},
		{"C-c", ScopeNormal, "interrupt"},
		{"Up", ScopeNormal, "move-up"},
		{"Down", ScopeInsert, "move-down"},
		{"Enter", ScopeInsert, "insert-newline"},
		{"Enter", ScopeNormal, "first-nonblank-next-line"},
		{"C-a", ScopeInsert, "beginning-of-line"},
		{"Home", ScopeInsert, "beginning-of-line"},
		{"C-e", ScopeInsert, "end-of-line"},
		{"End", ScopeInsert, "end-of-line"},
		{"C-k", ScopeInsert, "kill-line"},
		{"C-u", ScopeInsert, "kill-backward-line"},
		{"M-<", ScopeInsert, "beginning-of-buffer"},
		{"M->", ScopeInsert, "end-of-buffer"},
		{"C-x C-e", ScopeInsert, "external-editor"},
		{"Tab", ScopeInsert, "self-insert"},
		{"Esc", ScopeInsert, "vi-movement-mode"},
		{"j", ScopeNormal, "move-down"},
		{"k", ScopeNormal, "move-up"},
		{"J", ScopeNormal, "vi-join-lines"},
		{"o", ScopeNormal, "vi-insert-line-below"},
		{"O", ScopeNormal, "vi-insert-line-above"},
		{"^", ScopeNormal, "beginning-of-line"},
		{"$", ScopeNormal, "end-of-line"},
		{"G", ScopeNormal, "goto-line"},
		{"g g", ScopeNormal, "goto-first-line"},
		{"d d", ScopeNormal, "vi-delete-lines"},
		{"D", ScopeNormal, "vi-delete-to-end-of-line"},
		{"v", ScopeNormal, "external-editor"},
	}

	for _, tt := range tests {
		t.Run(string(tt.scope)+"/"+tt.keys, func(t *testing.T) {
			b := r.Lookup(key.MustParseSequence(tt.keys), tt.scope)
			if b == nil {
				t.Fatalf("Lookup(%q, %s) = nil, want %s", tt.keys, tt.scope, tt.want)
			}
			if b.Command != tt.want {
				t.Errorf("Lookup(%q, %s) = %s, want %s", tt.keys, tt.scope, b.Command, tt.want)
			}
		})
	}
}

func TestDefaultsLeaveKillWholeLineUnbound(t *testing.T) {
	r := newDefaultRegistry(t, EditingVi)
	for _, scope := range []Scope{ScopeGlobal, ScopeInsert, ScopeNormal} {
		for _, pb := range r.Bindings(scope) {
			if pb.Command == "kill-whole-line" {
				t.Errorf("kill-whole-line bound to %q in %s", pb.Keys, scope)
			}
		}
	}
}

func TestEmacsModeHasNoEscapeBinding(t *testing.T) {
	r := newDefaultRegistry(t, EditingEmacs)
	if b := r.Lookup(key.MustParseSequence("Esc"), ScopeInsert); b != nil {
		t.Errorf("Esc bound to %s in emacs mode", b.Command)
	}
}

func TestResolve(t *testing.T) {
	r := newDefaultRegistry(t, EditingVi)

	tests := []struct {
		keys  string
		scope Scope
		want  MatchKind
	}{
		{"g", ScopeNormal, MatchPrefix},
		{"g g", ScopeNormal, MatchExact},
		{"d", ScopeNormal, MatchPrefix},
		{"d x", ScopeNormal, MatchNone},
		{"C-x", ScopeInsert, MatchPrefix},
		{"C-x", ScopeNormal, MatchNone},
		{"C-x C-e", ScopeInsert, MatchExact},
		{"q", ScopeNormal, MatchNone},
		{"g", ScopeInsert, MatchNone},
	}

	for _, tt := range tests {
		if got := r.Resolve(key.MustParseSequence(tt.keys), tt.scope).Kind; got != tt.want {
			t.Errorf("Resolve(%q, %s) = %d, want %d", tt.keys, tt.scope, got, tt.want)
		}
	}
}

func TestScopeBindingWinsOverGlobal(t *testing.T) {
	r := newDefaultRegistry(t, EditingEmacs)
	if err := r.Bind(ScopeInsert, "C-d", "delete-char"); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	seq := key.MustParseSequence("C-d")
	if got := r.Lookup(seq, ScopeInsert).Command; got != "delete-char" {
		t.Errorf("insert C-d = %s, want delete-char", got)
	}
	if got := r.Lookup(seq, ScopeNormal).Command; got != "accept-or-delete" {
		t.Errorf("normal C-d = %s, want accept-or-delete", got)
	}
}

func TestBindReplacesAndUnbind(t *testing.T) {
	r := NewRegistry()
	if err := r.Bind(ScopeInsert, "C-x C-k", "kill-line"); err != nil {
		t.Fatal(err)
	}
	if err := r.Bind(ScopeInsert, "C-x C-k", "kill-whole-line"); err != nil {
		t.Fatal(err)
	}
	seq := key.MustParseSequence("C-x C-k")
	if got := r.Lookup(seq, ScopeInsert).Command; got != "kill-whole-line" {
		t.Errorf("Lookup = %s, want kill-whole-line", got)
	}

	if err := r.Unbind(ScopeInsert, "C-x C-k"); err != nil {
		t.Fatalf("Unbind() error = %v", err)
	}
	if b := r.Lookup(seq, ScopeInsert); b != nil {
		t.Errorf("Lookup after Unbind = %s, want nil", b.Command)
	}
	if r.HasPrefix(key.MustParseSequence("C-x"), ScopeInsert) {
		t.Error("prefix node survived Unbind")
	}
	if err := r.Unbind(ScopeInsert, "C-x C-k"); !errors.Is(err, ErrBindingNotFound) {
		t.Errorf("second Unbind() error = %v, want ErrBindingNotFound", err)
	}
}

func TestUnbindCommand(t *testing.T) {
	r := newDefaultRegistry(t, EditingVi)
	if n := r.UnbindCommand("external-editor"); n != 2 {
		t.Errorf("UnbindCommand() = %d, want 2", n)
	}
	if b := r.Lookup(key.MustParseSequence("v"), ScopeNormal); b != nil {
		t.Errorf("v still bound to %s", b.Command)
	}
}

func TestSuppressedCommandsRejected(t *testing.T) {
	r := NewRegistry()
	for _, name := range Suppressed() {
		if err := r.Bind(ScopeInsert, "C-r", name); !errors.Is(err, ErrSuppressed) {
			t.Errorf("Bind(%s) error = %v, want ErrSuppressed", name, err)
		}
	}

	km := NewKeymap("bad").ForScope(ScopeInsert).Add("Tab", "complete")
	if err := r.Register(km); !errors.Is(err, ErrSuppressed) {
		t.Errorf("Register() error = %v, want ErrSuppressed", err)
	}
}

func TestIsSuppressed(t *testing.T) {
	for _, name := range []string{"complete", "reverse-search-history", "non-incremental-reverse-search-history-again"} {
		if !IsSuppressed(name) {
			t.Errorf("IsSuppressed(%s) = false", name)
		}
	}
	if IsSuppressed("kill-line") {
		t.Error("IsSuppressed(kill-line) = true")
	}
}

func TestKeymapValidate(t *testing.T) {
	tests := []struct {
		name string
		km   *Keymap
		want error
	}{
		{"empty keys", NewKeymap("k").Add("", "yank"), ErrEmptyKeys},
		{"empty command", NewKeymap("k").Add("C-y", ""), ErrEmptyCommand},
		{"bad scope", NewKeymap("k").ForScope("visual").Add("C-y", "yank"), ErrUnknownScope},
		{"bad keys", NewKeymap("k").Add("Hyper+q", "yank"), key.ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.km.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseScope(t *testing.T) {
	tests := map[string]Scope{
		"":       ScopeGlobal,
		"global": ScopeGlobal,
		"Insert": ScopeInsert,
		"emacs":  ScopeInsert,
		"normal": ScopeNormal,
		"vi":     ScopeNormal,
	}
	for in, want := range tests {
		got, err := ParseScope(in)
		if err != nil || got != want {
			t.Errorf("ParseScope(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseScope("visual"); !errors.Is(err, ErrUnknownScope) {
		t.Errorf("ParseScope(visual) error = %v, want ErrUnknownScope", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	r := newDefaultRegistry(t, EditingEmacs)

	err := ApplyOverrides(r, nil, []Removal{{Keys: "C-d", Scope: "visual"}})
	if !errors.Is(err, ErrUnknownScope) {
		t.Fatalf("ApplyOverrides() error = %v, want ErrUnknownScope", err)
	}

	r = newDefaultRegistry(t, EditingEmacs)
	err = ApplyOverrides(r,
		[]Override{{Keys: "C-x C-k", Command: "kill-whole-line", Scope: "insert"}},
		[]Removal{{Keys: "C-d", Scope: "global"}, {Keys: "C-q", Scope: "global"}},
	)
	if err != nil {
		t.Fatalf("ApplyOverrides() error = %v", err)
	}
	if b := r.Lookup(key.MustParseSequence("C-d"), ScopeInsert); b != nil {
		t.Errorf("C-d still bound to %s", b.Command)
	}
	if b := r.Lookup(key.MustParseSequence("C-x C-k"), ScopeInsert); b == nil || b.Command != "kill-whole-line" {
		t.Errorf("C-x C-k = %v, want kill-whole-line", b)
	}
	if b := r.Lookup(key.MustParseSequence("C-x C-e"), ScopeInsert); b == nil || b.Command != "external-editor" {
		t.Error("C-x C-e lost its binding")
	}

	err = ApplyOverrides(r, []Override{{Keys: "C-s", Command: "forward-search-history"}}, nil)
	if !errors.Is(err, ErrSuppressed) {
		t.Errorf("ApplyOverrides(suppressed) error = %v, want ErrSuppressed", err)
	}
}

func TestLoaderTOML(t *testing.T) {
	dir := t.TempDir()
	content := `
name = "mine"
scope = "normal"

[[bindings]]
keys = "K"
command = "kill-whole-line"
description = "Kill the line"
`
	if err := os.WriteFile(filepath.Join(dir, "mine.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader()
	l.AddSearchPath(dir)
	l.AddSearchPath(filepath.Join(dir, "missing"))

	r := NewRegistry()
	if err := l.LoadAndRegister(r); err != nil {
		t.Fatalf("LoadAndRegister() error = %v", err)
	}
	b := r.Lookup(key.MustParseSequence("K"), ScopeNormal)
	if b == nil || b.Command != "kill-whole-line" {
		t.Fatalf("Lookup(K) = %v, want kill-whole-line", b)
	}
	if r.Get("mine") == nil {
		t.Error("Get(mine) = nil")
	}
}

func TestLoaderRejectsUnknownFields(t *testing.T) {
	_, err := NewLoader().LoadReader(strings.NewReader("name = \"x\"\nmode = \"normal\"\n"))
	if err == nil {
		t.Error("LoadReader() accepted unknown field")
	}
}

func TestMarshalTOMLRoundTrip(t *testing.T) {
	km := DefaultNormalKeymap()
	data, err := km.MarshalTOML()
	if err != nil {
		t.Fatalf("MarshalTOML() error = %v", err)
	}
	back, err := NewLoader().LoadReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if back.Scope != ScopeNormal || len(back.Bindings) != len(km.Bindings) {
		t.Errorf("round trip scope=%s bindings=%d, want normal/%d", back.Scope, len(back.Bindings), len(km.Bindings))
	}
}

func TestGroupByCategory(t *testing.T) {
	groups := GroupByCategory(DefaultInsertKeymap().Bindings)
	if len(groups) == 0 || groups[0].Name != "Editing" {
		t.Errorf("GroupByCategory() first = %v, want Editing", groups)
	}
}
