package handoff_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/jot/internal/integration/handoff"
	"github.com/dshills/jot/internal/integration/process"
)

type fakeTerminal struct {
	calls      []string
	releaseErr error
}

func (f *fakeTerminal) Release() error {
	f.calls = append(f.calls, "release")
	return f.releaseErr
}

func (f *fakeTerminal) Reacquire() error {
	f.calls = append(f.calls, "reacquire")
	return nil
}

type recordingLogger struct {
	warnings int
}

func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Warn(string, ...any)  { l.warnings++ }

// stubEditor writes a shell script and returns a command line running it.
func stubEditor(t *testing.T, body string) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "editor.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return "sh " + path
}

func devNull(t *testing.T) *os.File {
	t.Helper()
	f, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func newEditor(t *testing.T, program, dir string, opts ...handoff.Option) *handoff.Editor {
	null := devNull(t)
	cfg := handoff.Config{
		Program: program,
		TempDir: dir,
		Stdin:   null,
		Stdout:  null,
		Stderr:  null,
	}
	return handoff.New(cfg, opts...)
}

func leftovers(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, handoff.TempPrefix+"*"))
	if err != nil {
		t.Fatal(err)
	}
	return matches
}

func TestEditRoundTrip(t *testing.T) {
	dir := t.TempDir()
	term := &fakeTerminal{}
	var states []handoff.State
	e := newEditor(t, stubEditor(t, `printf '!' >> "$1"`), dir,
		handoff.WithTerminal(term),
		handoff.WithTransitionHook(func(from, to handoff.State) { states = append(states, to) }))

	got, err := e.Edit(context.Background(), "hello\nworld")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if got != "hello\nworld!" {
		t.Errorf("Edit = %q, want %q", got, "hello\nworld!")
	}
	if left := leftovers(t, dir); len(left) != 0 {
		t.Errorf("temp files left behind: %v", left)
	}

	wantStates := []handoff.State{
		handoff.StateSuspending, handoff.StateDelegated,
		handoff.StateResuming, handoff.StateInteractive,
	}
	if !reflect.DeepEqual(states, wantStates) {
		t.Errorf("transitions = %v, want %v", states, wantStates)
	}
	if !reflect.DeepEqual(term.calls, []string{"release", "reacquire"}) {
		t.Errorf("terminal calls = %v", term.calls)
	}
	if e.State() != handoff.StateInteractive {
		t.Errorf("State() = %s", e.State())
	}
}

func TestEditTempFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "seen")
	// Record the path and mode the editor was given.
	script := `printf '%s\n' "$1" > ` + out + `; ls -l "$1" | cut -c1-10 >> ` + out
	e := newEditor(t, stubEditor(t, script), dir)

	if _, err := e.Edit(context.Background(), "x"); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Fields(string(data))
	if len(lines) != 2 {
		t.Fatalf("editor saw %q", data)
	}
	if filepath.Dir(lines[0]) != dir || !strings.HasPrefix(filepath.Base(lines[0]), handoff.TempPrefix) {
		t.Errorf("temp path = %s, want %s/%s*", lines[0], dir, handoff.TempPrefix)
	}
	if lines[1] != "-rw-------" {
		t.Errorf("temp mode = %s, want -rw-------", lines[1])
	}
}

func TestEditDevice(t *testing.T) {
	dir := t.TempDir()
	device := filepath.Join(t.TempDir(), "tty")
	if err := os.WriteFile(device, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	e := handoff.New(handoff.Config{
		Program: stubEditor(t, `printf 'drawn'; printf '!' >> "$1"`),
		TempDir: dir,
		Device:  device,
	})

	got, err := e.Edit(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if got != "hello!" {
		t.Errorf("Edit = %q, want %q", got, "hello!")
	}
	data, err := os.ReadFile(device)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "drawn" {
		t.Errorf("device got %q, want %q", data, "drawn")
	}
}

func TestEditMissingDevice(t *testing.T) {
	dir := t.TempDir()
	e := handoff.New(handoff.Config{
		Program: stubEditor(t, "exit 0"),
		TempDir: dir,
		Device:  filepath.Join(t.TempDir(), "missing", "tty"),
	})

	_, err := e.Edit(context.Background(), "x")
	var herr *handoff.Error
	if !errors.As(err, &herr) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Edit error = %v, want *Error wrapping ErrNotExist", err)
	}
	if left := leftovers(t, dir); len(left) != 0 {
		t.Errorf("temp files left behind: %v", left)
	}
}

func TestEditKeepsBytes(t *testing.T) {
	dir := t.TempDir()
	copyTo := filepath.Join(t.TempDir(), "seen")
	e := newEditor(t, stubEditor(t, `cp "$1" `+copyTo), dir)

	text := "caf\xe9\n\xff"
	got, err := e.Edit(context.Background(), text)
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if got != text {
		t.Errorf("Edit = %q, want %q", got, text)
	}
	seen, err := os.ReadFile(copyTo)
	if err != nil {
		t.Fatal(err)
	}
	if string(seen) != text {
		t.Errorf("editor saw %q, want %q", seen, text)
	}
}

func TestEditProgramArguments(t *testing.T) {
	dir := t.TempDir()
	e := newEditor(t, stubEditor(t, `printf '%s' "$1" >> "$2"`)+" appended", dir)

	got, err := e.Edit(context.Background(), "text ")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if got != "text appended" {
		t.Errorf("Edit = %q", got)
	}
}

func TestEditFailures(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"non-zero exit", "exit 1", handoff.ErrEditorFailed},
		{"killed by signal", "kill -TERM $$", handoff.ErrEditorSignaled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			term := &fakeTerminal{}
			e := newEditor(t, stubEditor(t, tt.body), dir, handoff.WithTerminal(term))

			_, err := e.Edit(context.Background(), "hello\nworld")

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Edit error = %v, want %v", err, tt.wantErr)
			}
			var herr *handoff.Error
			if !errors.As(err, &herr) || herr.Step != "run editor" || herr.State != handoff.StateDelegated {
				t.Errorf("error = %#v", err)
			}
			if left := leftovers(t, dir); len(left) != 0 {
				t.Errorf("temp files left behind: %v", left)
			}
			if e.State() != handoff.StateFailed {
				t.Errorf("State() = %s, want failed", e.State())
			}
			if _, err := e.Edit(context.Background(), "again"); !errors.Is(err, handoff.ErrFailed) {
				t.Errorf("second Edit = %v, want ErrFailed", err)
			}
		})
	}
}

func TestEditMissingProgram(t *testing.T) {
	dir := t.TempDir()
	e := newEditor(t, "/nonexistent/jot-test-editor", dir)

	if _, err := e.Edit(context.Background(), "x"); err == nil {
		t.Fatal("expected spawn error")
	}
	if left := leftovers(t, dir); len(left) != 0 {
		t.Errorf("temp files left behind: %v", left)
	}
}

func TestEditReleaseFailure(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")
	term := &fakeTerminal{releaseErr: boom}
	e := newEditor(t, "true", dir, handoff.WithTerminal(term))

	_, err := e.Edit(context.Background(), "x")
	if !errors.Is(err, boom) {
		t.Fatalf("Edit error = %v", err)
	}
	if left := leftovers(t, dir); len(left) != 0 {
		t.Errorf("temp files left behind: %v", left)
	}
}

func TestEditBadTempDir(t *testing.T) {
	e := newEditor(t, "true", filepath.Join(t.TempDir(), "missing"))
	_, err := e.Edit(context.Background(), "x")

	var herr *handoff.Error
	if !errors.As(err, &herr) || herr.Step != "create temp file" {
		t.Errorf("Edit error = %v", err)
	}
}

func TestEditContextCancel(t *testing.T) {
	dir := t.TempDir()
	e := newEditor(t, stubEditor(t, "sleep 30"), dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Edit(ctx, "x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Edit error = %v, want context.Canceled", err)
	}
	if left := leftovers(t, dir); len(left) != 0 {
		t.Errorf("temp files left behind: %v", left)
	}
}

func TestDefaultProgram(t *testing.T) {
	e := handoff.New(handoff.Config{Program: "  "})
	if e.Program() != handoff.DefaultProgram {
		t.Errorf("Program() = %q, want %q", e.Program(), handoff.DefaultProgram)
	}
}

func TestStateString(t *testing.T) {
	names := map[handoff.State]string{
		handoff.StateInteractive: "interactive",
		handoff.StateSuspending:  "suspending",
		handoff.StateDelegated:   "delegated",
		handoff.StateResuming:    "resuming",
		handoff.StateFailed:      "failed",
		handoff.State(42):        "unknown",
	}
	for s, want := range names {
		if s.String() != want {
			t.Errorf("State(%d).String() = %s, want %s", s, s.String(), want)
		}
	}
}

func TestEditAfterClose(t *testing.T) {
	dir := t.TempDir()
	e := newEditor(t, stubEditor(t, "exit 0"), dir)
	e.Close()

	_, err := e.Edit(context.Background(), "x")
	if !errors.Is(err, process.ErrShutdown) {
		t.Fatalf("Edit after Close = %v, want ErrShutdown", err)
	}
	if left := leftovers(t, dir); len(left) != 0 {
		t.Errorf("temp files left behind: %v", left)
	}
}
