package process

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// State is the lifecycle state of a process.
type State int

const (
	StateCreated State = iota
	StateRunning
	// StateExited means the process returned a status of its own.
	StateExited
	// StateKilled means a signal ended the process.
	StateKilled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateKilled:
		return "killed"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Exit records how a process ended.
type Exit struct {
	// Code is the exit status, or -1 if a signal ended the process.
	Code int
	// Signal is the terminating signal, or 0.
	Signal syscall.Signal
	// Err is the error returned by Wait; nil for status 0.
	Err error
	// Ended is when the exit was observed.
	Ended time.Time
}

// Signaled reports whether a signal ended the process.
func (x Exit) Signaled() bool {
	return x.Signal != 0
}

// OK reports a zero exit status.
func (x Exit) OK() bool {
	return x.Code == 0 && x.Signal == 0 && x.Err == nil
}

func (x Exit) String() string {
	switch {
	case x.Signaled():
		return "signal " + x.Signal.String()
	case x.Code >= 0:
		return fmt.Sprintf("exit status %d", x.Code)
	case x.Err != nil:
		return x.Err.Error()
	default:
		return "unknown exit"
	}
}

// exitOf interprets the result of exec.Cmd.Wait.
func exitOf(err error) Exit {
	x := Exit{Err: err, Ended: time.Now()}
	if err == nil {
		return x
	}

	x.Code = -1
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return x
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		x.Signal = ws.Signal()
		return x
	}
	x.Code = exitErr.ExitCode()
	return x
}

// Process is one supervised child. It is safe for concurrent use.
type Process struct {
	// ID is unique within a supervisor.
	ID string

	// Name labels the process in logs.
	Name string

	// Cmd is the command being run.
	Cmd *exec.Cmd

	// Started is set once the command has started.
	Started time.Time

	done chan struct{}

	mu    sync.Mutex
	state State
	exit  Exit
}

func newProcess(id, name string, cmd *exec.Cmd) *Process {
	return &Process{
		ID:   id,
		Name: name,
		Cmd:  cmd,
		done: make(chan struct{}),
	}
}

// State returns the current state.
func (p *Process) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Done is closed once the exit is recorded.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the process ends and returns its exit record.
func (p *Process) Wait() Exit {
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exit
}

// Exit returns the exit record; ok is false while the process runs.
func (p *Process) Exit() (x Exit, ok bool) {
	select {
	case <-p.done:
		return p.Wait(), true
	default:
		return Exit{}, false
	}
}

// PID returns the operating system process id, or -1 before start.
func (p *Process) PID() int {
	if p.Cmd.Process == nil {
		return -1
	}
	return p.Cmd.Process.Pid
}

// Signal delivers sig while the process runs.
func (p *Process) Signal(sig os.Signal) error {
	if p.State() != StateRunning {
		return ErrNotStarted
	}
	return p.Cmd.Process.Signal(sig)
}

// Duration is the run time so far, or the total once ended.
func (p *Process) Duration() time.Duration {
	if p.Started.IsZero() {
		return 0
	}
	if x, ok := p.Exit(); ok {
		return x.Ended.Sub(p.Started)
	}
	return time.Since(p.Started)
}

func (p *Process) start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateCreated {
		return ErrStarted
	}
	if err := p.Cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", p.Name, err)
	}
	p.Started = time.Now()
	p.state = StateRunning

	go p.wait()
	return nil
}

func (p *Process) wait() {
	x := exitOf(p.Cmd.Wait())

	p.mu.Lock()
	p.exit = x
	if x.Signaled() {
		p.state = StateKilled
	} else {
		p.state = StateExited
	}
	p.mu.Unlock()

	close(p.done)
}
