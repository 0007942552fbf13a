package process

import (
	"fmt"
	"os/exec"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// Supervisor starts children under unique ids, tracks the running ones and
// ends whatever is left on Shutdown. It is safe for concurrent use.
type Supervisor struct {
	mu     sync.Mutex
	active map[string]*Process
	closed bool

	newID  func() string
	onExit func(*Process, Exit)
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithExitHook calls fn from the supervisor's goroutine after each child
// ends.
func WithExitHook(fn func(*Process, Exit)) Option {
	return func(s *Supervisor) { s.onExit = fn }
}

// WithIDs replaces the uuid generator.
func WithIDs(fn func() string) Option {
	return func(s *Supervisor) { s.newID = fn }
}

// NewSupervisor creates a supervisor.
func NewSupervisor(opts ...Option) *Supervisor {
	s := &Supervisor{
		active: make(map[string]*Process),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs cmd. Its standard streams are used as the caller set them.
func (s *Supervisor) Start(name string, cmd *exec.Cmd) (*Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrShutdown
	}
	id := s.newID()
	if _, dup := s.active[id]; dup {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}

	p := newProcess(id, name, cmd)
	if err := p.start(); err != nil {
		return nil, err
	}
	s.active[id] = p

	go s.reap(p)
	return p, nil
}

func (s *Supervisor) reap(p *Process) {
	x := p.Wait()

	s.mu.Lock()
	delete(s.active, p.ID)
	s.mu.Unlock()

	if s.onExit != nil {
		s.onExit(p, x)
	}
}

// Active returns the running children, oldest first.
func (s *Supervisor) Active() []*Process {
	s.mu.Lock()
	procs := make([]*Process, 0, len(s.active))
	for _, p := range s.active {
		procs = append(procs, p)
	}
	s.mu.Unlock()

	sort.Slice(procs, func(i, j int) bool {
		return procs[i].Started.Before(procs[j].Started)
	})
	return procs
}

// Signal delivers sig to the child with the given id.
func (s *Supervisor) Signal(id string, sig syscall.Signal) error {
	s.mu.Lock()
	p := s.active[id]
	s.mu.Unlock()

	if p == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.Signal(sig)
}

// Shutdown sends SIGTERM to every child, waits up to grace and then sends
// SIGKILL. It returns once all children have ended. Later calls and later
// starts do nothing and fail with ErrShutdown respectively.
func (s *Supervisor) Shutdown(grace time.Duration) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	procs := s.Active()
	for _, p := range procs {
		_ = p.Signal(syscall.SIGTERM)
	}

	deadline := time.NewTimer(grace)
	defer deadline.Stop()
	for _, p := range procs {
		select {
		case <-p.Done():
		case <-deadline.C:
			for _, q := range procs {
				_ = q.Signal(syscall.SIGKILL)
			}
			for _, q := range procs {
				<-q.Done()
			}
			return
		}
	}
}
