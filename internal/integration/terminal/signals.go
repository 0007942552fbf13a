package terminal

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"golang.org/x/sys/unix"
)

// TerminationSignals are the signals that end a session.
var TerminationSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// SignalWatcher records the first termination signal and wakes the event
// loop. It never touches the terminal itself.
type SignalWatcher struct {
	ch   chan os.Signal
	done chan struct{}
	once sync.Once

	mu   sync.Mutex
	wake func()

	sig atomic.Int32
}

// WatchSignals starts watching sigs. An empty list means
// TerminationSignals. wake, if non-nil, is called from the watcher
// goroutine after each signal.
//
// Start watching before the terminal is changed so that no signal can end
// the process with the terminal still modified; the event loop supplies
// wake later through SetWake.
func WatchSignals(wake func(), sigs ...os.Signal) *SignalWatcher {
	if len(sigs) == 0 {
		sigs = TerminationSignals
	}
	w := &SignalWatcher{
		ch:   make(chan os.Signal, 1),
		wake: wake,
		done: make(chan struct{}),
	}
	signal.Notify(w.ch, sigs...)
	go w.loop()
	return w
}

func (w *SignalWatcher) loop() {
	for {
		select {
		case s := <-w.ch:
			w.mu.Lock()
			if sig, ok := s.(syscall.Signal); ok {
				w.sig.CompareAndSwap(0, int32(sig))
			}
			wake := w.wake
			w.mu.Unlock()
			if wake != nil {
				wake()
			}
		case <-w.done:
			return
		}
	}
}

// SetWake replaces the wake function. If a signal is already pending, wake
// is called once right away.
func (w *SignalWatcher) SetWake(wake func()) {
	w.mu.Lock()
	w.wake = wake
	_, pending := w.Pending()
	w.mu.Unlock()
	if pending && wake != nil {
		wake()
	}
}

// Pending returns the first signal received, if any.
func (w *SignalWatcher) Pending() (syscall.Signal, bool) {
	s := w.sig.Load()
	return syscall.Signal(s), s != 0
}

// Stop stops delivery to the watcher. It is safe to call more than once.
func (w *SignalWatcher) Stop() {
	w.once.Do(func() {
		signal.Stop(w.ch)
		close(w.done)
	})
}

// Reraise restores the default disposition of sig and sends it to the
// current process.
func Reraise(sig syscall.Signal) error {
	signal.Reset(sig)
	return unix.Kill(unix.Getpid(), sig)
}
