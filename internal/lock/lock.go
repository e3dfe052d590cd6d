// Package lock serializes writes to a system directory across boshcf processes.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// errLocked is returned by tryLock when another process holds the lock.
var errLocked = errors.New("lock held")

// ErrBusy reports that another process holds the lock.
var ErrBusy = errors.New("operation already running")

// BusyError names the operation that is locked and, when the holder wrote
// one, its PID.
type BusyError struct {
	Operation string
	PID       int
}

func (e *BusyError) Error() string {
	if e.PID > 0 {
		return fmt.Sprintf("another %s operation is already running (pid %d)", e.Operation, e.PID)
	}
	return fmt.Sprintf("another %s operation is already running", e.Operation)
}

func (e *BusyError) Is(target error) bool { return target == ErrBusy }

// Lock is an exclusive, non-blocking lock on one operation of one system.
type Lock struct {
	operation string
	path      string
	file      *os.File
}

// New returns the lock for operation under systemDir/.boshcf/locks.
// Nothing is touched on disk until Acquire.
func New(systemDir, operation string) *Lock {
	return &Lock{
		operation: operation,
		path:      filepath.Join(systemDir, ".boshcf", "locks", operation+".lock"),
	}
}

// Path returns the lock file path.
func (l *Lock) Path() string { return l.path }

// Acquire takes the lock or returns a *BusyError if another process has it.
// The holder's PID is written into the lock file.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	if err := tryLock(f); err != nil {
		f.Close()
		if errors.Is(err, errLocked) {
			return &BusyError{Operation: l.operation, PID: holderPID(l.path)}
		}
		return fmt.Errorf("acquire %s lock: %w", l.operation, err)
	}

	if err := f.Truncate(0); err == nil {
		fmt.Fprintf(f, "%d\n", os.Getpid())
	}

	l.file = f
	return nil
}

// Release drops the lock and removes the lock file. Releasing a lock that
// is not held is a no-op.
func (l *Lock) Release() error {
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil

	if err := unlock(f); err != nil {
		f.Close()
		return fmt.Errorf("release %s lock: %w", l.operation, err)
	}
	f.Close()
	os.Remove(l.path)
	return nil
}

// holderPID reads the PID left by the current holder, or 0 if unknown.
func holderPID(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}

// WithLock runs fn while holding the operation lock for systemDir.
func WithLock(systemDir, operation string, fn func() error) error {
	l := New(systemDir, operation)
	if err := l.Acquire(); err != nil {
		return err
	}
	defer l.Release()

	return fn()
}
