package store

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Backend names accepted by Open.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options selects and locates the durable backend.
type Options struct {
	Backend string
	// Dir holds backend files: <Dir>/badger or <Dir>/casebook.db.
	Dir    string
	Logger *log.Logger
}

// Fallback fronts a durable backend with an in-memory mirror. The first
// backend failure switches it to memory-only mode for the rest of the
// process; callers never see the error.
type Fallback struct {
	mu       sync.Mutex
	durable  Backend
	mem      *Memory
	logger   *log.Logger
	degraded bool
}

// NewFallback wraps durable. A nil durable starts out degraded.
func NewFallback(durable Backend, logger *log.Logger) *Fallback {
	return &Fallback{
		durable:  durable,
		mem:      NewMemory(),
		logger:   logger,
		degraded: durable == nil,
	}
}

// Open builds the configured backend. It never fails: when the backend cannot
// be opened the returned store is already in memory-only mode.
func Open(opts Options) *Fallback {
	backend, err := openBackend(opts)
	if err != nil {
		if opts.Logger != nil {
			opts.Logger.Warn("durable store unavailable, continuing in memory", "backend", opts.Backend, "err", err)
		}
		return NewFallback(nil, opts.Logger)
	}
	return NewFallback(backend, opts.Logger)
}

func openBackend(opts Options) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendBadger:
		return OpenBadger(BadgerConfig{
			Path:       filepath.Join(opts.Dir, "badger"),
			SyncWrites: true,
			Logger:     opts.Logger,
		})
	case BackendSQLite:
		return OpenSQLite(filepath.Join(opts.Dir, "casebook.db"))
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q: %w", opts.Backend, ErrUnavailable)
	}
}

// Degraded reports whether writes are no longer reaching the durable backend.
func (f *Fallback) Degraded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.degraded
}

func (f *Fallback) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.degraded {
		value, ok, err := f.durable.Load(key)
		if err == nil {
			if ok {
				f.mem.Set(key, value)
			} else {
				f.mem.Remove(key)
			}
			return value, ok
		}
		f.degrade("get", err)
	}
	return f.mem.Get(key)
}

func (f *Fallback) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mem.Set(key, value)
	if f.degraded {
		return
	}
	if err := f.durable.Save(key, value); err != nil {
		f.degrade("set", err)
	}
}

func (f *Fallback) Remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mem.Remove(key)
	if f.degraded {
		return
	}
	if err := f.durable.Delete(key); err != nil {
		f.degrade("remove", err)
	}
}

// Close releases the durable backend, if any.
func (f *Fallback) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.durable == nil {
		return nil
	}
	err := f.durable.Close()
	f.durable = nil
	f.degraded = true
	return err
}

// degrade must be called with f.mu held.
func (f *Fallback) degrade(op string, err error) {
	f.degraded = true
	if f.logger != nil {
		f.logger.Warn("durable store failed, continuing in memory", "op", op, "err", err)
	}
}
