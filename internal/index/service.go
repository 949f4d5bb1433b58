package index

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/mordilloSan/go-logger/logger"

	"spyglass/internal/progress"
	"spyglass/internal/search"
	"spyglass/internal/store"
	"spyglass/internal/walker"
)

// Config holds the service configuration.
type Config struct {
	// Root is the directory to index. Empty means HomeDir().
	Root       string
	SkipHidden bool
	Skip       walker.SkipSet
	// Limit caps search results; 0 or above search.DefaultLimit means
	// search.DefaultLimit.
	Limit int
	// List and HomeDir default to os.ReadDir and os.UserHomeDir.
	List    walker.ListFunc
	HomeDir func() (string, error)
}

// CompletionFunc is called when a build finishes with the final entry count.
type CompletionFunc func(total int)

// Service owns the live index, its progress and the state of the one
// build that may be in flight. It is the public API for building,
// loading and searching.
type Service struct {
	cfg     Config
	store   *store.IndexStore
	tracker *progress.Tracker

	running atomic.Bool

	mu        sync.Mutex
	observers []CompletionFunc
	done      chan struct{}
	cancel    context.CancelFunc
}

// New creates a service over st.
func New(cfg Config, st *store.IndexStore) *Service {
	if cfg.HomeDir == nil {
		cfg.HomeDir = os.UserHomeDir
	}
	if cfg.Limit <= 0 || cfg.Limit > search.DefaultLimit {
		cfg.Limit = search.DefaultLimit
	}
	closed := make(chan struct{})
	close(closed)
	return &Service{
		cfg:     cfg,
		store:   st,
		tracker: progress.NewTracker(),
		done:    closed,
	}
}

// StartIndexBuild starts a build in the background and returns at once.
// It reports false, and does nothing, when a build is already running.
func (s *Service) StartIndexBuild() bool {
	// Admission, the progress reset and publishing done happen under mu so
	// Wait and LoadPersistedIndex never see a half-started build.
	s.mu.Lock()
	if !s.running.CompareAndSwap(false, true) {
		s.mu.Unlock()
		logger.Debugf("index build already running, request dropped")
		return false
	}

	s.tracker.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.done = done
	s.cancel = cancel
	s.mu.Unlock()

	go s.build(ctx, cancel, done)
	return true
}

// Running reports whether a build is in flight.
func (s *Service) Running() bool {
	return s.running.Load()
}

// Wait blocks until the current build, if any, has finished.
func (s *Service) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel stops the in-flight build between directory visits. The entries
// gathered so far are still published.
func (s *Service) Cancel() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// OnComplete registers fn to be called after every finished build.
func (s *Service) OnComplete(fn CompletionFunc) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Progress returns a snapshot of the current or last build's progress.
func (s *Service) Progress() progress.Progress {
	return s.tracker.Snapshot()
}

// Search ranks query against the live generation.
func (s *Service) Search(query string) []store.Entry {
	return search.Search(s.store.Current(), query, s.cfg.Limit)
}

// IndexedCount returns the number of entries in the live generation.
func (s *Service) IndexedCount() int {
	return s.store.Count()
}

// LoadPersistedIndex makes the saved snapshot live. It returns false when
// there is none or it cannot be read; the live index is then unchanged.
func (s *Service) LoadPersistedIndex() bool {
	g, err := s.store.Load(context.Background())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.DebugKV("no saved index", "location", s.store.Location())
		} else {
			logger.WarnKV("saved index unreadable", "location", s.store.Location(), "error", err)
		}
		return false
	}
	s.mu.Lock()
	if !s.running.Load() {
		s.tracker.Restore(g.Len())
	}
	s.mu.Unlock()
	logger.InfoKV("loaded saved index", "entries", g.Len(), "generation", g.ID)
	return true
}

// Location describes where the index is persisted.
func (s *Service) Location() string {
	return s.store.Location()
}

func (s *Service) build(ctx context.Context, cancel context.CancelFunc, done chan struct{}) {
	defer close(done)
	defer cancel()

	w := walker.New(walker.Options{
		SkipHidden: s.cfg.SkipHidden,
		Skip:       s.cfg.Skip,
		List:       s.cfg.List,
		Progress:   s.tracker,
	})

	if root, err := s.root(); err != nil {
		logger.Errorf("index build: %v", err)
	} else {
		logger.InfoKV("index build started", "root", root, "skip_hidden", s.cfg.SkipHidden, "skip_dirs", s.cfg.Skip.Len())
		s.walk(ctx, w, root)
	}

	entries, lower := w.Result()
	g := store.NewGenerationWithCache(entries, lower)
	s.store.Swap(g)
	s.tracker.Complete(g.Len())

	if err := s.store.Save(context.Background(), g); err != nil {
		logger.WarnKV("index not saved", "location", s.store.Location(), "error", err)
	}

	s.running.Store(false)
	logger.InfoKV("index build complete", "entries", g.Len(), "generation", g.ID)
	s.notify(g.Len())
}

// walk runs the walker, turning a panic into a logged partial build.
func (s *Service) walk(ctx context.Context, w *walker.Walker, root string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("index build failed, keeping partial result: %v", r)
		}
	}()
	if err := w.Walk(ctx, root); err != nil {
		logger.WarnKV("index build stopped early", "root", root, "error", err)
	}
}

func (s *Service) root() (string, error) {
	if s.cfg.Root != "" {
		return s.cfg.Root, nil
	}
	home, err := s.cfg.HomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return home, nil
}

func (s *Service) notify(total int) {
	s.mu.Lock()
	observers := append([]CompletionFunc(nil), s.observers...)
	s.mu.Unlock()
	for _, fn := range observers {
		fn(total)
	}
}
