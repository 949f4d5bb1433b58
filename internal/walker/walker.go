package walker

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mordilloSan/go-logger/logger"

	"spyglass/internal/store"
)

// filesRefreshEvery throttles mid-listing entry count updates.
const filesRefreshEvery = 100

// ListFunc lists the immediate children of dir.
type ListFunc func(dir string) ([]fs.DirEntry, error)

// Progress receives walk progress. progress.Tracker implements it.
type Progress interface {
	FolderDiscovered()
	FolderIndexed(dir string, files int)
	FilesSeen(files int)
}

// Options configures a walk.
type Options struct {
	// SkipHidden excludes names starting with "." entirely.
	SkipHidden bool
	// Skip names directories that are recorded but never descended into.
	Skip SkipSet
	// List defaults to os.ReadDir.
	List ListFunc
	// Progress may be nil.
	Progress Progress
}

// Walker gathers entries for one build. Result is valid at any point,
// including after a walk was interrupted.
type Walker struct {
	opts    Options
	entries []store.Entry
	lower   []string
}

// New returns a walker for opts.
func New(opts Options) *Walker {
	if opts.List == nil {
		opts.List = os.ReadDir
	}
	if opts.Progress == nil {
		opts.Progress = nopProgress{}
	}
	return &Walker{opts: opts}
}

// Walk lists root and all of its descendants depth first. A directory that
// cannot be listed is abandoned and the walk carries on. The only error
// returned is ctx's, checked between directories.
func Walk(ctx context.Context, root string, opts Options) ([]store.Entry, []string, error) {
	w := New(opts)
	err := w.Walk(ctx, root)
	entries, lower := w.Result()
	return entries, lower, err
}

// Walk runs the walk from root, appending to the walker's result.
func (w *Walker) Walk(ctx context.Context, root string) error {
	stack := []string{root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			logger.DebugKV("walk cancelled", "root", root, "entries", len(w.entries))
			return err
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		subdirs, ok := w.visit(dir)
		if !ok {
			continue
		}
		// Reverse push keeps listing order when popping.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}
	return nil
}

// Result returns the entries gathered so far and their lowercase names.
func (w *Walker) Result() ([]store.Entry, []string) {
	return w.entries, w.lower
}

func (w *Walker) visit(dir string) ([]string, bool) {
	children, err := w.opts.List(dir)
	if err != nil {
		logger.DebugKV("skipping unreadable directory", "path", dir, "error", err)
		return nil, false
	}

	parent := parentName(dir)
	var subdirs []string

	for _, child := range children {
		name := child.Name()
		if w.opts.SkipHidden && strings.HasPrefix(name, ".") {
			continue
		}

		path := filepath.Join(dir, name)
		isDir := child.IsDir()

		w.entries = append(w.entries, store.Entry{
			Name:         name,
			Path:         path,
			IsDirectory:  isDir,
			ParentFolder: parent,
		})
		w.lower = append(w.lower, strings.ToLower(name))

		if len(w.entries)%filesRefreshEvery == 0 {
			w.opts.Progress.FilesSeen(len(w.entries))
		}

		if isDir && !w.opts.Skip.Contains(name) {
			w.opts.Progress.FolderDiscovered()
			subdirs = append(subdirs, path)
		}
	}

	w.opts.Progress.FolderIndexed(dir, len(w.entries))
	return subdirs, true
}

func parentName(dir string) string {
	base := filepath.Base(dir)
	if base == string(filepath.Separator) || base == "." || base == "" {
		return store.RootMarker
	}
	return base
}

type nopProgress struct{}

func (nopProgress) FolderDiscovered()         {}
func (nopProgress) FolderIndexed(string, int) {}
func (nopProgress) FilesSeen(int)             {}
