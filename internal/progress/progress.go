package progress

import "sync"

// Progress describes an in-flight or most recently finished build.
// TotalFolders is an estimate: it grows as subdirectories are discovered,
// and not every discovered directory is guaranteed to open.
type Progress struct {
	TotalFolders   int    `json:"total_folders"`
	IndexedFolders int    `json:"indexed_folders"`
	TotalFiles     int    `json:"total_files"`
	CurrentFolder  string `json:"current_folder"`
	IsComplete     bool   `json:"is_complete"`
}

// Tracker holds the live Progress. One build writes it; any number of
// goroutines may read it through Snapshot.
type Tracker struct {
	mu sync.RWMutex
	p  Progress
}

// NewTracker returns a tracker in the idle state.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Snapshot returns a copy of the current progress. Later writes never
// touch a returned value.
func (t *Tracker) Snapshot() Progress {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.p
}

// Reset puts the tracker in the start-of-build state.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.p = Progress{TotalFolders: 1}
	t.mu.Unlock()
}

// FolderDiscovered counts a subdirectory queued for descent.
func (t *Tracker) FolderDiscovered() {
	t.mu.Lock()
	t.p.TotalFolders++
	t.mu.Unlock()
}

// FolderIndexed records that dir's listing finished with files entries
// gathered so far in the build.
func (t *Tracker) FolderIndexed(dir string, files int) {
	t.mu.Lock()
	t.p.IndexedFolders++
	t.p.CurrentFolder = dir
	t.p.TotalFiles = files
	t.mu.Unlock()
}

// FilesSeen refreshes the running entry count.
func (t *Tracker) FilesSeen(files int) {
	t.mu.Lock()
	t.p.TotalFiles = files
	t.mu.Unlock()
}

// Complete marks the build finished with an exact entry count.
func (t *Tracker) Complete(files int) {
	t.mu.Lock()
	t.p.TotalFiles = files
	t.p.IsComplete = true
	t.mu.Unlock()
}

// Restore reflects an index loaded from disk rather than built.
func (t *Tracker) Restore(files int) {
	t.mu.Lock()
	t.p = Progress{TotalFiles: files, IsComplete: true}
	t.mu.Unlock()
}
