package table

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// Repository serves immutable snapshots of the stock table and reloads
// when the source file's modification time changes. The reload swaps an
// atomic pointer; callers holding an older *Snapshot keep using it
// unaffected.
type Repository struct {
	path string

	snap   atomic.Pointer[Snapshot]
	reload sync.Mutex // serializes reloads, not reads
}

// NewRepository creates a repository for the given CSV path. The file
// is not read until the first Snapshot call.
func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// Path returns the source file path.
func (r *Repository) Path() string { return r.path }

// Snapshot returns the current table snapshot, reloading first if the
// source file changed since the snapshot was taken.
func (r *Repository) Snapshot() (*Snapshot, error) {
	info, err := os.Stat(r.path)
	if err != nil {
		// Source unavailable: serve the last good snapshot if we have one.
		if cur := r.snap.Load(); cur != nil {
			return cur, nil
		}
		return nil, fmt.Errorf("stat %s: %w", r.path, err)
	}

	if cur := r.snap.Load(); cur != nil && cur.ModTime().Equal(info.ModTime()) {
		return cur, nil
	}

	r.reload.Lock()
	defer r.reload.Unlock()

	// Another goroutine may have reloaded while we waited for the lock.
	if cur := r.snap.Load(); cur != nil && cur.ModTime().Equal(info.ModTime()) {
		return cur, nil
	}

	f, err := os.Open(r.path)
	if err != nil {
		if cur := r.snap.Load(); cur != nil {
			return cur, nil
		}
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()

	snap, err := parseCSV(f, info.ModTime())
	if err != nil {
		if cur := r.snap.Load(); cur != nil {
			return cur, nil
		}
		return nil, fmt.Errorf("load %s: %w", r.path, err)
	}

	r.snap.Store(snap)
	return snap, nil
}
