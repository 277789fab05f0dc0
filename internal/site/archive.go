package site

import (
	"context"
	"sync"
)

// ArchiveEntry records one distinct document the loader has seen. Entries are
// keyed by canonical digest, so refetching an unchanged artifact is a no-op.
type ArchiveEntry struct {
	Digest      string `json:"digest"`
	GeneratedAt string `json:"generated_at"`
	Revision    string `json:"revision,omitempty"`
	FetchedAt   string `json:"fetched_at"`
	KernelCount int    `json:"kernel_count"`
}

type Archive interface {
	Record(ctx context.Context, entry ArchiveEntry, payload []byte) error
	List(ctx context.Context, limit int) ([]ArchiveEntry, error)
}

// MemoryArchive keeps entries in process memory. It backs the server when no
// database is configured, and the tests.
type MemoryArchive struct {
	mu      sync.RWMutex
	entries []ArchiveEntry
	seen    map[string]bool
}

func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{seen: map[string]bool{}}
}

func (a *MemoryArchive) Record(ctx context.Context, entry ArchiveEntry, payload []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.seen[entry.Digest] {
		return nil
	}
	a.seen[entry.Digest] = true
	a.entries = append(a.entries, entry)
	return nil
}

// List returns entries most recent first.
func (a *MemoryArchive) List(ctx context.Context, limit int) ([]ArchiveEntry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]ArchiveEntry, 0, len(a.entries))
	for i := len(a.entries) - 1; i >= 0; i-- {
		out = append(out, a.entries[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
