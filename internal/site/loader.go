package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"kernel-matrix/internal/report"
)

// Loader fetches the published result document and holds the current copy.
// Refresh is re-entrant; the most recently completed fetch wins, and a failed
// fetch leaves the previous document in place with the error recorded.
// Navigation never triggers a fetch.
type Loader struct {
	source  SourceConfig
	client  *http.Client
	obs     *Observability
	archive Archive

	mu        sync.RWMutex
	doc       *report.Document
	digest    string
	fetchedAt time.Time
	lastErr   string
}

// LoadStatus is a point-in-time snapshot of the loader.
type LoadStatus struct {
	Loaded      bool   `json:"loaded"`
	Digest      string `json:"digest,omitempty"`
	FetchedAt   string `json:"fetched_at,omitempty"`
	KernelCount int    `json:"kernel_count"`
	Error       string `json:"error,omitempty"`
}

func NewLoader(source SourceConfig, archive Archive, obs *Observability) *Loader {
	timeout := time.Duration(source.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Loader{
		source:  source,
		client:  &http.Client{Timeout: timeout},
		obs:     obs,
		archive: archive,
	}
}

// Current returns the installed document, or nil before the first successful
// fetch. The document is immutable once installed; callers read it freely.
func (l *Loader) Current() *report.Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.doc
}

func (l *Loader) Status() LoadStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()
	status := LoadStatus{
		Loaded: l.doc != nil,
		Digest: l.digest,
		Error:  l.lastErr,
	}
	if l.doc != nil {
		status.KernelCount = len(l.doc.Reports)
	}
	if !l.fetchedAt.IsZero() {
		status.FetchedAt = l.fetchedAt.UTC().Format(time.RFC3339)
	}
	return status
}

// Refresh fetches, validates, and installs a new document. Concurrent calls
// are safe; whichever completes last overwrites the installed copy.
func (l *Loader) Refresh(ctx context.Context) error {
	start := time.Now()
	data, err := l.fetch(ctx)
	if err != nil {
		return l.fail(ctx, start, err)
	}
	doc, err := report.DecodeDocument(data)
	if err != nil {
		return l.fail(ctx, start, err)
	}
	digest, err := report.Digest(data)
	if err != nil {
		return l.fail(ctx, start, fmt.Errorf("digest document: %w", err))
	}

	l.mu.Lock()
	l.doc = doc
	l.digest = digest
	l.fetchedAt = time.Now()
	l.lastErr = ""
	l.mu.Unlock()

	if l.archive != nil {
		entry := ArchiveEntry{
			Digest:      digest,
			GeneratedAt: doc.GeneratedAt,
			Revision:    doc.Revision,
			KernelCount: len(doc.Reports),
		}
		if err := l.archive.Record(ctx, entry, data); err != nil {
			slog.Warn("archive record failed", "digest", digest, "error", err)
		}
	}
	l.obs.MarkFetch(ctx, "ok", time.Since(start).Milliseconds())
	slog.Info("document installed", "digest", digest, "kernels", len(doc.Reports))
	return nil
}

func (l *Loader) fail(ctx context.Context, start time.Time, err error) error {
	l.mu.Lock()
	l.lastErr = err.Error()
	l.mu.Unlock()
	l.obs.MarkFetch(ctx, "error", time.Since(start).Milliseconds())
	slog.Warn("document refresh failed", "error", err)
	return err
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	url := strings.TrimSpace(l.source.URL)
	if url == "" {
		return nil, errors.New("source url not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch document: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, l.source.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if int64(len(data)) > l.source.MaxBytes {
		return nil, fmt.Errorf("document exceeds %d bytes", l.source.MaxBytes)
	}
	return data, nil
}
