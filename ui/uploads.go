package ui

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"statreport/domain/core"
	"statreport/domain/dataset"
	"statreport/internal"
)

// Upload is one parsed spreadsheet held in memory between requests.
type Upload struct {
	ID        core.ID
	Name      string
	Hash      core.Hash
	Size      int
	Dataset   *dataset.Dataset
	CreatedAt time.Time
	LastUsed  time.Time
}

// UploadStore keeps uploads for a sliding TTL. Every read refreshes the
// entry; Sweep drops the ones nobody touched for longer than the TTL.
type UploadStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[core.ID]*Upload
	now     func() time.Time
	logger  *internal.Logger
}

// NewUploadStore creates an empty store.
func NewUploadStore(ttl time.Duration, logger *internal.Logger) *UploadStore {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &UploadStore{
		ttl:     ttl,
		entries: make(map[core.ID]*Upload),
		now:     time.Now,
		logger:  logger.Named("Uploads"),
	}
}

// Put stores a parsed dataset and returns its record.
func (s *UploadStore) Put(name string, raw []byte, ds *dataset.Dataset) Upload {
	now := s.now()
	u := &Upload{
		ID:        core.NewID(),
		Name:      name,
		Hash:      core.NewHash(raw),
		Size:      len(raw),
		Dataset:   ds,
		CreatedAt: now,
		LastUsed:  now,
	}

	s.mu.Lock()
	s.entries[u.ID] = u
	s.mu.Unlock()

	s.logger.Info("stored %s as %s (%d bytes, hash %s)", name, u.ID, u.Size, u.Hash.Short())
	return *u
}

// Get returns an upload and refreshes its expiry.
func (s *UploadStore) Get(id core.ID) (Upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.entries[id]
	if !ok || s.expired(u) {
		delete(s.entries, id)
		return Upload{}, uploadNotFound(id)
	}
	u.LastUsed = s.now()
	return *u, nil
}

// Delete removes an upload.
func (s *UploadStore) Delete(id core.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return uploadNotFound(id)
	}
	delete(s.entries, id)
	return nil
}

// List returns live uploads, most recent first.
func (s *UploadStore) List() []Upload {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Upload, 0, len(s.entries))
	for _, u := range s.entries {
		if !s.expired(u) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Len returns the number of stored uploads, expired ones included.
func (s *UploadStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep evicts expired uploads and returns how many were dropped.
func (s *UploadStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, u := range s.entries {
		if s.expired(u) {
			delete(s.entries, id)
			n++
		}
	}
	if n > 0 {
		s.logger.Debug("evicted %d expired uploads", n)
	}
	return n
}

// Run sweeps on every tick until ctx is cancelled.
func (s *UploadStore) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *UploadStore) expired(u *Upload) bool {
	return s.ttl > 0 && s.now().Sub(u.LastUsed) > s.ttl
}

func uploadNotFound(id core.ID) error {
	return fmt.Errorf("%w: %s", core.ErrUploadNotFound, id)
}
