package mint

import (
	"context"
	"sort"
	"sync"

	"gebo/chains"
	"gebo/types"
)

// Registry stores mint records. A video is claimed by one record id before
// its record is saved; later claims by other ids fail.
type Registry interface {
	Claim(ctx context.Context, videoID, recordID string) (bool, error)
	Release(ctx context.Context, videoID, recordID string) error
	Save(ctx context.Context, rec types.MintRecord) error
	ByOwner(ctx context.Context, owner string) ([]types.MintRecord, error)
	ByVideo(ctx context.Context, videoID string) (types.MintRecord, bool, error)
}

// MemoryRegistry is a process-local Registry
type MemoryRegistry struct {
	mu      sync.RWMutex
	records map[string]types.MintRecord
	owners  map[string][]string
	videos  map[string]string
}

// NewMemoryRegistry creates an empty registry
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		records: make(map[string]types.MintRecord),
		owners:  make(map[string][]string),
		videos:  make(map[string]string),
	}
}

// Claim reserves videoID for recordID. Claiming again with the same record id
// succeeds.
func (r *MemoryRegistry) Claim(ctx context.Context, videoID, recordID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.videos[videoID]; ok {
		return id == recordID, nil
	}
	r.videos[videoID] = recordID
	return true, nil
}

// Release drops a claim held by recordID
func (r *MemoryRegistry) Release(ctx context.Context, videoID, recordID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.videos[videoID] == recordID {
		delete(r.videos, videoID)
	}
	return nil
}

// Save stores rec. Saving the same record id again replaces it.
func (r *MemoryRegistry) Save(ctx context.Context, rec types.MintRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner := chains.NormalizeAddress(rec.Owner)
	if _, seen := r.records[rec.ID]; !seen {
		r.owners[owner] = append(r.owners[owner], rec.ID)
	}
	r.records[rec.ID] = rec
	r.videos[rec.VideoID] = rec.ID
	return nil
}

func (r *MemoryRegistry) ByOwner(ctx context.Context, owner string) ([]types.MintRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.owners[chains.NormalizeAddress(owner)]
	out := make([]types.MintRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.records[id])
	}
	sortRecords(out)
	return out, nil
}

func (r *MemoryRegistry) ByVideo(ctx context.Context, videoID string) (types.MintRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[r.videos[videoID]]
	return rec, ok, nil
}

// sortRecords orders newest first
func sortRecords(recs []types.MintRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].CreatedAt.After(recs[j].CreatedAt)
		}
		return recs[i].ID < recs[j].ID
	})
}
