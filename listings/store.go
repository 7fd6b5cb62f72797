package listings

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"gebo/config"
	"gebo/types"
)

// ErrNotFound is returned when no listing has the requested ID
var ErrNotFound = errors.New("video not found")

// Store is the listing persistence used by the API
type Store interface {
	List(ctx context.Context, q types.ListQuery) ([]types.Video, int, error)
	Get(ctx context.Context, id string) (types.Video, error)
	All(ctx context.Context) ([]types.Video, error)
	Upsert(ctx context.Context, v types.Video) error
	MarkMinted(ctx context.Context, id string, chainID int64, tokenID string) error
}

// MemoryStore keeps listings in process memory
type MemoryStore struct {
	mu     sync.RWMutex
	videos map[string]types.Video
}

// NewMemoryStore creates a store seeded with videos
func NewMemoryStore(seed []types.Video) *MemoryStore {
	s := &MemoryStore{videos: make(map[string]types.Video, len(seed))}
	for _, v := range seed {
		s.videos[v.ID] = v
	}
	return s
}

// NewMockStore creates a store seeded with the built-in catalog
func NewMockStore() *MemoryStore {
	return NewMemoryStore(Catalog())
}

func (s *MemoryStore) List(ctx context.Context, q types.ListQuery) ([]types.Video, int, error) {
	all, _ := s.All(ctx)
	page, total := Apply(all, q)
	return page, total, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (types.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.videos[id]
	if !ok {
		return types.Video{}, ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) All(ctx context.Context) ([]types.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Video, 0, len(s.videos))
	for _, v := range s.videos {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Upsert inserts or replaces a listing. Mint state of an existing listing is
// kept so re-imports don't clear it.
func (s *MemoryStore) Upsert(ctx context.Context, v types.Video) error {
	if strings.TrimSpace(v.ID) == "" {
		return errors.New("video id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.videos[v.ID]; ok && existing.Minted {
		v.Minted = true
		v.TokenID = existing.TokenID
		v.ChainID = existing.ChainID
	}
	s.videos[v.ID] = v
	return nil
}

func (s *MemoryStore) MarkMinted(ctx context.Context, id string, chainID int64, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.videos[id]
	if !ok {
		return ErrNotFound
	}
	v.Minted = true
	v.ChainID = chainID
	v.TokenID = tokenID
	s.videos[id] = v
	return nil
}

// NormalizeQuery clamps pagination and defaults the sort order
func NormalizeQuery(q types.ListQuery) types.ListQuery {
	if q.Limit <= 0 {
		q.Limit = config.DefaultPageSize
	}
	if q.Limit > config.MaxPageSize {
		q.Limit = config.MaxPageSize
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	switch q.Sort {
	case types.SortNewest, types.SortPopular, types.SortTrending, types.SortPriceAsc, types.SortPriceDesc:
	default:
		q.Sort = types.SortNewest
	}
	q.Query = strings.TrimSpace(q.Query)
	q.Category = strings.ToLower(strings.TrimSpace(q.Category))
	q.Creator = strings.ToLower(strings.TrimSpace(q.Creator))
	return q
}

// Apply filters, sorts and paginates videos. It returns the page and the
// number of matches before pagination.
func Apply(videos []types.Video, q types.ListQuery) ([]types.Video, int) {
	q = NormalizeQuery(q)
	terms := strings.Fields(strings.ToLower(q.Query))

	matched := make([]types.Video, 0, len(videos))
	for _, v := range videos {
		if matches(v, q, terms) {
			matched = append(matched, v)
		}
	}

	sort.SliceStable(matched, less(matched, q.Sort))

	total := len(matched)
	if q.Offset >= total {
		return []types.Video{}, total
	}
	end := q.Offset + q.Limit
	if end > total {
		end = total
	}
	return matched[q.Offset:end], total
}

func matches(v types.Video, q types.ListQuery, terms []string) bool {
	if q.Category != "" && strings.ToLower(v.Category) != q.Category {
		return false
	}
	if q.Creator != "" && strings.ToLower(v.Creator) != q.Creator && strings.ToLower(v.CreatorName) != q.Creator {
		return false
	}
	if q.Minted != nil && v.Minted != *q.Minted {
		return false
	}
	if len(terms) == 0 {
		return true
	}

	haystack := strings.ToLower(strings.Join(append([]string{v.Title, v.Description, v.CreatorName}, v.Tags...), " "))
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

func less(vs []types.Video, order string) func(i, j int) bool {
	// ID breaks ties so pages are stable across requests
	byID := func(i, j int) bool { return vs[i].ID < vs[j].ID }

	switch order {
	case types.SortPopular:
		return func(i, j int) bool {
			if vs[i].Views != vs[j].Views {
				return vs[i].Views > vs[j].Views
			}
			return byID(i, j)
		}
	case types.SortTrending:
		return func(i, j int) bool {
			si, sj := vs[i].EngagementScore(), vs[j].EngagementScore()
			if si != sj {
				return si > sj
			}
			return byID(i, j)
		}
	case types.SortPriceAsc:
		return func(i, j int) bool {
			if vs[i].PriceETH != vs[j].PriceETH {
				return vs[i].PriceETH < vs[j].PriceETH
			}
			return byID(i, j)
		}
	case types.SortPriceDesc:
		return func(i, j int) bool {
			if vs[i].PriceETH != vs[j].PriceETH {
				return vs[i].PriceETH > vs[j].PriceETH
			}
			return byID(i, j)
		}
	default:
		return func(i, j int) bool {
			if !vs[i].PublishedAt.Equal(vs[j].PublishedAt) {
				return vs[i].PublishedAt.After(vs[j].PublishedAt)
			}
			return byID(i, j)
		}
	}
}

// Categories returns the distinct categories, sorted
func Categories(videos []types.Video) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range videos {
		c := strings.ToLower(v.Category)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
