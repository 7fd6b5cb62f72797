package listings

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"
	"sync"

	"gebo/config"
	"gebo/types"
)

// Recommender ranks listings related to a given video
type Recommender struct {
	store    Store
	embedder EmbeddingsProvider

	mu    sync.Mutex
	cache map[string][]float32 // keyed by content hash
}

// NewRecommender creates a recommender. embedder may be nil, in which case
// only tag/category overlap is used.
func NewRecommender(store Store, embedder EmbeddingsProvider) *Recommender {
	return &Recommender{
		store:    store,
		embedder: embedder,
		cache:    make(map[string][]float32),
	}
}

type scored struct {
	video types.Video
	score float64
}

// Related returns up to n videos most similar to the video with the given ID
func (r *Recommender) Related(ctx context.Context, id string, n int) ([]types.Video, error) {
	if n <= 0 {
		n = config.DefaultRelatedCount
	}

	target, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	all, err := r.store.All(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]types.Video, 0, len(all))
	for _, v := range all {
		if v.ID != target.ID {
			candidates = append(candidates, v)
		}
	}

	var ranked []scored
	if r.embedder != nil {
		ranked, err = r.rankByEmbedding(ctx, target, candidates)
		if err != nil {
			log.Printf("Warning: embedding ranking failed, using tag overlap: %v", err)
			ranked = nil
		}
	}
	if ranked == nil {
		ranked = rankByOverlap(target, candidates)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].video.Views > ranked[j].video.Views
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]types.Video, len(ranked))
	for i, s := range ranked {
		out[i] = s.video
	}
	return out, nil
}

func (r *Recommender) rankByEmbedding(ctx context.Context, target types.Video, candidates []types.Video) ([]scored, error) {
	videos := append([]types.Video{target}, candidates...)
	vectors, err := r.embeddings(ctx, videos)
	if err != nil {
		return nil, err
	}

	out := make([]scored, len(candidates))
	for i, v := range candidates {
		out[i] = scored{video: v, score: cosine(vectors[0], vectors[i+1])}
	}
	return out, nil
}

// embeddings returns one vector per video, embedding only texts not already cached
func (r *Recommender) embeddings(ctx context.Context, videos []types.Video) ([][]float32, error) {
	keys := make([]string, len(videos))
	texts := make([]string, len(videos))
	for i, v := range videos {
		texts[i] = embeddingText(v)
		keys[i] = types.GenerateID(r.embedder.ModelName() + "\n" + texts[i])
	}

	r.mu.Lock()
	var missing []int
	for i, k := range keys {
		if _, ok := r.cache[k]; !ok {
			missing = append(missing, i)
		}
	}
	r.mu.Unlock()

	if len(missing) > 0 {
		batch := make([]string, len(missing))
		for j, i := range missing {
			batch[j] = texts[i]
		}
		vecs, err := r.embedder.EmbedTexts(ctx, batch)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		for j, i := range missing {
			r.cache[keys[i]] = vecs[j]
		}
		r.mu.Unlock()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]float32, len(keys))
	for i, k := range keys {
		out[i] = r.cache[k]
	}
	return out, nil
}

func embeddingText(v types.Video) string {
	return strings.Join([]string{v.Title, v.Description, v.Category, strings.Join(v.Tags, " ")}, "\n")
}

func rankByOverlap(target types.Video, candidates []types.Video) []scored {
	tags := make(map[string]bool, len(target.Tags))
	for _, t := range target.Tags {
		tags[strings.ToLower(t)] = true
	}

	out := make([]scored, len(candidates))
	for i, v := range candidates {
		score := 0.0
		for _, t := range v.Tags {
			if tags[strings.ToLower(t)] {
				score += 2
			}
		}
		if strings.EqualFold(v.Category, target.Category) {
			score++
		}
		if v.Creator != "" && strings.EqualFold(v.Creator, target.Creator) {
			score += 0.5
		}
		out[i] = scored{video: v, score: score}
	}
	return out
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
