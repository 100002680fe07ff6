package usecase

import (
	"sort"

	"github.com/bujinkan-tools/densho/internal/core/domain"
	"github.com/bujinkan-tools/densho/internal/core/ports"
)

// RerankOptions tune the pass between vector search and prompt
// assembly. Bonuses and the weak threshold come from the routing
// rules; zero integers fall back to curriculum defaults.
type RerankOptions struct {
	TopK            int
	OverfetchFactor int
	BonusP1         float64
	BonusP2         float64
	BonusP3         float64
	WeakThreshold   float64
}

func (o RerankOptions) normalize() RerankOptions {
	if o.TopK <= 0 {
		o.TopK = 5
	}
	if o.OverfetchFactor <= 0 {
		o.OverfetchFactor = 3
	}
	return o
}

// Reranker orders overfetched hits by tier-adjusted score. Rank
// questions additionally get the authoritative rank chunks prepended
// regardless of their similarity, so the model always sees the sheet
// it must quote from.
type Reranker struct {
	store ports.ChunkStore
	opts  RerankOptions
}

func NewReranker(store ports.ChunkStore, opts RerankOptions) *Reranker {
	return &Reranker{store: store, opts: opts.normalize()}
}

// OverfetchK widens a topK request for the search call, capped by the
// index size.
func (r *Reranker) OverfetchK(topK, indexSize int) int {
	if topK <= 0 {
		topK = r.opts.TopK
	}
	k := topK * r.opts.OverfetchFactor
	if k > indexSize {
		k = indexSize
	}
	if k < 0 {
		k = 0
	}
	return k
}

// Rerank adjusts scores by category tier, injects rank chunks when the
// question names a rank, dedupes by chunk id with injected chunks
// winning, caps the set to topK, and flags weak retrieval when the
// best search candidate sits under the threshold.
func (r *Reranker) Rerank(q domain.NormalizedQuery, hits []domain.SearchHit, topK int) (domain.ContextSet, error) {
	if topK <= 0 {
		topK = r.opts.TopK
	}

	rawByID := make(map[int]float64, len(hits))
	chunkByID := make(map[int]domain.Chunk, len(hits))
	candidates := make([]domain.RetrievalCandidate, 0, len(hits))
	for _, h := range hits {
		chunk, err := r.store.Get(h.ChunkID)
		if err != nil {
			return domain.ContextSet{}, domain.WrapError(domain.ErrCorpusMisaligned, "rerank.resolve_chunk", err)
		}
		tier := domain.TierFor(chunk.Category)
		candidates = append(candidates, domain.RetrievalCandidate{
			ChunkID:  h.ChunkID,
			RawScore: h.Score,
			Tier:     tier,
			Adjusted: h.Score + r.bonusFor(tier),
		})
		rawByID[h.ChunkID] = h.Score
		chunkByID[h.ChunkID] = chunk
	}

	// Stable sort keeps search order for equal adjusted scores, so a
	// fixed hit list always reranks the same way.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Adjusted > candidates[j].Adjusted
	})

	weak := len(candidates) == 0 || candidates[0].Adjusted < r.opts.WeakThreshold

	out := make([]domain.ContextChunk, 0, topK)
	seen := make(map[int]bool, topK)

	if q.RankTerm != nil {
		for _, id := range r.store.IDsByCategory(domain.CategoryRank) {
			if len(out) == topK {
				break
			}
			if seen[id] {
				continue
			}
			chunk, err := r.store.Get(id)
			if err != nil {
				return domain.ContextSet{}, domain.WrapError(domain.ErrCorpusMisaligned, "rerank.inject_rank_chunk", err)
			}
			seen[id] = true
			out = append(out, domain.ContextChunk{Chunk: chunk, Score: rawByID[id], Injected: true})
		}
	}

	for _, c := range candidates {
		if len(out) == topK {
			break
		}
		if seen[c.ChunkID] {
			continue
		}
		seen[c.ChunkID] = true
		out = append(out, domain.ContextChunk{Chunk: chunkByID[c.ChunkID], Score: c.Adjusted, Injected: false})
	}

	return domain.ContextSet{Chunks: out, Weak: weak}, nil
}

func (r *Reranker) bonusFor(t domain.Tier) float64 {
	switch t {
	case domain.TierP1:
		return r.opts.BonusP1
	case domain.TierP2:
		return r.opts.BonusP2
	default:
		return r.opts.BonusP3
	}
}
