package chromem

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"

	chromemgo "github.com/philippgille/chromem-go"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

const collectionName = "curriculum"

// Index stores chunk vectors in an embedded chromem collection and
// serves both ingestion writes and query-time similarity search.
// Document IDs are the stringified chunk IDs, keeping the 1:1 mapping
// to the chunk corpus explicit.
type Index struct {
	db   *chromemgo.DB
	coll *chromemgo.Collection
}

// precomputedOnly hard-stops chromem from embedding anything itself;
// every vector is computed upstream and passed in explicitly.
func precomputedOnly(context.Context, string) ([]float32, error) {
	return nil, errors.New("index stores precomputed embeddings only")
}

// Open loads or creates the persistent index under dir.
func Open(dir string) (*Index, error) {
	db, err := chromemgo.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("open vector db: %w", err)
	}
	return newIndex(db)
}

// NewInMemory builds an unpersisted index for tests.
func NewInMemory() (*Index, error) {
	return newIndex(chromemgo.NewDB())
}

func newIndex(db *chromemgo.DB) (*Index, error) {
	coll, err := db.GetOrCreateCollection(collectionName, nil, precomputedOnly)
	if err != nil {
		return nil, fmt.Errorf("open collection: %w", err)
	}
	return &Index{db: db, coll: coll}, nil
}

func (i *Index) Count() int {
	return i.coll.Count()
}

// Search returns up to k hits ordered by descending similarity. k is
// clamped to the collection size because chromem rejects nResults
// beyond it; an empty index yields no hits rather than an error.
func (i *Index) Search(ctx context.Context, queryVector []float32, k int) ([]domain.SearchHit, error) {
	if n := i.coll.Count(); k > n {
		k = n
	}
	if k <= 0 {
		return nil, nil
	}

	results, err := i.coll.QueryEmbedding(ctx, queryVector, k, nil, nil)
	if err != nil {
		return nil, domain.WrapError(domain.ErrIndexUnavailable, "query vector index", err)
	}

	hits := make([]domain.SearchHit, 0, len(results))
	for _, r := range results {
		id, err := strconv.Atoi(r.ID)
		if err != nil {
			return nil, domain.WrapError(domain.ErrCorpusMisaligned, "query vector index",
				fmt.Errorf("non-numeric document id %q", r.ID))
		}
		hits = append(hits, domain.SearchHit{ChunkID: id, Score: float64(r.Similarity)})
	}
	return hits, nil
}

// Reset drops and recreates the collection ahead of a rebuild.
func (i *Index) Reset(context.Context) error {
	if err := i.db.DeleteCollection(collectionName); err != nil {
		return fmt.Errorf("drop collection: %w", err)
	}
	coll, err := i.db.CreateCollection(collectionName, nil, precomputedOnly)
	if err != nil {
		return fmt.Errorf("recreate collection: %w", err)
	}
	i.coll = coll
	return nil
}

func (i *Index) Add(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return domain.WrapError(domain.ErrCorpusMisaligned, "index chunks",
			fmt.Errorf("%d chunks, %d vectors", len(chunks), len(vectors)))
	}
	if len(chunks) == 0 {
		return nil
	}

	docs := make([]chromemgo.Document, len(chunks))
	for idx, ch := range chunks {
		docs[idx] = chromemgo.Document{
			ID:        strconv.Itoa(ch.ID),
			Content:   ch.Text,
			Embedding: vectors[idx],
			Metadata: map[string]string{
				"source":   ch.Source,
				"category": string(ch.Category),
			},
		}
	}
	if err := i.coll.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("add documents: %w", err)
	}
	return nil
}
