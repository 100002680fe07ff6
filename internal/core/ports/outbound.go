package ports

import (
	"context"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

// Embedder builds vectors for chunk batches and single query strings.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex performs similarity search over the loaded corpus vectors.
type VectorIndex interface {
	Search(ctx context.Context, queryVector []float32, k int) ([]domain.SearchHit, error)
	Count() int
}

// VectorWriter builds the similarity index at ingestion time.
type VectorWriter interface {
	Reset(ctx context.Context) error
	Add(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error
	Count() int
}

// ChunkStore reads the immutable chunk corpus loaded at startup.
type ChunkStore interface {
	Get(id int) (domain.Chunk, error)
	Count() int
	IDsByCategory(category domain.Category) []int
}

// AnswerGenerator invokes the external generation service.
type AnswerGenerator interface {
	Generate(ctx context.Context, prompt string, params domain.GenerationParams) (string, error)
}

// CorpusSource enumerates and reads raw curriculum files for ingestion.
type CorpusSource interface {
	List(dir string) ([]string, error)
	Read(path string) ([]byte, error)
}

// SourceReader extracts plain text from one curriculum source file.
type SourceReader interface {
	Extract(path string, data []byte) (string, error)
}

// Chunker splits extracted text into retrieval-sized pieces.
type Chunker interface {
	Split(text string) []string
}

// CorpusWriter persists the chunk corpus produced by ingestion.
type CorpusWriter interface {
	SaveChunks(chunks []domain.Chunk) error
}
