package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bujinkan-tools/densho/internal/core/domain"
	"github.com/bujinkan-tools/densho/internal/core/ports"
)

// embedBatchSize bounds one embedding call during a corpus build.
const embedBatchSize = 32

// BuildCorpusUseCase turns a directory of curriculum files into the two
// retrieval artifacts: the chunk corpus and the vector index. Chunk IDs
// are assigned sequentially in file order, so the corpus and the index
// stay 1:1 by construction; any drift aborts the build.
type BuildCorpusUseCase struct {
	source   ports.CorpusSource
	reader   ports.SourceReader
	chunker  ports.Chunker
	embedder ports.Embedder
	vectors  ports.VectorWriter
	corpus   ports.CorpusWriter
}

func NewBuildCorpusUseCase(
	source ports.CorpusSource,
	reader ports.SourceReader,
	chunker ports.Chunker,
	embedder ports.Embedder,
	vectors ports.VectorWriter,
	corpus ports.CorpusWriter,
) *BuildCorpusUseCase {
	return &BuildCorpusUseCase{
		source:   source,
		reader:   reader,
		chunker:  chunker,
		embedder: embedder,
		vectors:  vectors,
		corpus:   corpus,
	}
}

func (uc *BuildCorpusUseCase) Build(ctx context.Context, sourceDir string) (*ports.BuildReport, error) {
	files, err := uc.source.List(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	if len(files) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "build corpus", fmt.Errorf("no source files in %s", sourceDir))
	}

	chunks, err := uc.collectChunks(files)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "build corpus", fmt.Errorf("sources produced no chunks"))
	}

	embeddings, err := uc.embedChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	if err := uc.writeArtifacts(ctx, chunks, embeddings); err != nil {
		return nil, err
	}

	return &ports.BuildReport{
		Files:   len(files),
		Chunks:  len(chunks),
		Vectors: len(embeddings),
	}, nil
}

// collectChunks reads, extracts and splits every source file. Files
// that extract to empty text are skipped, not fatal.
func (uc *BuildCorpusUseCase) collectChunks(files []string) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	for _, path := range files {
		data, err := uc.source.Read(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		text, err := uc.reader.Extract(path, data)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", path, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		source := filepath.Base(path)
		category := domain.CategoryForSource(source)
		for _, piece := range uc.chunker.Split(text) {
			chunks = append(chunks, domain.Chunk{
				ID:       len(chunks),
				Text:     piece,
				Source:   source,
				Category: category,
			})
		}
	}
	return chunks, nil
}

func (uc *BuildCorpusUseCase) embedChunks(ctx context.Context, chunks []domain.Chunk) ([][]float32, error) {
	embeddings := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, 0, end-start)
		for _, c := range chunks[start:end] {
			texts = append(texts, c.Text)
		}

		batch, err := uc.embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed chunks %d..%d: %w", start, end-1, err)
		}
		if len(batch) != len(texts) {
			return nil, domain.WrapError(domain.ErrCorpusMisaligned, "embed chunks",
				fmt.Errorf("vectors/texts mismatch: %d/%d", len(batch), len(texts)))
		}
		embeddings = append(embeddings, batch...)
	}
	return embeddings, nil
}

// writeArtifacts rebuilds the vector index, verifies the 1:1 alignment
// and only then persists the chunk corpus, so a failed index write
// never leaves a corpus pointing at stale vectors.
func (uc *BuildCorpusUseCase) writeArtifacts(ctx context.Context, chunks []domain.Chunk, embeddings [][]float32) error {
	if len(embeddings) != len(chunks) {
		return domain.WrapError(domain.ErrCorpusMisaligned, "write artifacts",
			fmt.Errorf("vectors/chunks mismatch: %d/%d", len(embeddings), len(chunks)))
	}

	if err := uc.vectors.Reset(ctx); err != nil {
		return fmt.Errorf("reset vector index: %w", err)
	}
	if err := uc.vectors.Add(ctx, chunks, embeddings); err != nil {
		return fmt.Errorf("write vector index: %w", err)
	}
	if got := uc.vectors.Count(); got != len(chunks) {
		return domain.WrapError(domain.ErrCorpusMisaligned, "write artifacts",
			fmt.Errorf("index holds %d vectors for %d chunks", got, len(chunks)))
	}

	if err := uc.corpus.SaveChunks(chunks); err != nil {
		return fmt.Errorf("save chunk corpus: %w", err)
	}
	return nil
}
