package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bujinkan-tools/densho/internal/core/domain"
	"github.com/bujinkan-tools/densho/internal/core/ports"
)

// QueryUseCase runs the answer pipeline: normalize the question, give
// the deterministic extractor chain first refusal, and only when every
// extractor declines fall back to embed, search, rerank and generate.
type QueryUseCase struct {
	normalizer *Normalizer
	registry   *Registry
	reranker   *Reranker
	assembler  *Assembler
	embedder   ports.Embedder
	index      ports.VectorIndex
	generator  ports.AnswerGenerator
	params     domain.GenerationParams
}

func NewQueryUseCase(
	normalizer *Normalizer,
	registry *Registry,
	reranker *Reranker,
	assembler *Assembler,
	embedder ports.Embedder,
	index ports.VectorIndex,
	generator ports.AnswerGenerator,
	params domain.GenerationParams,
) *QueryUseCase {
	return &QueryUseCase{
		normalizer: normalizer,
		registry:   registry,
		reranker:   reranker,
		assembler:  assembler,
		embedder:   embedder,
		index:      index,
		generator:  generator,
		params:     params,
	}
}

func (uc *QueryUseCase) Answer(ctx context.Context, question string, topK int) (*domain.Response, error) {
	started := time.Now()

	if strings.TrimSpace(question) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "answer question", fmt.Errorf("empty question"))
	}

	q := uc.normalizer.Normalize(question)

	// Deterministic answers skip embedding, search and generation
	// entirely. External services are never touched on this path.
	if res := uc.registry.Route(q); res.Answered {
		return uc.assembler.Deterministic(res, time.Since(started)), nil
	}

	set, err := uc.retrieve(ctx, q, topK)
	if err != nil {
		return nil, err
	}

	answer, err := uc.generate(ctx, q.Raw, set)
	if err != nil {
		return nil, err
	}

	return uc.assembler.Grounded(answer, set, time.Since(started)), nil
}

// retrieve embeds the raw question, overfetches the index and reranks
// the hits into a generation context. An empty index yields an empty,
// weak context rather than an error so the pipeline degrades to a
// flagged general answer.
func (uc *QueryUseCase) retrieve(ctx context.Context, q domain.NormalizedQuery, topK int) (domain.ContextSet, error) {
	vector, err := uc.embedder.EmbedQuery(ctx, q.Raw)
	if err != nil {
		return domain.ContextSet{}, fmt.Errorf("embed query: %w", err)
	}

	var hits []domain.SearchHit
	if k := uc.reranker.OverfetchK(topK, uc.index.Count()); k > 0 {
		hits, err = uc.index.Search(ctx, vector, k)
		if err != nil {
			return domain.ContextSet{}, fmt.Errorf("search index: %w", err)
		}
	}

	set, err := uc.reranker.Rerank(q, hits, topK)
	if err != nil {
		return domain.ContextSet{}, fmt.Errorf("rerank hits: %w", err)
	}
	return set, nil
}

func (uc *QueryUseCase) generate(ctx context.Context, question string, set domain.ContextSet) (string, error) {
	answer, err := uc.generator.Generate(ctx, uc.assembler.Prompt(question, set), uc.params)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", domain.WrapError(domain.ErrGeneration, "generate answer", fmt.Errorf("model returned empty text"))
	}
	return answer, nil
}
