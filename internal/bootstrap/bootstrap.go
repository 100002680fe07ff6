package bootstrap

import (
	"fmt"
	"time"

	"github.com/bujinkan-tools/densho/internal/config"
	"github.com/bujinkan-tools/densho/internal/core/domain"
	"github.com/bujinkan-tools/densho/internal/core/ports"
	"github.com/bujinkan-tools/densho/internal/core/usecase"
	"github.com/bujinkan-tools/densho/internal/infrastructure/corpus"
	"github.com/bujinkan-tools/densho/internal/infrastructure/curriculum"
	embedding "github.com/bujinkan-tools/densho/internal/infrastructure/embedding/ollama"
	"github.com/bujinkan-tools/densho/internal/infrastructure/ingest"
	"github.com/bujinkan-tools/densho/internal/infrastructure/llm/openai"
	"github.com/bujinkan-tools/densho/internal/infrastructure/resilience"
	"github.com/bujinkan-tools/densho/internal/infrastructure/vector/chromem"
)

// App wires the serving pipeline: corpus artifacts, curriculum records,
// the extractor chain and the retrieval path behind one QueryService.
type App struct {
	Config config.Config
	Rules  config.Rules
	Query  ports.QueryService
	Store  ports.ChunkStore
	Index  ports.VectorIndex
}

// New loads the build artifacts and assembles the query pipeline. The
// chunk corpus and the vector index must agree 1:1 on entry count; drift
// means they came from different builds and every citation would point
// at the wrong text, so startup fails instead.
func New(cfg config.Config) (*App, error) {
	rules, err := config.LoadRules(cfg.RoutingRulesPath)
	if err != nil {
		return nil, fmt.Errorf("load routing rules: %w", err)
	}

	store, err := corpus.Load(corpus.Path(cfg.IndexDir))
	if err != nil {
		return nil, fmt.Errorf("load chunk corpus: %w", err)
	}

	index, err := chromem.Open(cfg.IndexDir)
	if err != nil {
		return nil, fmt.Errorf("open vector index: %w", err)
	}

	if store.Count() != index.Count() {
		return nil, domain.WrapError(domain.ErrCorpusMisaligned, "bootstrap",
			fmt.Errorf("corpus has %d chunks but index has %d vectors, rebuild with the ingest command", store.Count(), index.Count()))
	}

	curr, err := curriculum.Load(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("load curriculum records: %w", err)
	}

	norm := usecase.NewNormalizer(rules.Synonyms)
	registry := usecase.NewRegistry(
		usecase.NewRankExtractor(curr.Ranks),
		usecase.NewKihonExtractor(curr.Kihon),
		usecase.NewSanshinExtractor(curr.Sanshin),
		usecase.NewSchoolsExtractor(norm, curr.Schools),
		usecase.NewWeaponsExtractor(norm, curr.Weapons),
		usecase.NewKyushoExtractor(norm, curr.Kyusho),
		usecase.NewTechniqueExtractor(norm, curr.Techniques, rules.TechniqueAliases),
		usecase.NewGlossaryExtractor(norm, curr.Glossary, curr.Techniques),
	)

	reranker := usecase.NewReranker(store, usecase.RerankOptions{
		TopK:            cfg.TopK,
		OverfetchFactor: cfg.OverfetchFactor,
		BonusP1:         rules.TierBonuses.P1,
		BonusP2:         rules.TierBonuses.P2,
		BonusP3:         rules.TierBonuses.P3,
		WeakThreshold:   rules.WeakThreshold,
	})

	generator := openai.New(
		cfg.LLMBaseURL,
		cfg.LLMAPIKey,
		cfg.LLMModel,
		time.Duration(cfg.LLMTimeoutSeconds)*time.Second,
		resilience.NewExecutor(resilience.GenerationPolicy()),
	)

	query := usecase.NewQueryUseCase(
		norm,
		registry,
		reranker,
		usecase.NewAssembler(),
		newEmbedder(cfg),
		index,
		generator,
		domain.GenerationParams{Temperature: cfg.LLMTemperature, MaxTokens: cfg.LLMMaxTokens},
	)

	return &App{
		Config: cfg,
		Rules:  rules,
		Query:  query,
		Store:  store,
		Index:  index,
	}, nil
}

// NewIngest assembles the corpus build pipeline for the ingest command.
func NewIngest(cfg config.Config) (ports.CorpusBuilder, error) {
	index, err := chromem.Open(cfg.IndexDir)
	if err != nil {
		return nil, fmt.Errorf("open vector index: %w", err)
	}

	return usecase.NewBuildCorpusUseCase(
		ingest.NewDirSource(),
		ingest.NewFileReader(),
		ingest.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap),
		newEmbedder(cfg),
		index,
		corpus.NewWriter(cfg.IndexDir),
	), nil
}

func newEmbedder(cfg config.Config) ports.Embedder {
	return embedding.New(
		cfg.OllamaURL,
		cfg.EmbedModel,
		cfg.EmbedDimensions,
		resilience.NewExecutor(resilience.EmbeddingPolicy()),
	)
}
