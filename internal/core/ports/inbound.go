package ports

import (
	"context"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

// QueryService is the inbound contract for answering curriculum questions.
type QueryService interface {
	Answer(ctx context.Context, question string, topK int) (*domain.Response, error)
}

// BuildReport summarizes one corpus build.
type BuildReport struct {
	Files   int
	Chunks  int
	Vectors int
}

// CorpusBuilder is the inbound contract for building the corpus artifacts.
type CorpusBuilder interface {
	Build(ctx context.Context, sourceDir string) (*BuildReport, error)
}
