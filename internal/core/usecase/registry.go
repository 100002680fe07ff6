package usecase

import "github.com/bujinkan-tools/densho/internal/core/domain"

// Extractor answers one family of curriculum questions from structured
// records, or declines so the next extractor gets a look.
type Extractor interface {
	Name() string
	TryAnswer(q domain.NormalizedQuery) domain.ExtractorResult
}

// Registry routes a normalized question through extractors in a fixed
// order. The first answer wins; an extractor whose trigger fires but
// whose records have no matching entity returns no match rather than a
// guess, and routing simply moves on.
type Registry struct {
	extractors []Extractor
}

func NewRegistry(extractors ...Extractor) *Registry {
	return &Registry{extractors: extractors}
}

// Route runs the chain and returns the first deterministic answer, or
// a no-match result when every extractor declines.
func (r *Registry) Route(q domain.NormalizedQuery) domain.ExtractorResult {
	for _, ex := range r.extractors {
		if res := ex.TryAnswer(q); res.Answered {
			return res
		}
	}
	return domain.NoMatch()
}

// Names lists the registered extractors in routing order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.extractors))
	for i, ex := range r.extractors {
		names[i] = ex.Name()
	}
	return names
}
