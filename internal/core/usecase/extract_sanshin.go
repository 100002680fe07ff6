package usecase

import "github.com/bujinkan-tools/densho/internal/core/domain"

// SanshinExtractor lists the five Sanshin no Kata forms in their
// canonical element order.
type SanshinExtractor struct {
	names []string
}

func NewSanshinExtractor(forms []domain.SanshinForm) *SanshinExtractor {
	names := make([]string, 0, len(forms))
	for _, f := range forms {
		names = append(names, f.Name)
	}
	return &SanshinExtractor{names: names}
}

func (e *SanshinExtractor) Name() string { return "sanshin" }

func (e *SanshinExtractor) TryAnswer(q domain.NormalizedQuery) domain.ExtractorResult {
	triggered := q.HasToken("sanshin") || q.HasPhrase("san shin") ||
		((q.HasToken("five") || q.HasToken("5")) && (q.HasToken("elements") || q.HasToken("element")) && q.HasToken("kata"))
	if !triggered || len(e.names) == 0 {
		return domain.NoMatch()
	}
	return domain.Answered("deterministic/sanshin",
		"Sanshin no Kata consists of "+joinOxford(e.names)+".")
}
