package usecase

import "github.com/bujinkan-tools/densho/internal/core/domain"

// KihonExtractor answers Kihon Happo questions that carry no rank term
// from the canonical form listing. Rank-scoped kihon questions are
// handled earlier by the rank extractor.
type KihonExtractor struct {
	kosshi []string
	torite []string
}

func NewKihonExtractor(forms []domain.KihonForm) *KihonExtractor {
	e := &KihonExtractor{}
	for _, f := range forms {
		switch f.Set {
		case domain.KihonSetKosshi:
			e.kosshi = append(e.kosshi, f.Name)
		case domain.KihonSetTorite:
			e.torite = append(e.torite, f.Name)
		}
	}
	return e
}

func (e *KihonExtractor) Name() string { return "kihon" }

func (e *KihonExtractor) TryAnswer(q domain.NormalizedQuery) domain.ExtractorResult {
	if !q.HasPhrase("kihon happo") && !q.HasToken("kihon") && !q.HasToken("happo") {
		return domain.NoMatch()
	}
	if len(e.kosshi) == 0 || len(e.torite) == 0 {
		return domain.NoMatch()
	}
	text := "Kihon Happo consists of Kosshi Kihon Sanpo and Torite Goho. " +
		"Kosshi Kihon Sanpo: " + joinOxford(e.kosshi) + ". " +
		"Torite Goho: " + joinOxford(e.torite) + "."
	return domain.Answered("deterministic/kihon", text)
}
