package usecase

import (
	"strings"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

const (
	kyushoPath    = "deterministic/kyusho"
	kyushoListCap = 20
)

// KyushoExtractor answers pressure point questions. A list request
// enumerates the known points; otherwise a point named in the question
// gets its description back.
type KyushoExtractor struct {
	points  []domain.KyushoPoint
	aliases []aliasPhrase
}

func NewKyushoExtractor(norm *Normalizer, points []domain.KyushoPoint) *KyushoExtractor {
	e := &KyushoExtractor{points: points}
	for i, p := range points {
		e.aliases = append(e.aliases, foldAliases(norm, i, p.Name, nil)...)
	}
	sortAliasesLongestFirst(e.aliases)
	return e
}

func (e *KyushoExtractor) Name() string { return "kyusho" }

func (e *KyushoExtractor) TryAnswer(q domain.NormalizedQuery) domain.ExtractorResult {
	if !q.HasToken("kyusho") && !q.HasPhrase("pressure point") && !q.HasPhrase("pressure points") {
		return domain.NoMatch()
	}
	if len(e.points) == 0 {
		return domain.NoMatch()
	}
	if q.HasToken("list") || (q.HasToken("what") && q.HasToken("points")) {
		return domain.Answered(kyushoPath, e.listAnswer())
	}
	if idx, ok := findAlias(q, e.aliases); ok {
		p := e.points[idx]
		desc := strings.TrimSpace(p.Description)
		if desc == "" {
			desc = "(description not listed)."
		}
		return domain.Answered(kyushoPath, titleWords(p.Name)+": "+desc)
	}
	return domain.NoMatch()
}

func (e *KyushoExtractor) listAnswer() string {
	names := make([]string, 0, len(e.points))
	for _, p := range e.points {
		names = append(names, titleWords(p.Name))
		if len(names) == kyushoListCap {
			break
		}
	}
	return "Kyusho points: " + joinOxford(names)
}
