package usecase

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

var rankTermRe = regexp.MustCompile(`\b(\d{1,2})(st|nd|rd|th) (kyu|dan)\b`)

// Normalizer canonicalizes a raw question before routing. It folds
// romaji macrons, lowercases, strips punctuation, rewrites synonyms
// onto curriculum vocabulary, and captures a rank term when present.
type Normalizer struct {
	synonyms map[string]string
}

func NewNormalizer(synonyms map[string]string) *Normalizer {
	return &Normalizer{synonyms: synonyms}
}

func (n *Normalizer) Normalize(raw string) domain.NormalizedQuery {
	tokens := strings.Fields(foldQuery(raw))
	for i, tok := range tokens {
		if mapped, ok := n.synonyms[tok]; ok {
			tokens[i] = mapped
		}
	}
	canonical := strings.Join(tokens, " ")
	return domain.NormalizedQuery{
		Raw:       strings.TrimSpace(raw),
		Canonical: canonical,
		Tokens:    tokens,
		RankTerm:  parseRankTerm(canonical),
	}
}

// FoldPhrase canonicalizes record-side text (names, aliases,
// translations) with the same folding and synonym rewrite queries get,
// so phrase matching compares like with like.
func (n *Normalizer) FoldPhrase(s string) string {
	return n.Normalize(s).Canonical
}

// foldQuery lowercases and reduces a question to letters, digits and
// spaces. Macron vowels map to their plain form so "Tōgakure" and
// "Togakure" normalize alike; apostrophes vanish so "what's" stays one
// token; every other punctuation rune separates tokens.
func foldQuery(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		r = unicode.ToLower(r)
		switch r {
		case 'ō':
			r = 'o'
		case 'ū':
			r = 'u'
		case 'ā':
			r = 'a'
		case 'ī':
			r = 'i'
		case 'ē':
			r = 'e'
		case '\'', '’', '‘', 'ʼ':
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func parseRankTerm(canonical string) *domain.RankTerm {
	m := rankTermRe.FindStringSubmatch(canonical)
	if m == nil {
		return nil
	}
	num, err := strconv.Atoi(m[1])
	if err != nil || num < 1 {
		return nil
	}
	return &domain.RankTerm{Number: num, Grade: m[3]}
}
