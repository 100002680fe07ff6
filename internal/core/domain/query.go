package domain

import (
	"fmt"
	"strings"
)

// RankTerm is a parsed rank designator such as "6th kyu" or "2nd dan".
type RankTerm struct {
	Number int
	Grade  string // "kyu" or "dan"
}

// Canonical renders the rank in the lower-cased form used for matching.
func (r RankTerm) Canonical() string {
	return fmt.Sprintf("%d%s %s", r.Number, ordinalSuffix(r.Number), r.Grade)
}

// Label renders the rank for user-facing text, e.g. "6th Kyu".
func (r RankTerm) Label() string {
	grade := r.Grade
	if grade != "" {
		grade = strings.ToUpper(grade[:1]) + grade[1:]
	}
	return fmt.Sprintf("%d%s %s", r.Number, ordinalSuffix(r.Number), grade)
}

func ordinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// NormalizedQuery is the canonical form of a question, shared by the
// extractor chain and the reranker.
type NormalizedQuery struct {
	Raw       string
	Canonical string
	Tokens    []string
	RankTerm  *RankTerm
}

// HasToken reports whether the canonical token stream contains token.
func (q NormalizedQuery) HasToken(token string) bool {
	for _, t := range q.Tokens {
		if t == token {
			return true
		}
	}
	return false
}

// HasPhrase reports whether the canonical text contains phrase on word
// boundaries. Phrases must already be in canonical form.
func (q NormalizedQuery) HasPhrase(phrase string) bool {
	return strings.Contains(" "+q.Canonical+" ", " "+phrase+" ")
}

// ExtractorResult is the outcome of one deterministic extractor attempt.
// A declined attempt is the zero value.
type ExtractorResult struct {
	Answered bool
	Text     string
	Path     string
}

// Answered builds a successful extractor result carrying its routing path.
func Answered(path, text string) ExtractorResult {
	return ExtractorResult{Answered: true, Text: text, Path: path}
}

// NoMatch is the declined extractor result.
func NoMatch() ExtractorResult {
	return ExtractorResult{}
}
