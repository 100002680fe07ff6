package usecase

import (
	"regexp"
	"strings"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

const glossaryPath = "deterministic/glossary"

var glossaryTriggerRe = regexp.MustCompile(`^(?:whats|what is|define|definition of|meaning of|what does|translate)\s+(.+)$`)

// glossaryTechHints mark a question as technique-shaped. The glossary
// runs last, so anything technique-shaped that got this far is an
// unknown name and belongs to retrieval, not to a loose term match.
var glossaryTechHints = []string{
	"gyaku", "kudaki", "dori", "gatame", "otoshi", "nage", "seoi",
	"kote", "musha", "juji", "kaiten", "gake", "ori",
}

// GlossaryExtractor answers terminology questions ("what does soke
// mean", bare "kamae") from the glossary sheet.
type GlossaryExtractor struct {
	entries        []domain.GlossaryEntry
	byTerm         map[string]int
	termPhrases    []aliasPhrase
	techniqueNames map[string]bool
}

func NewGlossaryExtractor(norm *Normalizer, entries []domain.GlossaryEntry, techniques []domain.TechniqueRecord) *GlossaryExtractor {
	e := &GlossaryExtractor{
		byTerm:         make(map[string]int),
		techniqueNames: make(map[string]bool, 2*len(techniques)),
	}
	for _, entry := range entries {
		if strings.TrimSpace(entry.Definition) == "" {
			continue
		}
		idx := len(e.entries)
		e.entries = append(e.entries, entry)
		phrase := norm.FoldPhrase(entry.Term)
		if phrase == "" {
			continue
		}
		if _, taken := e.byTerm[phrase]; !taken {
			e.byTerm[phrase] = idx
			e.termPhrases = append(e.termPhrases, aliasPhrase{phrase: phrase, index: idx})
		}
	}
	sortAliasesLongestFirst(e.termPhrases)
	for _, t := range techniques {
		for _, name := range []string{t.Name, t.Japanese} {
			if folded := norm.FoldPhrase(name); folded != "" {
				e.techniqueNames[folded] = true
			}
		}
	}
	return e
}

func (e *GlossaryExtractor) Name() string { return "glossary" }

func (e *GlossaryExtractor) TryAnswer(q domain.NormalizedQuery) domain.ExtractorResult {
	candidate, ok := glossaryCandidate(q)
	if !ok || e.techniqueLike(q, candidate) {
		return domain.NoMatch()
	}
	entry, ok := e.match(candidate)
	if !ok {
		return domain.NoMatch()
	}
	return domain.Answered(glossaryPath, entry.Term+": "+entry.Definition)
}

// glossaryCandidate accepts an explicit definition lead or a bare term
// of up to three tokens. Interrogatives other than "what" read as
// open questions and go to retrieval instead.
func glossaryCandidate(q domain.NormalizedQuery) (string, bool) {
	if m := glossaryTriggerRe.FindStringSubmatch(q.Canonical); m != nil {
		c := m[1]
		c = strings.TrimSuffix(c, " means")
		c = strings.TrimSuffix(c, " mean")
		for _, lead := range []string{"the ", "a ", "an "} {
			c = strings.TrimPrefix(c, lead)
		}
		c = strings.TrimSpace(c)
		return c, c != ""
	}
	if len(q.Tokens) == 0 || len(q.Tokens) > 3 {
		return "", false
	}
	for _, w := range []string{"who", "when", "where", "why", "how"} {
		if q.HasToken(w) {
			return "", false
		}
	}
	return q.Canonical, true
}

func (e *GlossaryExtractor) techniqueLike(q domain.NormalizedQuery, candidate string) bool {
	if q.HasToken("kata") || q.HasToken("waza") || q.HasPhrase("no kata") {
		return true
	}
	for _, hint := range glossaryTechHints {
		if q.HasToken(hint) {
			return true
		}
	}
	return e.techniqueNames[candidate]
}

// match tries the whole candidate, then a term contained in it, then
// the trailing two words, then the last word alone.
func (e *GlossaryExtractor) match(candidate string) (domain.GlossaryEntry, bool) {
	if idx, ok := e.byTerm[candidate]; ok {
		return e.entries[idx], true
	}
	padded := " " + candidate + " "
	for _, a := range e.termPhrases {
		if len(a.phrase) >= 4 && strings.Contains(padded, " "+a.phrase+" ") {
			return e.entries[a.index], true
		}
	}
	words := strings.Fields(candidate)
	if len(words) >= 2 {
		tail := strings.Join(words[len(words)-2:], " ")
		if idx, ok := e.byTerm[tail]; ok {
			return e.entries[idx], true
		}
	}
	if len(words) >= 1 {
		if idx, ok := e.byTerm[words[len(words)-1]]; ok {
			return e.entries[idx], true
		}
	}
	return domain.GlossaryEntry{}, false
}
