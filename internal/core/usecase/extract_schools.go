package usecase

import (
	"sort"
	"strings"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

const schoolsPath = "deterministic/schools"

// SchoolsExtractor answers questions about the nine Bujinkan schools:
// the current sōke, a single school profile, or the full list. School
// lookup is by alias phrase only; a soke question naming no known
// school declines instead of guessing.
type SchoolsExtractor struct {
	schools []domain.SchoolProfile
	aliases []aliasPhrase
}

// aliasPhrase binds a folded alias to a record index. Phrases are
// matched longest first so "takagi yoshin ryu" beats "takagi".
type aliasPhrase struct {
	phrase string
	index  int
}

func NewSchoolsExtractor(norm *Normalizer, schools []domain.SchoolProfile) *SchoolsExtractor {
	e := &SchoolsExtractor{schools: schools}
	for i, s := range schools {
		e.aliases = append(e.aliases, foldAliases(norm, i, s.Name, s.Aliases)...)
	}
	sortAliasesLongestFirst(e.aliases)
	return e
}

func (e *SchoolsExtractor) Name() string { return "schools" }

func (e *SchoolsExtractor) TryAnswer(q domain.NormalizedQuery) domain.ExtractorResult {
	if q.HasToken("soke") {
		return e.sokeAnswer(q)
	}
	if idx, ok := findAlias(q, e.aliases); ok {
		return domain.Answered(schoolsPath, formatSchoolProfile(e.schools[idx]))
	}
	if e.wantsList(q) && len(e.schools) > 0 {
		return domain.Answered(schoolsPath, e.listAnswer())
	}
	return domain.NoMatch()
}

func (e *SchoolsExtractor) sokeAnswer(q domain.NormalizedQuery) domain.ExtractorResult {
	idx, ok := findAlias(q, e.aliases)
	if !ok {
		return domain.NoMatch()
	}
	s := e.schools[idx]
	if strings.TrimSpace(s.Soke) == "" {
		return domain.NoMatch()
	}
	return domain.Answered(schoolsPath, s.Soke+" is the current sōke of "+s.Name+".")
}

func (e *SchoolsExtractor) wantsList(q domain.NormalizedQuery) bool {
	if !q.HasToken("ryu") || !q.HasToken("bujinkan") {
		return false
	}
	return q.HasToken("what") || q.HasToken("which") || q.HasToken("list") ||
		q.HasToken("name") || q.HasToken("nine") || q.HasToken("9")
}

func (e *SchoolsExtractor) listAnswer() string {
	var b strings.Builder
	b.WriteString("The Nine Schools of the Bujinkan:")
	for _, s := range e.schools {
		b.WriteString("\n- ")
		b.WriteString(s.Name)
	}
	return b.String()
}

func formatSchoolProfile(s domain.SchoolProfile) string {
	lines := []string{s.Name + ":"}
	fields := []struct{ label, value string }{
		{"Translation", s.Translation},
		{"Type", s.Type},
		{"Focus", s.Focus},
		{"Weapons", s.Weapons},
		{"Notes", s.Notes},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		lines = append(lines, "- "+f.label+": "+f.value)
	}
	return strings.Join(lines, "\n")
}

// foldAliases folds a record's name and aliases through the query
// normalizer so both sides of a phrase match share one vocabulary.
func foldAliases(norm *Normalizer, index int, name string, aliases []string) []aliasPhrase {
	out := make([]aliasPhrase, 0, len(aliases)+1)
	seen := make(map[string]bool, len(aliases)+1)
	for _, raw := range append([]string{name}, aliases...) {
		phrase := norm.FoldPhrase(raw)
		if phrase == "" || seen[phrase] {
			continue
		}
		seen[phrase] = true
		out = append(out, aliasPhrase{phrase: phrase, index: index})
	}
	return out
}

func sortAliasesLongestFirst(aliases []aliasPhrase) {
	sort.SliceStable(aliases, func(i, j int) bool {
		return len(aliases[i].phrase) > len(aliases[j].phrase)
	})
}

func findAlias(q domain.NormalizedQuery, aliases []aliasPhrase) (int, bool) {
	for _, a := range aliases {
		if q.HasPhrase(a.phrase) {
			return a.index, true
		}
	}
	return 0, false
}
