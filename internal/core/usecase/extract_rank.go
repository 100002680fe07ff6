package usecase

import (
	"strings"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

const rankPath = "deterministic/rank"

// Rank sheet section names. Parsers keep these verbatim, so lookups
// here stay in sync with the curriculum files.
const (
	sectionStriking    = "Striking"
	sectionNage        = "Nage"
	sectionJime        = "Jime"
	sectionUkemi       = "Ukemi"
	sectionTaihenjutsu = "Taihenjutsu"
	sectionKihonHappo  = "Kihon Happo"
	sectionSanshin     = "Sanshin no Kata"
	sectionWeapons     = "Weapons"
)

// RankExtractor answers rank requirement questions from the rank
// sheets. A question qualifies only when it names an ordinal rank;
// sub-category wording (throws, kicks, ukemi) narrows the answer to
// that section, otherwise the whole requirement block is returned
// verbatim. Answers never mix material from adjacent ranks.
type RankExtractor struct {
	byRank map[string]domain.RankRequirement
}

func NewRankExtractor(ranks []domain.RankRequirement) *RankExtractor {
	byRank := make(map[string]domain.RankRequirement, len(ranks))
	for _, r := range ranks {
		byRank[strings.ToLower(r.Rank)] = r
	}
	return &RankExtractor{byRank: byRank}
}

func (e *RankExtractor) Name() string { return "rank" }

func (e *RankExtractor) TryAnswer(q domain.NormalizedQuery) domain.ExtractorResult {
	if q.RankTerm == nil {
		return domain.NoMatch()
	}
	req, ok := e.byRank[q.RankTerm.Canonical()]
	if !ok {
		// A rank phrasing without a sheet entry (dan grades, out of
		// range ordinals) falls through to retrieval.
		return domain.NoMatch()
	}
	if text, ok := e.strikingAnswer(q, req); ok {
		return domain.Answered(rankPath, text)
	}
	if text, ok := e.sectionAnswer(q, req); ok {
		return domain.Answered(rankPath, text)
	}
	return domain.Answered(rankPath, req.Block)
}

// strikingAnswer handles kick and punch questions. Sheets group both
// under a Striking section; when a sheet has none, every listed item
// is scanned instead so older sheet layouts still answer.
func (e *RankExtractor) strikingAnswer(q domain.NormalizedQuery, req domain.RankRequirement) (string, bool) {
	wantsKicks := q.HasToken("geri")
	wantsPunches := q.HasToken("tsuki") || q.HasToken("ken") || q.HasToken("uraken")
	wantsBoth := q.HasToken("strike") || q.HasToken("strikes") || q.HasToken("striking")
	if !wantsKicks && !wantsPunches && !wantsBoth {
		return "", false
	}

	pool := sectionItems(req, sectionStriking)
	if len(pool) == 0 {
		pool = allItems(req)
	}
	kicks := filterItems(pool, isKick)
	punches := filterItems(pool, isPunch)

	var parts []string
	if wantsKicks || (wantsBoth && len(kicks) > 0) {
		parts = append(parts, req.Label+" kicks: "+listOrNone(kicks))
	}
	if wantsPunches || (wantsBoth && len(punches) > 0) {
		parts = append(parts, req.Label+" punches: "+listOrNone(punches))
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " "), true
}

func (e *RankExtractor) sectionAnswer(q domain.NormalizedQuery, req domain.RankRequirement) (string, bool) {
	type sectionIntent struct {
		section string
		word    string
		wants   bool
	}
	intents := []sectionIntent{
		{sectionNage, "throws", q.HasToken("nage")},
		{sectionJime, "chokes", q.HasToken("jime") || q.HasToken("shime")},
		{sectionUkemi, "Ukemi", q.HasToken("ukemi") || q.HasToken("kaiten")},
		{sectionTaihenjutsu, "Taihenjutsu", q.HasToken("taihenjutsu") || q.HasPhrase("taihen jutsu")},
		{sectionKihonHappo, "Kihon Happo", q.HasPhrase("kihon happo") || q.HasToken("kihon") || q.HasToken("happo")},
		{sectionSanshin, "Sanshin no Kata", q.HasToken("sanshin") || q.HasPhrase("san shin")},
		{sectionWeapons, "weapons", q.HasToken("weapons") || q.HasToken("weapon") || q.HasToken("buki")},
	}
	for _, in := range intents {
		if !in.wants {
			continue
		}
		return req.Label + " " + in.word + ": " + listOrNone(sectionItems(req, in.section)), true
	}
	return "", false
}

func sectionItems(req domain.RankRequirement, name string) []string {
	sec, ok := req.Section(name)
	if !ok {
		return nil
	}
	return sec.Items
}

func allItems(req domain.RankRequirement) []string {
	var items []string
	for _, sec := range req.Sections {
		items = append(items, sec.Items...)
	}
	return items
}

func filterItems(items []string, keep func(string) bool) []string {
	var out []string
	for _, item := range items {
		if keep(strings.ToLower(item)) {
			out = append(out, item)
		}
	}
	return out
}

func isKick(lower string) bool {
	return strings.Contains(lower, "geri")
}

func isPunch(lower string) bool {
	return strings.Contains(lower, "tsuki") ||
		strings.HasSuffix(lower, " ken") ||
		strings.Contains(lower, " ken ") ||
		strings.Contains(lower, "uraken")
}

func listOrNone(items []string) string {
	joined := joinComma(items)
	if joined == "" {
		return "(none listed)."
	}
	return joined + "."
}
