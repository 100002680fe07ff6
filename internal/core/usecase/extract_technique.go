package usecase

import (
	"regexp"
	"strings"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

const techniquePath = "deterministic/technique"

// techniqueNameHints are tokens that make a short query read like a
// technique name even without an explicit "what is" lead.
var techniqueNameHints = []string{
	"gyaku", "dori", "kudaki", "gatame", "otoshi", "nage", "seoi",
	"kote", "musha", "juji", "omote", "ura", "ganseki", "hodoki", "kata",
}

var (
	lookupTriggerRe = regexp.MustCompile(`^(?:whats|what is|define|explain|describe|tell me about|show me)\s+(.+)$`)
	lookupNoiseRe   = regexp.MustCompile(`\b(?:technique|in ninjutsu|in bujinkan)\b`)

	diffPatterns = []*regexp.Regexp{
		regexp.MustCompile(`difference between (.+) and (.+)`),
		regexp.MustCompile(`diff between (.+) and (.+)`),
		regexp.MustCompile(`compare (.+?) and (.+)`),
		regexp.MustCompile(`(.+) different from (.+)`),
		regexp.MustCompile(`(.+) vs (.+)`),
		regexp.MustCompile(`(.+) versus (.+)`),
	}
)

// TechniqueExtractor answers catalog lookups ("what is omote gyaku")
// and two-way comparisons ("omote gyaku vs ura gyaku"). Names resolve
// through exact alias matching only; an unrecognized name declines so
// retrieval can have it.
type TechniqueExtractor struct {
	records   []domain.TechniqueRecord
	byPhrase  map[string]int
	byKeylite map[string]int
	aliases   []aliasPhrase
}

// NewTechniqueExtractor indexes records by every known spelling: the
// name, its Japanese form, the English translation, tags, configured
// extra aliases, and the "no kata" variant both ways. First record
// wins a contested alias, keeping catalog order authoritative.
func NewTechniqueExtractor(norm *Normalizer, records []domain.TechniqueRecord, extraAliases map[string][]string) *TechniqueExtractor {
	e := &TechniqueExtractor{
		records:   records,
		byPhrase:  make(map[string]int),
		byKeylite: make(map[string]int),
	}
	extras := make(map[string][]string, len(extraAliases))
	for name, list := range extraAliases {
		extras[norm.FoldPhrase(name)] = list
	}
	for i, r := range records {
		names := []string{r.Name, r.Japanese, r.Translation}
		names = append(names, r.Tags...)
		folded := norm.FoldPhrase(r.Name)
		names = append(names, extras[folded]...)
		if strings.HasSuffix(folded, " no kata") {
			names = append(names, strings.TrimSuffix(folded, " no kata"))
		} else if folded != "" {
			names = append(names, folded+" no kata")
		}
		for _, n := range names {
			e.addAlias(norm.FoldPhrase(n), i)
		}
	}
	sortAliasesLongestFirst(e.aliases)
	return e
}

func (e *TechniqueExtractor) addAlias(phrase string, idx int) {
	if phrase == "" {
		return
	}
	if _, taken := e.byPhrase[phrase]; !taken {
		e.byPhrase[phrase] = idx
		e.aliases = append(e.aliases, aliasPhrase{phrase: phrase, index: idx})
	}
	key := squashKey(phrase)
	if _, taken := e.byKeylite[key]; !taken {
		e.byKeylite[key] = idx
	}
}

func (e *TechniqueExtractor) Name() string { return "technique" }

func (e *TechniqueExtractor) TryAnswer(q domain.NormalizedQuery) domain.ExtractorResult {
	if hasDiffIntent(q) {
		// A comparison that cannot resolve both names must not fall
		// back to a one-sided profile.
		return e.diffAnswer(q)
	}
	if !e.wantsLookup(q) {
		return domain.NoMatch()
	}
	if idx, ok := e.resolve(lookupCandidate(q.Canonical)); ok {
		return domain.Answered(techniquePath, formatTechnique(e.records[idx]))
	}
	if idx, ok := findAlias(q, e.aliases); ok {
		return domain.Answered(techniquePath, formatTechnique(e.records[idx]))
	}
	return domain.NoMatch()
}

// wantsLookup gates single lookups. Concept vocabulary (kihon happo,
// sanshin, ryu) belongs to earlier extractors, so it backs the
// technique lookup off even when the phrasing fits.
func (e *TechniqueExtractor) wantsLookup(q domain.NormalizedQuery) bool {
	if q.HasPhrase("kihon happo") || q.HasToken("sanshin") || q.HasToken("ryu") {
		return false
	}
	if q.HasToken("whats") || q.HasPhrase("what is") || q.HasToken("define") ||
		q.HasToken("explain") || q.HasToken("describe") ||
		q.HasPhrase("tell me about") || q.HasPhrase("show me") {
		return true
	}
	return len(q.Tokens) <= 7 && hasNameHint(q)
}

func hasNameHint(q domain.NormalizedQuery) bool {
	for _, hint := range techniqueNameHints {
		if q.HasToken(hint) {
			return true
		}
	}
	return q.HasPhrase("no kata") || q.HasPhrase("take ori")
}

// lookupCandidate strips the trigger lead and filler words, leaving
// the portion of the question that should be a technique name.
func lookupCandidate(canonical string) string {
	candidate := canonical
	if m := lookupTriggerRe.FindStringSubmatch(canonical); m != nil {
		candidate = m[1]
	}
	candidate = lookupNoiseRe.ReplaceAllString(candidate, " ")
	candidate = strings.Join(strings.Fields(candidate), " ")
	for _, lead := range []string{"the ", "a ", "an "} {
		candidate = strings.TrimPrefix(candidate, lead)
	}
	return candidate
}

func (e *TechniqueExtractor) resolve(candidate string) (int, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return 0, false
	}
	variants := []string{candidate}
	if strings.HasSuffix(candidate, " no kata") {
		variants = append(variants, strings.TrimSuffix(candidate, " no kata"))
	} else {
		variants = append(variants, candidate+" no kata")
	}
	for _, v := range variants {
		if idx, ok := e.byPhrase[v]; ok {
			return idx, true
		}
		if idx, ok := e.byKeylite[squashKey(v)]; ok {
			return idx, true
		}
	}
	return 0, false
}

func hasDiffIntent(q domain.NormalizedQuery) bool {
	return q.HasToken("vs") || q.HasToken("versus") || q.HasToken("compare") ||
		q.HasPhrase("different from") || q.HasPhrase("diff between") ||
		(q.HasToken("difference") && q.HasToken("between"))
}

func (e *TechniqueExtractor) diffAnswer(q domain.NormalizedQuery) domain.ExtractorResult {
	left, right, ok := splitDiffPair(q.Canonical)
	if !ok {
		return domain.NoMatch()
	}
	ai, ok := e.resolve(left)
	if !ok {
		return domain.NoMatch()
	}
	bi, ok := e.resolve(right)
	if !ok {
		return domain.NoMatch()
	}
	if ai == bi {
		return domain.Answered(techniquePath, formatTechnique(e.records[ai]))
	}
	return domain.Answered(techniquePath, formatTechniqueDiff(e.records[ai], e.records[bi]))
}

func splitDiffPair(canonical string) (string, string, bool) {
	for _, re := range diffPatterns {
		m := re.FindStringSubmatch(canonical)
		if m == nil {
			continue
		}
		left := trimQuestionLead(m[1])
		right := trimQuestionLead(m[2])
		if left != "" && right != "" {
			return left, right, true
		}
	}
	return "", "", false
}

func trimQuestionLead(s string) string {
	s = strings.TrimSpace(s)
	for _, lead := range []string{
		"what is the ", "what is ", "whats ", "how is the ", "how is ",
		"how are ", "is ", "are ", "the ", "a ", "an ",
	} {
		if strings.HasPrefix(s, lead) {
			s = s[len(lead):]
			break
		}
	}
	return strings.TrimSpace(s)
}

// squashKey drops everything except letters and digits so spelling
// variants like "omote-gyaku" and "omotegyaku" collide on purpose.
func squashKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func formatTechnique(r domain.TechniqueRecord) string {
	lines := []string{r.Name + ":"}
	appendLine := func(label, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		lines = append(lines, "- "+label+": "+value)
	}
	appendLine("Translation", r.Translation)
	appendLine("Type", r.Type)
	appendLine("Rank intro", r.Rank)
	appendLine("Focus", r.PrimaryFocus)
	appendLine("Safety", r.Safety)
	if r.PartnerRequired != nil {
		lines = append(lines, "- Partner required: "+yesNo(r.PartnerRequired, "—"))
	}
	if r.Solo != nil {
		lines = append(lines, "- Solo: "+yesNo(r.Solo, "—"))
	}
	desc := strings.TrimSpace(r.Description)
	if desc == "" {
		desc = "(not listed)."
	}
	lines = append(lines, "- Definition: "+desc)
	return strings.Join(lines, "\n")
}

func formatTechniqueDiff(a, b domain.TechniqueRecord) string {
	lines := []string{"Difference between " + a.Name + " and " + b.Name + ":"}
	appendPair := func(label, va, vb string) {
		if strings.TrimSpace(va) == "" && strings.TrimSpace(vb) == "" {
			return
		}
		lines = append(lines,
			"\n"+label+":",
			"- "+a.Name+": "+orDash(va),
			"- "+b.Name+": "+orDash(vb))
	}
	appendPair("Translation", a.Translation, b.Translation)
	appendPair("Type", a.Type, b.Type)
	appendPair("Rank intro", a.Rank, b.Rank)
	appendPair("Primary focus", a.PrimaryFocus, b.PrimaryFocus)
	appendPair("Safety", a.Safety, b.Safety)
	if a.PartnerRequired != nil || b.PartnerRequired != nil {
		lines = append(lines,
			"\nPartner required:",
			"- "+a.Name+": "+yesNo(a.PartnerRequired, "—"),
			"- "+b.Name+": "+yesNo(b.PartnerRequired, "—"))
	}
	if a.Solo != nil || b.Solo != nil {
		lines = append(lines,
			"\nSolo:",
			"- "+a.Name+": "+yesNo(a.Solo, "—"),
			"- "+b.Name+": "+yesNo(b.Solo, "—"))
	}
	appendPair("Description", a.Description, b.Description)
	return strings.Join(lines, "\n")
}

func orDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "—"
	}
	return v
}
