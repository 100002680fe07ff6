package usecase

import (
	"strings"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

const weaponsPath = "deterministic/weapons"

// WeaponsExtractor answers weapon questions from the weapon sheets.
// Rank wording (rank, kyu, introduced) narrows to the introduction
// rank; any other mention of a known weapon gets the full profile.
type WeaponsExtractor struct {
	weapons []domain.WeaponProfile
	aliases []aliasPhrase
}

func NewWeaponsExtractor(norm *Normalizer, weapons []domain.WeaponProfile) *WeaponsExtractor {
	e := &WeaponsExtractor{weapons: weapons}
	for i, w := range weapons {
		e.aliases = append(e.aliases, foldAliases(norm, i, w.Name, w.Aliases)...)
	}
	sortAliasesLongestFirst(e.aliases)
	return e
}

func (e *WeaponsExtractor) Name() string { return "weapons" }

func (e *WeaponsExtractor) TryAnswer(q domain.NormalizedQuery) domain.ExtractorResult {
	idx, ok := findAlias(q, e.aliases)
	if !ok {
		return domain.NoMatch()
	}
	w := e.weapons[idx]
	if wantsWeaponRank(q) {
		if text, ok := weaponRankAnswer(w); ok {
			return domain.Answered(weaponsPath, text)
		}
		return domain.NoMatch()
	}
	return domain.Answered(weaponsPath, formatWeaponProfile(w))
}

func wantsWeaponRank(q domain.NormalizedQuery) bool {
	return q.HasToken("rank") || q.HasToken("kyu") || q.HasToken("dan") || q.HasToken("introduced")
}

func weaponRankAnswer(w domain.WeaponProfile) (string, bool) {
	ranks := strings.TrimSpace(w.Ranks)
	if ranks == "" {
		return "", false
	}
	pretty := ranks
	const prefix = "introduced at "
	if len(pretty) > len(prefix) && strings.EqualFold(pretty[:len(prefix)], prefix) {
		pretty = pretty[len(prefix):]
	}
	pretty = strings.TrimSuffix(strings.TrimSpace(pretty), ".")
	return "You first study " + w.Name + " at " + pretty + ".", true
}

func formatWeaponProfile(w domain.WeaponProfile) string {
	segments := []string{w.Name + " weapon profile:"}
	appendSegment := func(label, value string) {
		value = strings.TrimSuffix(strings.TrimSpace(value), ".")
		if value == "" {
			return
		}
		segments = append(segments, label+": "+value+".")
	}
	appendSegment("Type", w.Type)
	appendSegment("Kamae", joinComma(w.Kamae))
	appendSegment("Core actions include", joinComma(w.CoreActions))
	appendSegment("Ranks", w.Ranks)
	appendSegment("Notes", w.Notes)
	return strings.Join(segments, " ")
}
